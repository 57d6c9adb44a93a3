package bus

import (
	"errors"
	"fmt"
)

// ErrNilHandler is the panic value of a consumer registration given a nil
// handler.
var ErrNilHandler = errors.New("bus: nil handler")

// Kind tells whether a bound name produces or registers consumers.
type Kind int

const (
	KindProducer Kind = iota + 1
	KindConsumer
)

func (k Kind) String() string {
	switch k {
	case KindProducer:
		return "producer"
	case KindConsumer:
		return "consumer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Binding describes what a configured name is bound to.
type Binding struct {
	Name string
	Kind Kind
	Pair Pair
}

type binding struct {
	kind Kind
	ch   *channel
}

// UnboundNameError is the panic value of Pass and Receive when the name has
// no binding of the requested kind.
type UnboundNameError struct {
	Name string
	Want Kind
	Got  Kind // zero when the name is not bound at all
}

func (e *UnboundNameError) Error() string {
	if e.Got == 0 {
		return fmt.Sprintf("bus: %q is not bound", e.Name)
	}
	return fmt.Sprintf("bus: %q is bound as %s, not %s", e.Name, e.Got, e.Want)
}
