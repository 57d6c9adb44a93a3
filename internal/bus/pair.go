package bus

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidConfiguration is returned when a pair configuration fails
// validation. Construction never yields a partially built set.
var ErrInvalidConfiguration = errors.New("must pass in tuples of names like [[\"handleData\", \"onData\"], ...]")

// Pair associates a producer name with a consumer-registration name.
type Pair struct {
	Producer string `json:"producer" yaml:"producer"`
	Consumer string `json:"consumer" yaml:"consumer"`
}

func NewPair(producer, consumer string) Pair {
	return Pair{Producer: producer, Consumer: consumer}
}

func (p Pair) String() string {
	return p.Producer + "/" + p.Consumer
}

func validatePairs(pairs []Pair) error {
	if len(pairs) == 0 {
		return fmt.Errorf("%w: no pairs given", ErrInvalidConfiguration)
	}
	for i, p := range pairs {
		if p.Producer == "" || p.Consumer == "" {
			return fmt.Errorf("%w: pair %d has an empty name", ErrInvalidConfiguration, i)
		}
	}
	return nil
}

// ParsePairs converts an untyped configuration, typically decoded from YAML
// or JSON, into pairs. The value must be a non-empty sequence whose entries
// are 2-element sequences of strings.
func ParsePairs(v any) ([]Pair, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: missing configuration", ErrInvalidConfiguration)
	}

	rv := reflect.ValueOf(v)
	if !isSequence(rv) {
		return nil, fmt.Errorf("%w: expected a sequence, got %T", ErrInvalidConfiguration, v)
	}
	if rv.Len() == 0 {
		return nil, fmt.Errorf("%w: no pairs given", ErrInvalidConfiguration)
	}

	pairs := make([]Pair, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		entry := indirect(rv.Index(i))
		if !isSequence(entry) || entry.Len() != 2 {
			return nil, fmt.Errorf("%w: entry %d is not a 2-element sequence", ErrInvalidConfiguration, i)
		}
		producer, ok := stringValue(entry.Index(0))
		if !ok {
			return nil, fmt.Errorf("%w: entry %d producer is not a string", ErrInvalidConfiguration, i)
		}
		consumer, ok := stringValue(entry.Index(1))
		if !ok {
			return nil, fmt.Errorf("%w: entry %d consumer is not a string", ErrInvalidConfiguration, i)
		}
		pairs = append(pairs, NewPair(producer, consumer))
	}

	if err := validatePairs(pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

// isSequence reports whether v is a slice or array. Strings are not
// sequences here even though they are indexable.
func isSequence(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	k := v.Kind()
	return k == reflect.Slice || k == reflect.Array
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func stringValue(v reflect.Value) (string, bool) {
	v = indirect(v)
	if !v.IsValid() || v.Kind() != reflect.String {
		return "", false
	}
	return v.String(), true
}
