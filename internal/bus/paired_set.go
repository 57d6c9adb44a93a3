// Package bus implements named pass/receive pairs: for each configured
// (producer, consumer) pair a PairedSet keeps a buffered channel with a
// producer operation and a consumer-registration operation.
//
// Producer calls are stored and, when a consumer is registered and
// recording is on, delivered immediately. Registering a consumer replays
// every stored call it missed. Everything runs synchronously on the
// caller's goroutine; a PairedSet is not safe for concurrent use (see
// Guarded).
package bus

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

// Producer stores a call and forwards it to the channel's consumer.
type Producer func(args ...any) *PairedSet

// Consumer registers the channel's handler, replacing any previous one.
type Consumer func(h Handler) *PairedSet

// PairedSet owns one channel per configured pair and a name registry that
// maps every producer and consumer name to its channel.
type PairedSet struct {
	id        string
	pairs     []Pair
	channels  []*channel
	bindings  map[string]binding
	recording bool
	logger    *slog.Logger
}

// NewPairedSet validates pairs and builds a set with one empty channel per
// pair. Names are bound verbatim in order; a name reused by a later pair
// silently overwrites the earlier binding.
func NewPairedSet(pairs []Pair, opts ...Option) (*PairedSet, error) {
	if err := validatePairs(pairs); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &PairedSet{
		id:        uuid.NewString(),
		pairs:     append([]Pair(nil), pairs...),
		channels:  make([]*channel, 0, len(pairs)),
		bindings:  make(map[string]binding, 2*len(pairs)),
		recording: o.recording,
	}
	s.logger = o.logger.With("set", s.id)

	for _, p := range pairs {
		ch := newChannel(p)
		s.channels = append(s.channels, ch)
		// Consumer first: a pair naming both sides alike ends up a producer.
		s.bindings[p.Consumer] = binding{kind: KindConsumer, ch: ch}
		s.bindings[p.Producer] = binding{kind: KindProducer, ch: ch}
	}

	s.logger.Debug("bus: paired set created",
		"pairs", len(pairs),
		"names", len(s.bindings),
		"recording", s.recording,
	)
	return s, nil
}

// NewPairedSetFromAny is NewPairedSet for untyped configuration, e.g. a
// value decoded from YAML. See ParsePairs for the accepted shape.
func NewPairedSetFromAny(v any, opts ...Option) (*PairedSet, error) {
	pairs, err := ParsePairs(v)
	if err != nil {
		return nil, err
	}
	return NewPairedSet(pairs, opts...)
}

func (s *PairedSet) ID() string      { return s.id }
func (s *PairedSet) Recording() bool { return s.recording }

// Pairs returns the configured pairs in configuration order.
func (s *PairedSet) Pairs() []Pair {
	return append([]Pair(nil), s.pairs...)
}

// Names returns every bound name, sorted.
func (s *PairedSet) Names() []string {
	names := make([]string, 0, len(s.bindings))
	for name := range s.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup reports what name is bound to.
func (s *PairedSet) Lookup(name string) (Binding, bool) {
	b, ok := s.bindings[name]
	if !ok {
		return Binding{}, false
	}
	return Binding{Name: name, Kind: b.kind, Pair: b.ch.pair}, true
}

// Producer returns the producer operation bound to name.
func (s *PairedSet) Producer(name string) (Producer, bool) {
	b, ok := s.bindings[name]
	if !ok || b.kind != KindProducer {
		return nil, false
	}
	ch := b.ch
	return func(args ...any) *PairedSet {
		ch.push(args, s.recording)
		return s
	}, true
}

// Consumer returns the consumer-registration operation bound to name.
// The returned operation panics with ErrNilHandler when given a nil
// handler; a registered handler can be replaced but never removed.
func (s *PairedSet) Consumer(name string) (Consumer, bool) {
	b, ok := s.bindings[name]
	if !ok || b.kind != KindConsumer {
		return nil, false
	}
	ch := b.ch
	return func(h Handler) *PairedSet {
		if h == nil {
			panic(ErrNilHandler)
		}
		ch.listen(h, s.recording)
		return s
	}, true
}

// Pass invokes the producer bound to name. It panics with
// *UnboundNameError if name is not bound to a producer.
func (s *PairedSet) Pass(name string, args ...any) *PairedSet {
	p, ok := s.Producer(name)
	if !ok {
		panic(s.unbound(name, KindProducer))
	}
	return p(args...)
}

// Receive invokes the consumer registration bound to name. It panics with
// *UnboundNameError if name is not bound to a consumer.
func (s *PairedSet) Receive(name string, h Handler) *PairedSet {
	c, ok := s.Consumer(name)
	if !ok {
		panic(s.unbound(name, KindConsumer))
	}
	return c(h)
}

// History returns a copy of the calls stored for the pair whose producer
// or consumer is bound to name.
func (s *PairedSet) History(name string) ([]CallRecord, bool) {
	b, ok := s.bindings[name]
	if !ok {
		return nil, false
	}
	return b.ch.snapshot(), true
}

// Clear empties every channel's history. Registered handlers are kept.
func (s *PairedSet) Clear() {
	dropped := 0
	for _, ch := range s.channels {
		dropped += len(ch.history)
		ch.reset()
	}
	s.logger.Debug("bus: history cleared", "dropped", dropped)
}

func (s *PairedSet) unbound(name string, want Kind) *UnboundNameError {
	err := &UnboundNameError{Name: name, Want: want}
	if b, ok := s.bindings[name]; ok {
		err.Got = b.kind
	}
	return err
}
