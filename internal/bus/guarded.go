package bus

import "sync"

// Guarded serializes access to a PairedSet so it can be shared between
// goroutines, e.g. an interactive session and a retention scheduler.
//
// Handlers run while the lock is held and must not call back into the
// same Guarded.
type Guarded struct {
	mu  sync.Mutex
	set *PairedSet
}

func NewGuarded(set *PairedSet) *Guarded {
	return &Guarded{set: set}
}

// Unwrap returns the underlying set. Using it bypasses the lock.
func (g *Guarded) Unwrap() *PairedSet { return g.set }

func (g *Guarded) Pass(name string, args ...any) *Guarded {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.set.Pass(name, args...)
	return g
}

// Receive panics with ErrNilHandler on a nil handler; the lock is released
// and the previous listener stays registered.
func (g *Guarded) Receive(name string, h Handler) *Guarded {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.set.Receive(name, h)
	return g
}

func (g *Guarded) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.set.Clear()
}

func (g *Guarded) History(name string) ([]CallRecord, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.set.History(name)
}

func (g *Guarded) Lookup(name string) (Binding, bool) {
	// Bindings never change after construction.
	return g.set.Lookup(name)
}
