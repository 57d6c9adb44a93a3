package bus

// Handler receives the arguments of a producer call, spread in call order.
type Handler func(args ...any)

// channel is the runtime state behind one Pair.
type channel struct {
	pair     Pair
	history  []CallRecord
	listener Handler
}

func newChannel(pair Pair) *channel {
	return &channel{pair: pair}
}

// push records args and, when delivery is on, hands them to the listener.
func (c *channel) push(args []any, deliver bool) {
	rec := newCallRecord(args)
	c.history = append(c.history, rec)

	if deliver && c.listener != nil {
		c.listener(rec.Args()...)
	}
}

// listen replaces the listener and, when replay is on, feeds it the history.
func (c *channel) listen(h Handler, replay bool) {
	c.listener = h
	if !replay {
		return
	}

	// Iterate over a snapshot: the handler may pass into this same channel.
	snapshot := c.history
	for _, rec := range snapshot {
		h(rec.Args()...)
	}
}

func (c *channel) reset() {
	c.history = nil
}

func (c *channel) snapshot() []CallRecord {
	out := make([]CallRecord, len(c.history))
	copy(out, c.history)
	return out
}
