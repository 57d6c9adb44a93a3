package bus

// CallRecord is the exact argument list of one producer call.
type CallRecord struct {
	args []any
}

func newCallRecord(args []any) CallRecord {
	cp := make([]any, len(args))
	copy(cp, args)
	return CallRecord{args: cp}
}

// Args returns a copy of the recorded arguments in call order.
func (r CallRecord) Args() []any {
	cp := make([]any, len(r.args))
	copy(cp, r.args)
	return cp
}

func (r CallRecord) Len() int { return len(r.args) }

// Arg returns the i-th argument, or nil when i is out of range.
func (r CallRecord) Arg(i int) any {
	if i < 0 || i >= len(r.args) {
		return nil
	}
	return r.args[i]
}
