package debounce

// Gate tracks the latest pending value for an event loop that schedules its
// own delayed messages. Each Arm returns a generation; only the tick carrying
// the latest generation may Fire. The zero value is ready to use.
type Gate[T any] struct {
	gen     uint64
	pending T
	armed   bool
}

// Arm records v as the pending value and returns its generation. Any earlier
// generation becomes stale.
func (g *Gate[T]) Arm(v T) uint64 {
	g.gen++
	g.pending = v
	g.armed = true
	return g.gen
}

// Fire publishes the pending value if gen is the latest armed generation.
func (g *Gate[T]) Fire(gen uint64) (T, bool) {
	if !g.armed || gen != g.gen {
		var zero T
		return zero, false
	}
	g.armed = false
	return g.pending, true
}

// Pending reports whether a value is waiting to be published.
func (g *Gate[T]) Pending() bool {
	return g.armed
}

// Cancel drops the pending value. Outstanding ticks become stale.
func (g *Gate[T]) Cancel() {
	g.gen++
	g.armed = false
	var zero T
	g.pending = zero
}

// Generation returns the latest generation handed out by Arm or Cancel.
func (g *Gate[T]) Generation() uint64 {
	return g.gen
}
