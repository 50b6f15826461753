package wizard

import "sync/atomic"

// Guard is a single-slot in-flight latch for the submit path. At most one
// submission may hold the slot; further attempts fail until Release.
type Guard struct {
	inFlight atomic.Bool
}

// TryAcquire claims the slot. It reports false when a submission is already
// in flight.
func (g *Guard) TryAcquire() bool {
	return g.inFlight.CompareAndSwap(false, true)
}

// Release frees the slot for the next submission.
func (g *Guard) Release() {
	g.inFlight.Store(false)
}

// InFlight reports whether a submission currently holds the slot.
func (g *Guard) InFlight() bool {
	return g.inFlight.Load()
}
