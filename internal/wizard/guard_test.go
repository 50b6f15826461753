package wizard

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestGuardSingleSlot(t *testing.T) {
	var g Guard

	if !g.TryAcquire() {
		t.Fatalf("first acquire should succeed")
	}
	if g.TryAcquire() {
		t.Fatalf("second acquire should fail while held")
	}
	if !g.InFlight() {
		t.Fatalf("expected in-flight")
	}

	g.Release()
	if g.InFlight() {
		t.Fatalf("expected released")
	}
	if !g.TryAcquire() {
		t.Fatalf("acquire after release should succeed")
	}
}

func TestGuardUnderContention(t *testing.T) {
	var g Guard
	var acquired atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire() {
				acquired.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := acquired.Load(); got != 1 {
		t.Fatalf("expected exactly one winner, got %d", got)
	}
}
