package spawner

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"elevatorsim/building"
	"elevatorsim/types"
)

type arrivals struct {
	mtx        sync.Mutex
	passengers []types.Passenger
}

func (a *arrivals) PassengerArrived(p types.Passenger) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	a.passengers = append(a.passengers, p)
}

func (a *arrivals) count() int {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	return len(a.passengers)
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestRandomFloorExcluding_NeverOrigin(t *testing.T) {
	b := building.NewBuilding(4, 1, 1)
	s := NewSpawner(b, &arrivals{}, 0, 0, newRand())

	seen := make(map[int]bool)
	for range 2000 {
		target := s.randomFloorExcluding(2)
		if target == 2 || target < 0 || target >= 4 {
			t.Fatalf("Invalid target floor %d for origin 2", target)
		}
		seen[target] = true
	}

	for _, f := range []int{0, 1, 3} {
		if !seen[f] {
			t.Errorf("Floor %d was never chosen", f)
		}
	}
}

func TestRandomDelay_WithinBounds(t *testing.T) {
	b := building.NewBuilding(2, 1, 1)
	s := NewSpawner(b, &arrivals{}, 10*time.Millisecond, 20*time.Millisecond, newRand())

	for range 1000 {
		d := s.randomDelay()
		if d < 10*time.Millisecond || d > 20*time.Millisecond {
			t.Fatalf("Delay %v outside [10ms, 20ms]", d)
		}
	}

	fixed := NewSpawner(b, &arrivals{}, 5*time.Millisecond, 5*time.Millisecond, newRand())
	if d := fixed.randomDelay(); d != 5*time.Millisecond {
		t.Errorf("Expected fixed delay of 5ms, was %v", d)
	}
}

func TestSpawner_FillsQueuesUntilFull(t *testing.T) {
	b := building.NewBuilding(3, 1, 2)
	listener := &arrivals{}
	s := NewSpawner(b, listener, time.Millisecond, 2*time.Millisecond, newRand())

	s.Start(context.Background())
	deadline := time.Now().Add(2 * time.Second)
	for listener.count() < 6 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	if listener.count() != 6 {
		t.Fatalf("Expected 6 arrivals (3 floors x 2), was %d", listener.count())
	}
	snap := b.Snapshot()
	for _, f := range snap.Floors {
		if f.QueueLength() != 2 {
			t.Errorf("Floor %d queue length was %d, expected 2", f.Number, f.QueueLength())
		}
	}
	if snap.Stats.Rejected == 0 {
		t.Errorf("Expected rejected spawn attempts once queues were full")
	}
	for _, p := range listener.passengers {
		if p.Origin == p.Destination {
			t.Errorf("Passenger %d travels nowhere: %+v", p.ID, p)
		}
	}
}

func TestSpawner_StopHaltsAdmissions(t *testing.T) {
	b := building.NewBuilding(4, 1, 1000)
	listener := &arrivals{}
	s := NewSpawner(b, listener, time.Millisecond, time.Millisecond, newRand())

	s.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	if s.Running() {
		t.Errorf("Spawner should not be running after Stop")
	}
	stopped := b.Stats().Admitted
	time.Sleep(20 * time.Millisecond)

	if after := b.Stats().Admitted; after != stopped {
		t.Errorf("Passengers admitted after Stop.\nExpected: %d\nWas: %d", stopped, after)
	}
}

func TestSpawner_ContextCancelStopsLoops(t *testing.T) {
	b := building.NewBuilding(2, 1, 1000)
	s := NewSpawner(b, &arrivals{}, time.Hour, time.Hour, newRand())
	ctx, cancel := context.WithCancel(context.Background())

	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Spawn loops kept running after their context was cancelled")
	}
	s.Stop()
}
