package spawner

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/golang/glog"

	"elevatorsim/types"
)

type Admitter interface {
	FloorCount() int
	AdmitPassenger(origin, destination int) (types.Passenger, bool)
}

// Listener is told about every admitted passenger.
type Listener interface {
	PassengerArrived(p types.Passenger)
}

// Spawner runs one arrival loop per floor. Each loop is its own cancellable
// task, keyed by floor.
type Spawner struct {
	admitter    Admitter
	listener    Listener
	minInterval time.Duration
	maxInterval time.Duration

	rngMtx sync.Mutex
	rng    *rand.Rand

	mtx   sync.Mutex
	tasks map[int]context.CancelFunc
	wg    sync.WaitGroup
}

func NewSpawner(a Admitter, l Listener, minInterval, maxInterval time.Duration, rng *rand.Rand) *Spawner {
	if minInterval > maxInterval {
		panic("spawn interval minimum exceeds maximum")
	}
	return &Spawner{
		admitter:    a,
		listener:    l,
		minInterval: minInterval,
		maxInterval: maxInterval,
		rng:         rng,
		tasks:       make(map[int]context.CancelFunc),
	}
}

// Start launches the per-floor loops. Calling it while running does nothing.
func (s *Spawner) Start(ctx context.Context) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if len(s.tasks) > 0 {
		return
	}

	for floor := range s.admitter.FloorCount() {
		floorCtx, cancel := context.WithCancel(ctx)
		s.tasks[floor] = cancel
		s.wg.Add(1)
		go s.spawnLoop(floorCtx, floor)
	}
	glog.Infof("Spawning passengers on %d floors", len(s.tasks))
}

// Stop cancels every pending wait and returns once all loops have exited.
// No passenger is admitted after Stop returns.
func (s *Spawner) Stop() {
	s.mtx.Lock()
	for floor, cancel := range s.tasks {
		cancel()
		delete(s.tasks, floor)
	}
	s.mtx.Unlock()

	s.wg.Wait()
}

func (s *Spawner) Running() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.tasks) > 0
}

func (s *Spawner) spawnLoop(ctx context.Context, floor int) {
	defer s.wg.Done()

	for {
		timer := time.NewTimer(s.randomDelay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if ctx.Err() != nil {
			return
		}

		target := s.randomFloorExcluding(floor)
		passenger, ok := s.admitter.AdmitPassenger(floor, target)
		if ok {
			s.listener.PassengerArrived(passenger)
		}
	}
}

// randomDelay is uniform over [minInterval, maxInterval].
func (s *Spawner) randomDelay() time.Duration {
	span := int64(s.maxInterval - s.minInterval)
	if span <= 0 {
		return s.minInterval
	}

	s.rngMtx.Lock()
	defer s.rngMtx.Unlock()
	return s.minInterval + time.Duration(s.rng.Int64N(span+1))
}

// randomFloorExcluding is uniform over every floor except current.
func (s *Spawner) randomFloorExcluding(current int) int {
	s.rngMtx.Lock()
	target := s.rng.IntN(s.admitter.FloorCount() - 1)
	s.rngMtx.Unlock()

	if target >= current {
		target++
	}
	return target
}
