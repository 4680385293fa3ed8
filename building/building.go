package building

import (
	"fmt"
	"sync"

	"github.com/golang/glog"

	"elevatorsim/types"
)

type Stats struct {
	Admitted  int
	Rejected  int
	Boarded   int
	Delivered int
}

// Building owns the floors, the elevator and the passenger id counter. Every
// method is atomic with respect to the others.
type Building struct {
	mtx            sync.Mutex
	floors         []*Floor
	elevator       *Elevator
	maxQueueLength int
	nextID         int
	stats          Stats
}

func NewBuilding(floorCount, capacity, maxQueueLength int) *Building {
	if floorCount < 2 {
		panic(fmt.Sprintf("a building needs at least 2 floors, got %d", floorCount))
	}
	if maxQueueLength < 1 {
		panic(fmt.Sprintf("max queue length must be positive, got %d", maxQueueLength))
	}

	floors := make([]*Floor, floorCount)
	for i := range floorCount {
		floors[i] = newFloor(i)
	}

	return &Building{
		floors:         floors,
		elevator:       newElevator(capacity),
		maxQueueLength: maxQueueLength,
		nextID:         1,
	}
}

func (b *Building) FloorCount() int {
	return len(b.floors)
}

func (b *Building) Capacity() int {
	return b.elevator.Capacity()
}

// AdmitPassenger queues a new passenger on its origin floor. ok is false when
// that floor's queues are already full; nothing is created in that case.
func (b *Building) AdmitPassenger(origin, destination int) (p types.Passenger, ok bool) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.checkFloor(origin)
	b.checkFloor(destination)
	if origin == destination {
		panic(fmt.Sprintf("passenger origin and destination are both floor %d", origin))
	}

	floor := b.floors[origin]
	if floor.QueueLength() >= b.maxQueueLength {
		b.stats.Rejected++
		glog.Warningf("[Spawn] Queue full on floor %d, skip spawning", origin)
		return types.Passenger{}, false
	}

	passenger := types.NewPassenger(b.nextID, origin, destination)
	b.nextID++
	floor.enqueue(&passenger)
	b.stats.Admitted++

	return passenger, true
}

func (b *Building) HasWaiting(floor int, d types.Direction) bool {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.checkFloor(floor)
	return hasWaiting(b.floors, floor, d)
}

// FindNearestFloorWithWaiting looks ahead of fromFloor in direction d.
func (b *Building) FindNearestFloorWithWaiting(fromFloor int, d types.Direction) (int, bool) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return nearestWaitingAhead(b.floors, fromFloor, d)
}

func (b *Building) CurrentFloor() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return b.elevator.CurrentFloor()
}

func (b *Building) SetCurrentFloor(floor int) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.checkFloor(floor)
	b.elevator.currentFloor = floor
}

// ShouldStopAt reports whether a moving elevator scheduled in direction d has
// business on floor: someone inside gets off there, or someone there is
// going d and fits.
func (b *Building) ShouldStopAt(floor int, d types.Direction) bool {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.checkFloor(floor)
	if b.elevator.HasPassengerFor(floor) {
		return true
	}
	return b.elevator.FreeCapacity() > 0 && hasWaiting(b.floors, floor, d)
}

// Alight removes every onboard passenger whose destination is floor. The
// elevator has to be standing on floor.
func (b *Building) Alight(floor int) []types.Passenger {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if floor != b.elevator.CurrentFloor() {
		panic(fmt.Sprintf("unloading at floor %d while the elevator is at floor %d", floor, b.elevator.CurrentFloor()))
	}

	exiting := b.elevator.disembark()
	b.stats.Delivered += len(exiting)
	return values(exiting)
}

// Board moves passengers from the front of floor's d queue into the elevator
// until it is full. Whoever does not fit stays queued.
func (b *Building) Board(floor int, d types.Direction) []types.Passenger {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if floor != b.elevator.CurrentFloor() {
		panic(fmt.Sprintf("loading at floor %d while the elevator is at floor %d", floor, b.elevator.CurrentFloor()))
	}

	boarding := b.floors[floor].dequeue(d, b.elevator.FreeCapacity())
	for _, p := range boarding {
		b.elevator.board(p)
	}
	b.stats.Boarded += len(boarding)

	return values(boarding)
}

func (b *Building) Stats() Stats {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	return b.stats
}

func (b *Building) checkFloor(floor int) {
	if floor < 0 || floor >= len(b.floors) {
		panic(fmt.Sprintf("floor %d out of range [0, %d)", floor, len(b.floors)))
	}
}

func values(passengers []*types.Passenger) []types.Passenger {
	out := make([]types.Passenger, 0, len(passengers))
	for _, p := range passengers {
		out = append(out, *p)
	}
	return out
}
