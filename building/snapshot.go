package building

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"

	"elevatorsim/types"
)

// Snapshot is a detached copy of the building taken under its lock. Nothing
// in it aliases live state.
type Snapshot struct {
	CurrentFloor int
	Capacity     int
	Floors       []*Floor
	Onboard      []*types.Passenger
	Stats        Stats
}

func (b *Building) Snapshot() Snapshot {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	live := Snapshot{
		CurrentFloor: b.elevator.CurrentFloor(),
		Capacity:     b.elevator.Capacity(),
		Floors:       b.floors,
		Onboard:      b.elevator.passengers,
		Stats:        b.stats,
	}

	var snap Snapshot
	if err := deepcopy.Copy(&snap, &live); err != nil {
		panic(fmt.Sprintf("failed to copy building state: %v", err))
	}
	return snap
}

func (s *Snapshot) FloorCount() int {
	return len(s.Floors)
}

func (s *Snapshot) HasWaiting(floor int, d types.Direction) bool {
	return hasWaiting(s.Floors, floor, d)
}

func (s *Snapshot) FindNearestFloorWithWaiting(fromFloor int, d types.Direction) (int, bool) {
	return nearestWaitingAhead(s.Floors, fromFloor, d)
}

func (s *Snapshot) FindClosestFloorWithWaiting(fromFloor int) (int, bool) {
	return closestWaiting(s.Floors, fromFloor)
}

func (s *Snapshot) FreeCapacity() int {
	return s.Capacity - len(s.Onboard)
}

func (s *Snapshot) HasPassengers() bool {
	return len(s.Onboard) > 0
}

func (s *Snapshot) WaitingCount() int {
	n := 0
	for _, f := range s.Floors {
		n += f.QueueLength()
	}
	return n
}

// OnboardDestinations lists the destinations of everyone inside, in boarding
// order, duplicates included.
func (s *Snapshot) OnboardDestinations() []int {
	destinations := make([]int, 0, len(s.Onboard))
	for _, p := range s.Onboard {
		destinations = append(destinations, p.Destination)
	}
	return destinations
}
