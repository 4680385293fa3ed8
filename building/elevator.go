package building

import (
	"fmt"

	"elevatorsim/types"
)

// Elevator is the car: where it is and who is inside. Its direction belongs
// to the controller.
type Elevator struct {
	currentFloor int
	capacity     int
	passengers   []*types.Passenger
}

func newElevator(capacity int) *Elevator {
	if capacity < 1 {
		panic(fmt.Sprintf("elevator capacity must be positive, was %d", capacity))
	}
	return &Elevator{capacity: capacity}
}

func (e *Elevator) CurrentFloor() int {
	return e.currentFloor
}

func (e *Elevator) Capacity() int {
	return e.capacity
}

func (e *Elevator) FreeCapacity() int {
	return e.capacity - len(e.passengers)
}

func (e *Elevator) HasPassengers() bool {
	return len(e.passengers) > 0
}

func (e *Elevator) HasPassengerFor(floor int) bool {
	for _, p := range e.passengers {
		if p.Destination == floor {
			return true
		}
	}
	return false
}

func (e *Elevator) board(p *types.Passenger) {
	if e.FreeCapacity() <= 0 {
		panic(fmt.Sprintf("boarding passenger %d into a full elevator (capacity %d)", p.ID, e.capacity))
	}
	e.passengers = append(e.passengers, p)
}

// disembark removes every passenger whose destination is the current floor.
func (e *Elevator) disembark() []*types.Passenger {
	var exiting []*types.Passenger
	staying := make([]*types.Passenger, 0, len(e.passengers))

	for _, p := range e.passengers {
		if p.Destination == e.currentFloor {
			exiting = append(exiting, p)
		} else {
			staying = append(staying, p)
		}
	}

	e.passengers = staying
	return exiting
}
