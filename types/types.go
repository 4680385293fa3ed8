package types

import (
	"fmt"
	"time"
)

type Direction int

const (
	Up   Direction = 0
	Down Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func (d Direction) Reverse() Direction {
	if d == Up {
		return Down
	}
	return Up
}

// DirectionBetween is Up iff to lies above from.
func DirectionBetween(from, to int) Direction {
	if to > from {
		return Up
	}
	return Down
}

// Passenger is immutable once admitted. Containers hold it by pointer and
// hand out copies.
type Passenger struct {
	ID          int
	Origin      int
	Destination int
	Direction   Direction
}

func NewPassenger(id, origin, destination int) Passenger {
	return Passenger{
		ID:          id,
		Origin:      origin,
		Destination: destination,
		Direction:   DirectionBetween(origin, destination),
	}
}

// Presenter is the visual side of the simulation. The controller blocks on the
// channel returned by AnimateElevatorMove; the passenger notifications are
// fire-and-forget.
type Presenter interface {
	AnimateElevatorMove(floor int, duration time.Duration) <-chan struct{}
	PassengerCreated(p Passenger)
	PassengerBoarded(p Passenger)
	PassengerAlighted(p Passenger)
}
