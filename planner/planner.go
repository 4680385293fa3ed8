package planner

import (
	"fmt"

	"elevatorsim/building"
	"elevatorsim/types"
)

type Action int

const (
	ActionIdle        Action = 0
	ActionMove        Action = 1
	ActionServiceHere Action = 2
)

func (a Action) String() string {
	switch a {
	case ActionIdle:
		return "Idle"
	case ActionMove:
		return "Move"
	case ActionServiceHere:
		return "ServiceHere"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Plan is the outcome of one decision. Direction is the scheduling direction
// the controller continues with.
type Plan struct {
	Action    Action
	Target    int
	Direction types.Direction
}

// Next picks what to do after the current floor has been serviced while
// scheduled in direction d. It only reads the snapshot.
func Next(s *building.Snapshot, d types.Direction) Plan {
	current := s.CurrentFloor

	// keep going as long as there is something ahead
	if target, ok := nextInDirection(s, current, d); ok {
		return Plan{Action: ActionMove, Target: target, Direction: d}
	}

	reversed := d.Reverse()

	// someone here wants to go the other way
	if s.HasWaiting(current, reversed) {
		return Plan{Action: ActionServiceHere, Target: current, Direction: reversed}
	}

	if s.HasPassengers() {
		target, ok := nearestDestination(s, current, reversed)
		if !ok {
			panic(fmt.Sprintf("passengers onboard at floor %d but no destination in either direction: %v",
				current, s.OnboardDestinations()))
		}
		return Plan{Action: ActionMove, Target: target, Direction: reversed}
	}

	if target, ok := s.FindClosestFloorWithWaiting(current); ok {
		if target == current {
			// arrived after the floor was serviced, still going d
			return Plan{Action: ActionServiceHere, Target: current, Direction: d}
		}
		return Plan{Action: ActionMove, Target: target, Direction: types.DirectionBetween(current, target)}
	}

	return Plan{Action: ActionIdle, Target: current, Direction: reversed}
}

func nextInDirection(s *building.Snapshot, current int, d types.Direction) (int, bool) {
	if target, ok := nearestDestination(s, current, d); ok {
		return target, true
	}
	return s.FindNearestFloorWithWaiting(current, d)
}

// nearestDestination is the closest onboard destination strictly ahead of
// current in direction d.
func nearestDestination(s *building.Snapshot, current int, d types.Direction) (int, bool) {
	found := false
	nearest := current

	for _, dest := range s.OnboardDestinations() {
		ahead := (d == types.Up && dest > current) || (d == types.Down && dest < current)
		if !ahead {
			continue
		}
		if !found || distance(current, dest) < distance(current, nearest) {
			nearest = dest
			found = true
		}
	}

	return nearest, found
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
