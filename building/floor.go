package building

import "elevatorsim/types"

// Floor keeps passengers waiting for pickup in arrival order, one queue per
// direction. It does not limit queue length; Building does.
type Floor struct {
	Number int
	Up     []*types.Passenger
	Down   []*types.Passenger
}

func newFloor(number int) *Floor {
	return &Floor{Number: number}
}

func (f *Floor) QueueLength() int {
	return len(f.Up) + len(f.Down)
}

func (f *Floor) HasWaitingPassengers() bool {
	return f.QueueLength() > 0
}

func (f *Floor) Waiting(d types.Direction) []*types.Passenger {
	if d == types.Up {
		return f.Up
	}
	return f.Down
}

func (f *Floor) HasWaiting(d types.Direction) bool {
	return len(f.Waiting(d)) > 0
}

func (f *Floor) enqueue(p *types.Passenger) {
	if p.Origin != f.Number {
		panic("passenger queued on a floor other than its origin")
	}
	if p.Direction == types.Up {
		f.Up = append(f.Up, p)
		return
	}
	f.Down = append(f.Down, p)
}

// dequeue removes up to n passengers from the front of the queue for d.
func (f *Floor) dequeue(d types.Direction, n int) []*types.Passenger {
	queue := f.Waiting(d)
	if n > len(queue) {
		n = len(queue)
	}
	if n <= 0 {
		return nil
	}

	taken := make([]*types.Passenger, n)
	copy(taken, queue[:n])
	rest := append([]*types.Passenger(nil), queue[n:]...)

	if d == types.Up {
		f.Up = rest
	} else {
		f.Down = rest
	}
	return taken
}

func hasWaiting(floors []*Floor, floor int, d types.Direction) bool {
	return floors[floor].HasWaiting(d)
}

// nearestWaitingAhead scans floors strictly beyond from in direction d,
// nearest first, for a non-empty queue in d.
func nearestWaitingAhead(floors []*Floor, from int, d types.Direction) (int, bool) {
	if d == types.Up {
		for f := from + 1; f < len(floors); f++ {
			if floors[f].HasWaiting(d) {
				return f, true
			}
		}
		return 0, false
	}

	for f := from - 1; f >= 0; f-- {
		if floors[f].HasWaiting(d) {
			return f, true
		}
	}
	return 0, false
}

// closestWaiting searches every floor for waiting passengers of either
// direction. Equal distances resolve to the lower floor.
func closestWaiting(floors []*Floor, from int) (int, bool) {
	closest := -1
	minDistance := len(floors)

	for i, floor := range floors {
		if !floor.HasWaitingPassengers() {
			continue
		}
		distance := abs(from - i)
		if distance < minDistance {
			minDistance = distance
			closest = i
		}
	}

	return closest, closest != -1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
