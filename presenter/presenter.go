// Package presenter stands in for the visual side of the simulation. It does
// not draw anything: moves take their requested duration and passenger
// changes are written to the log.
package presenter

import (
	"sync"
	"time"

	"github.com/golang/glog"

	"elevatorsim/types"
)

type Console struct {
	mtx     sync.Mutex
	floor   int
	waiting map[int]types.Passenger
	riding  map[int]types.Passenger
}

func NewConsole() *Console {
	return &Console{
		waiting: make(map[int]types.Passenger),
		riding:  make(map[int]types.Passenger),
	}
}

func (c *Console) AnimateElevatorMove(floor int, duration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	glog.V(2).Infof("[View] elevator -> floor %d over %v", floor, duration)

	arrive := func() {
		c.mtx.Lock()
		c.floor = floor
		c.mtx.Unlock()
		close(done)
	}

	if duration <= 0 {
		arrive()
	} else {
		time.AfterFunc(duration, arrive)
	}
	return done
}

func (c *Console) PassengerCreated(p types.Passenger) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.waiting[p.ID] = p
	glog.V(2).Infof("[View] passenger %d queued on floor %d (%d waiting)", p.ID, p.Origin, c.countWaiting(p.Origin))
}

func (c *Console) PassengerBoarded(p types.Passenger) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	delete(c.waiting, p.ID)
	c.riding[p.ID] = p
	glog.V(2).Infof("[View] passenger %d entered the car (%d inside)", p.ID, len(c.riding))
}

func (c *Console) PassengerAlighted(p types.Passenger) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	delete(c.riding, p.ID)
	glog.V(2).Infof("[View] passenger %d exited on floor %d (%d inside)", p.ID, p.Destination, len(c.riding))
}

// Floor is where the car was last drawn.
func (c *Console) Floor() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.floor
}

// Visible returns how many passengers are drawn on floors and in the car.
func (c *Console) Visible() (waiting, riding int) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.waiting), len(c.riding)
}

func (c *Console) countWaiting(floor int) int {
	n := 0
	for _, p := range c.waiting {
		if p.Origin == floor {
			n++
		}
	}
	return n
}
