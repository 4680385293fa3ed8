package controller

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"elevatorsim/building"
	"elevatorsim/config"
	"elevatorsim/flow"
	"elevatorsim/planner"
	"elevatorsim/spawner"
	"elevatorsim/types"
)

type Controller struct {
	id           uuid.UUID
	building     *building.Building
	flow         *flow.Engine
	spawner      *spawner.Spawner
	presenter    types.Presenter
	movePerFloor time.Duration

	mtx       sync.Mutex
	state     stateFSM
	direction types.Direction
	pending   bool
	settled   bool
	idle      chan struct{} // closed while idle with nothing pending

	wake chan struct{}
}

func NewController(cfg config.Config, presenter types.Presenter) *Controller {
	b := building.NewBuilding(cfg.Floors, cfg.Capacity, cfg.MaxQueueLength)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	c := &Controller{
		id:           uuid.New(),
		building:     b,
		flow:         flow.NewEngine(b, presenter, cfg.LoadingDuration),
		presenter:    presenter,
		movePerFloor: cfg.MovePerFloor,
		state:        ST_Idle,
		direction:    types.Up,
		idle:         make(chan struct{}),
		wake:         make(chan struct{}, 1),
	}
	c.spawner = spawner.NewSpawner(b, c, cfg.SpawnIntervalMin, cfg.SpawnIntervalMax, rand.New(rand.NewPCG(seed, seed>>1|1)))

	return c
}

// StartSimulation starts spawning passengers and runs the dispatch loop in
// the background until ctx is cancelled.
func (c *Controller) StartSimulation(ctx context.Context) {
	glog.Infof("Starting simulation %s", c.id)
	c.spawner.Start(ctx)
	go c.Run(ctx)
}

// StopSimulation halts spawning. The elevator keeps serving whoever is
// already in the building.
func (c *Controller) StopSimulation() {
	c.spawner.Stop()
	glog.Infof("Stopped spawning in simulation %s", c.id)
}

// Run is the dispatch loop. It runs one decision cycle right away and then one
// per wake-up, returning when ctx is done. A cycle in progress is never cut
// short.
func (c *Controller) Run(ctx context.Context) error {
	c.tryNextMove()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.wake:
			c.tryNextMove()
		}
	}
}

// PassengerArrived records a new passenger and wakes the dispatch loop if it
// is idle. Arrivals during a cycle are picked up by that cycle.
func (c *Controller) PassengerArrived(p types.Passenger) {
	glog.Infof("[Spawn] Passenger %d on floor %d -> %v to %d", p.ID, p.Origin, p.Direction, p.Destination)
	c.presenter.PassengerCreated(p)

	c.mtx.Lock()
	c.pending = true
	c.unsettle()
	c.mtx.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// WaitIdle blocks until the engine is idle with no unhandled arrival.
func (c *Controller) WaitIdle(ctx context.Context) error {
	c.mtx.Lock()
	idle := c.idle
	c.mtx.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) tryNextMove() {
	c.mtx.Lock()
	if c.state != ST_Idle {
		c.mtx.Unlock()
		return
	}
	c.pending = false
	c.unsettle()
	c.mtx.Unlock()

	c.handleCurrentFloor()

	c.mtx.Lock()
	c.state = ST_Idle
	if !c.pending {
		c.settle()
	}
	c.mtx.Unlock()
}

// handleCurrentFloor services the floor the elevator stands on and keeps
// planning and moving until there is nothing left to do.
func (c *Controller) handleCurrentFloor() {
	for {
		floor := c.building.CurrentFloor()
		direction := c.Direction()

		c.flow.ServiceFloor(floor, direction, c.onPhase)

		snap := c.building.Snapshot()
		plan := planner.Next(&snap, direction)
		glog.V(1).Infof("[Plan] at floor %d going %v: %v floor %d going %v",
			floor, direction, plan.Action, plan.Target, plan.Direction)

		c.setDirection(plan.Direction)

		switch plan.Action {
		case planner.ActionServiceHere:
			continue

		case planner.ActionMove:
			c.moveTo(plan.Target)

		case planner.ActionIdle:
			return
		}
	}
}

// moveTo travels floor by floor. On the way it stops wherever someone gets
// off or someone going the scheduled direction fits in.
func (c *Controller) moveTo(target int) {
	from := c.building.CurrentFloor()
	if target == from {
		return
	}

	c.setState(ST_Moving)
	direction := c.Direction()

	for _, floor := range floorsBetween(from, target) {
		<-c.presenter.AnimateElevatorMove(floor, c.movePerFloor)
		c.building.SetCurrentFloor(floor)

		if floor != target && c.building.ShouldStopAt(floor, direction) {
			glog.Infof("[Pickup] Stopping at floor %d", floor)
			c.flow.ServiceFloor(floor, direction, c.onPhase)
			c.setState(ST_Moving)
		}
	}

	glog.Infof("[Arrived] at floor %d", target)
}

// floorsBetween lists the floors passed going from start to end, end
// included and start excluded.
func floorsBetween(start, end int) []int {
	step := 1
	if end < start {
		step = -1
	}

	floors := make([]int, 0, (end-start)*step)
	for f := start + step; f != end+step; f += step {
		floors = append(floors, f)
	}
	return floors
}

func (c *Controller) onPhase(p flow.Phase) {
	switch p {
	case flow.Unloading:
		c.setState(ST_Unloading)
	case flow.Loading:
		c.setState(ST_Loading)
	}
}

func (c *Controller) setState(s stateFSM) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.state = s
}

func (c *Controller) setDirection(d types.Direction) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.direction = d
}

// settle and unsettle must be called with mtx held.
func (c *Controller) settle() {
	if !c.settled {
		close(c.idle)
		c.settled = true
	}
}

func (c *Controller) unsettle() {
	if c.settled {
		c.idle = make(chan struct{})
		c.settled = false
	}
}
