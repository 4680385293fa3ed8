package controller

import (
	"github.com/google/uuid"

	"elevatorsim/building"
	"elevatorsim/types"
)

func (c *Controller) RunID() uuid.UUID {
	return c.id
}

func (c *Controller) State() stateFSM {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.state
}

func (c *Controller) Direction() types.Direction {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.direction
}

func (c *Controller) Building() *building.Building {
	return c.building
}
