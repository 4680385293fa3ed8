package flow

import (
	"time"

	"github.com/golang/glog"

	"elevatorsim/building"
	"elevatorsim/types"
)

type Phase int

const (
	Unloading Phase = 0
	Loading   Phase = 1
)

// Engine moves passengers between the elevator and the floor it stands on.
type Engine struct {
	building        *building.Building
	presenter       types.Presenter
	loadingDuration time.Duration
}

func NewEngine(b *building.Building, p types.Presenter, loadingDuration time.Duration) *Engine {
	return &Engine{
		building:        b,
		presenter:       p,
		loadingDuration: loadingDuration,
	}
}

// ServiceFloor unloads everyone headed for floor, then loads passengers going
// d in queue order while there is room. Each step that moves at least one
// passenger takes the loading duration; onPhase is told before it starts.
func (e *Engine) ServiceFloor(floor int, d types.Direction, onPhase func(Phase)) (alighted, boarded []types.Passenger) {
	alighted = e.building.Alight(floor)
	if len(alighted) > 0 {
		onPhase(Unloading)
		for _, p := range alighted {
			glog.Infof("[Alighted] Passenger %d left at floor %d", p.ID, floor)
			e.presenter.PassengerAlighted(p)
		}
		e.wait()
	}

	boarded = e.building.Board(floor, d)
	if len(boarded) > 0 {
		onPhase(Loading)
		for _, p := range boarded {
			glog.Infof("[Boarded] Passenger %d boarded at floor %d", p.ID, floor)
			e.presenter.PassengerBoarded(p)
		}
		e.wait()
	}

	return alighted, boarded
}

func (e *Engine) wait() {
	if e.loadingDuration > 0 {
		time.Sleep(e.loadingDuration)
	}
}
