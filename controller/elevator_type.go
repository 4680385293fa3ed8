package controller

import "fmt"

type stateFSM int

const (
	ST_Idle      stateFSM = 0
	ST_Moving    stateFSM = 1
	ST_Loading   stateFSM = 2
	ST_Unloading stateFSM = 3
)

func (s stateFSM) String() string {
	switch s {
	case ST_Idle:
		return "Idle"
	case ST_Moving:
		return "Moving"
	case ST_Loading:
		return "Loading"
	case ST_Unloading:
		return "Unloading"
	}
	return fmt.Sprintf("stateFSM(%d)", int(s))
}
