package events

import (
	"time"

	"github.com/apex/log"
)

type (
	Event interface {
		log.Fielder
		Type() Type
		When() Time
	}

	Type string

	// Time is embedded by events to implement When.
	Time time.Time

	Handler interface {
		HandleEvent(Event)
	}

	Dispatcher interface {
		DispatchEvent(Event)
	}
)

func Now() Time {
	return Time(time.Now())
}

func (t Time) When() Time {
	return t
}

// String formats t as a wall clock time.
func (t Time) String() string {
	return time.Time(t).Format("15:04:05.000")
}
