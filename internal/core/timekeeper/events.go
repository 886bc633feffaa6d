package timekeeper

import (
	"time"

	"pomodoro/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventComplete    EventType = "complete"
	EventNotifyError EventType = "notify_error"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type      EventType
	Mode      model.Mode
	Remaining time.Duration
	Total     time.Duration
	Progress  float64
	Running   bool
	Message   string
	At        time.Time
}
