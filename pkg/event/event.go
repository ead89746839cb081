package event

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 12:19
 * @file: event.go
 * @description: domain events published after a committed state change
 */

type Event interface {
	// EventName returns the name of the event, e.g. "invitation.accepted"
	EventName() string
	// EventType returns the aggregate the event belongs to, e.g. "invitation"
	EventType() string
}

type EventHandler interface {
	Handle(event Event)
}

// HandlerFunc adapts a plain function to EventHandler.
type HandlerFunc func(event Event)

func (f HandlerFunc) Handle(event Event) {
	f(event)
}

// Transition is implemented by events that record a status change.
type Transition interface {
	Transition() (from, to string)
}
