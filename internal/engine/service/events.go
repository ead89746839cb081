package service

import (
	"github.com/go-arcade/edo/internal/engine/model"
	"github.com/go-arcade/edo/pkg/event"
	"github.com/go-arcade/edo/pkg/log"
)

const (
	EventInvitationCreated   = "invitation.created"
	EventInvitationAccepted  = "invitation.accepted"
	EventInvitationExpired   = "invitation.expired"
	EventInvitationCancelled = "invitation.cancelled"

	EventMaintenanceCreated       = "maintenance.created"
	EventMaintenanceStatusChanged = "maintenance.status_changed"
	EventMaintenanceAssigned      = "maintenance.assigned"

	EventVacateResponded = "vacate.responded"

	EventChatSent = "chat.sent"
)

// StatusEvent is published after a committed change of an aggregate's status.
type StatusEvent struct {
	Name      string
	Aggregate string
	ID        uint64
	From      string
	To        string
}

func (e StatusEvent) EventName() string {
	return e.Name
}

func (e StatusEvent) EventType() string {
	return e.Aggregate
}

func (e StatusEvent) Transition() (from, to string) {
	return e.From, e.To
}

// ChatEvent carries a stored chat message to live subscribers.
type ChatEvent struct {
	Message *model.ChatMessage
	From    string
	To      string
}

func (e ChatEvent) EventName() string {
	return EventChatSent
}

func (e ChatEvent) EventType() string {
	return "chat"
}

// publisher hands events to the bus. A nil bus drops them.
type publisher struct {
	bus *event.EventBus
}

func (p publisher) publish(e event.Event) {
	if p.bus == nil {
		return
	}
	log.Debugw("publish event", "event", e.EventName(), "type", e.EventType())
	p.bus.Publish(e)
}
