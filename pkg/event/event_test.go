package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/16 12:33
 * @file: event_test.go
 * @description:
 */

type testEvent struct {
	name string
	kind string
}

func (e testEvent) EventName() string { return e.name }

func (e testEvent) EventType() string { return e.kind }

func TestEventBus_Publish(t *testing.T) {
	bus := NewEventBus()

	var named, all []string
	bus.RegisterHandler("invitation.accepted", HandlerFunc(func(e Event) {
		named = append(named, e.EventName())
	}))
	bus.RegisterHandler(Wildcard, HandlerFunc(func(e Event) {
		all = append(all, e.EventType())
	}))

	bus.Publish(testEvent{name: "invitation.accepted", kind: "invitation"})
	bus.Publish(testEvent{name: "maintenance.created", kind: "maintenance"})

	assert.Equal(t, []string{"invitation.accepted"}, named)
	assert.Equal(t, []string{"invitation", "maintenance"}, all)
}

func TestEventBus_PanickingHandler(t *testing.T) {
	bus := NewEventBus()

	delivered := false
	bus.RegisterHandler("boom", HandlerFunc(func(Event) { panic("handler exploded") }))
	bus.RegisterHandler("boom", HandlerFunc(func(Event) { delivered = true }))

	assert.NotPanics(t, func() {
		bus.Publish(testEvent{name: "boom"})
	})
	assert.True(t, delivered, "handlers after a panicking one still run")
}
