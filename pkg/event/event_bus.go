package event

import (
	"sync"

	"github.com/go-arcade/edo/pkg/log"
	"github.com/go-arcade/edo/pkg/safe"
)

// Wildcard handlers receive every published event.
const Wildcard = "*"

type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]EventHandler),
	}
}

func (eb *EventBus) RegisterHandler(eventName string, handler EventHandler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers[eventName] = append(eb.handlers[eventName], handler)
}

// Publish delivers event synchronously. A panicking handler is logged and skipped.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	handlers := make([]EventHandler, 0, len(eb.handlers[event.EventName()])+len(eb.handlers[Wildcard]))
	handlers = append(handlers, eb.handlers[event.EventName()]...)
	handlers = append(handlers, eb.handlers[Wildcard]...)
	eb.mu.RUnlock()

	for _, handler := range handlers {
		if err := safe.Do(func() { handler.Handle(event) }); err != nil {
			log.Warnw("event handler failed", "event", event.EventName(), "error", err)
		}
	}
}
