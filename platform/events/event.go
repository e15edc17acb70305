// Package events is the in-process pub/sub layer that claim, inventory, and
// task modules use to react to each other without direct imports. It carries
// no business logic; concrete event types live in internal/events.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event published on the bus.
type Event interface {
	// EventName returns the stable identifier handlers subscribe to.
	EventName() string
	// OccurredAt returns when the event happened.
	OccurredAt() time.Time
}

// BaseEvent carries the timestamp shared by all event types. Embed it and
// implement EventName on the concrete type.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns when the event happened.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler consumes events of one subscribed type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function into a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes domain events to subscribed handlers.
type Bus interface {
	// Publish fans an event out to its handlers asynchronously. Delivery
	// outlives the publishing request's context.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers the event inline and returns the first handler
	// error. Used where the caller must observe handler failure.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler under the name the event type returns
	// from EventName.
	Subscribe(eventName string, handler Handler)
}
