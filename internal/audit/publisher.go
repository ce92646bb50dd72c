package audit

import (
	"context"
	"time"
)

// Sink receives audit events. Implementations must tolerate concurrent Append
// calls.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Publisher hands events to a buffered inbox consumed by a Worker, so audit
// delivery never blocks the evaluation path. If the inbox is full the event
// is dropped and reported via the DroppedFunc hook; classification outcomes
// are already persisted in the decision store, the trail is supplementary.
type Publisher struct {
	inbox   chan Event
	dropped func(Event)
}

// NewPublisher creates a publisher with the given inbox capacity.
// dropped may be nil.
func NewPublisher(capacity int, dropped func(Event)) *Publisher {
	if capacity <= 0 {
		capacity = 256
	}
	return &Publisher{
		inbox:   make(chan Event, capacity),
		dropped: dropped,
	}
}

// Emit enqueues an event, stamping the time if unset. Never blocks.
func (p *Publisher) Emit(_ context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
		if p.dropped != nil {
			p.dropped(event)
		}
	}
}

// Inbox exposes the receive side for the worker.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}
