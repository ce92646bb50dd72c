package audit

import (
	"context"
	"log/slog"
)

// Worker consumes audit events from the publisher inbox and appends them to
// the configured sink. Sink failures are logged and the worker keeps going;
// the audit trail must never take down evaluation.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run processes events until ctx is cancelled. Drains remaining buffered
// events before returning so shutdown does not lose the tail of the trail.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event := <-w.inbox:
			w.append(ctx, event)
		}
	}
}

func (w *Worker) drain() {
	// Bounded by the inbox capacity; uses a background context because the
	// run context is already cancelled.
	ctx := context.Background()
	for {
		select {
		case event := <-w.inbox:
			w.append(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) append(ctx context.Context, event Event) {
	if err := w.sink.Append(ctx, event); err != nil && w.logger != nil {
		w.logger.ErrorContext(ctx, "audit sink append failed",
			"assessment_id", event.AssessmentID,
			"system_id", event.SystemID,
			"error", err,
		)
	}
}
