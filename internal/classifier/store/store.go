// Package store persists classification decisions for auditability. The
// engine itself never writes state; persistence belongs to the hosting
// service, which owns the returned decisions.
package store

import (
	"context"

	"riskengine/internal/classifier"
	id "riskengine/pkg/domain"
)

// ErrNotFound is returned when no decision exists for the requested system.
// Aliased to the sentinel the service layer matches on, so implementations
// here and the orchestrator agree without an import cycle.
var ErrNotFound = classifier.ErrStoreNotFound

// Store persists decisions. Implementations must be safe for concurrent use.
type Store interface {
	// Save appends a decision. Decisions are immutable; there is no update.
	Save(ctx context.Context, decision *classifier.ClassificationDecision) error
	// Latest returns the most recent decision for a system.
	Latest(ctx context.Context, systemID id.SystemID) (*classifier.ClassificationDecision, error)
	// History returns all decisions for a system, newest first.
	History(ctx context.Context, systemID id.SystemID) ([]*classifier.ClassificationDecision, error)
}
