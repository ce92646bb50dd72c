// Package audit captures an append-only trail of classification outcomes.
// Events are emitted by the classifier service and fanned out to a sink
// (Kafka in production, an in-memory store in tests) by a background worker.
package audit

import "time"

// Event records one classification outcome. Keep it transport-agnostic so
// stores and sinks can fan out.
type Event struct {
	Timestamp       time.Time `json:"timestamp"`
	AssessmentID    string    `json:"assessment_id"`
	SystemID        string    `json:"system_id"`
	Actor           string    `json:"actor,omitempty"`
	Tier            string    `json:"tier"`
	Reason          string    `json:"reason,omitempty"`
	TriggeredBy     []string  `json:"triggered_by,omitempty"`
	Confidence      float64   `json:"confidence"`
	FiredRule       int       `json:"fired_rule"`
	RulepackVersion string    `json:"rulepack_version"`
}
