package handler

import (
	"time"

	"riskengine/internal/classifier"
	id "riskengine/pkg/domain"
)

// DecisionResponse is the HTTP representation of a classification decision.
type DecisionResponse struct {
	AssessmentID          string    `json:"assessment_id"`
	SystemID              string    `json:"system_id"`
	Tier                  string    `json:"tier"`
	Reason                string    `json:"reason,omitempty"`
	Confidence            float64   `json:"confidence"`
	TriggeredBy           []string  `json:"triggered_by,omitempty"`
	FiredRule             int       `json:"fired_rule"`
	RecommendVerification bool      `json:"recommend_verification"`
	RulepackVersion       string    `json:"rulepack_version"`
	EvaluatedAt           time.Time `json:"evaluated_at"`
}

// FromDecision converts a domain decision to its HTTP representation.
func FromDecision(decision *classifier.ClassificationDecision) *DecisionResponse {
	return &DecisionResponse{
		AssessmentID:          decision.AssessmentID.String(),
		SystemID:              decision.SystemID.String(),
		Tier:                  string(decision.Tier),
		Reason:                string(decision.Reason),
		Confidence:            decision.Confidence,
		TriggeredBy:           id.QuestionIDStrings(decision.TriggeredBy),
		FiredRule:             decision.FiredRule,
		RecommendVerification: decision.RecommendVerification,
		RulepackVersion:       decision.RulepackVersion,
		EvaluatedAt:           decision.EvaluatedAt,
	}
}

// BatchEntryResponse is one entry of a batch evaluation response.
type BatchEntryResponse struct {
	Decision *DecisionResponse `json:"decision,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// HistoryResponse wraps a system's decision history.
type HistoryResponse struct {
	SystemID  string              `json:"system_id"`
	Decisions []*DecisionResponse `json:"decisions"`
}
