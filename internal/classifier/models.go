// Package classifier implements the deterministic risk categorization engine:
// response-set validation, the prohibited / high-risk / low-risk rule cascade,
// and the confidence and audit trail construction.
//
// Everything in this package is a pure function of the response set and the
// rulepack; the hosting service (service.go) layers persistence, caching,
// audit events, and metrics on top.
package classifier

import (
	"time"

	id "riskengine/pkg/domain"
)

// Tier is the assigned risk category.
type Tier string

const (
	TierProhibited   Tier = "prohibited"
	TierHighRisk     Tier = "high_risk"
	TierLowRisk      Tier = "low_risk"
	TierManualReview Tier = "manual_review"
)

// ReasonCode explains a manual-review outcome.
type ReasonCode string

const (
	ReasonMissingData         ReasonCode = "missing_data"
	ReasonInconsistentAnswers ReasonCode = "inconsistent_answers"
	// ReasonUncertainProhibited marks a Maybe on an escalation-sensitive
	// prohibited question. Uncertainty on the prohibition axis is never
	// auto-resolved or downgraded.
	ReasonUncertainProhibited ReasonCode = "uncertain_prohibited_response"
)

// Rule numbers for the audit trail. RuleNone marks manual-review outcomes
// where no cascade rule fired.
const (
	RuleNone       = 0
	RuleProhibited = 1
	RuleHighRisk   = 2
	RuleLowRisk    = 3
)

// ValidationOutcome is the result of validating a response set.
// Either OK is true, or Reason and OffendingQuestions describe the failure.
type ValidationOutcome struct {
	OK                 bool
	Reason             ReasonCode
	OffendingQuestions []id.QuestionID
}

// Verdict is the raw evaluator output before confidence and audit data are
// attached. For the uncertain-prohibited escalation, Tier is TierManualReview
// and Reason is set; Triggers then holds the escalated question IDs.
type Verdict struct {
	Tier      Tier
	Reason    ReasonCode
	Triggers  []id.QuestionID
	FiredRule int
}

// ClassificationDecision is the engine output. It is produced fresh per
// evaluation, never mutated afterwards, and owned by the caller.
type ClassificationDecision struct {
	AssessmentID id.AssessmentID `json:"assessment_id"`
	SystemID     id.SystemID     `json:"system_id"`
	Tier         Tier            `json:"tier"`
	// Reason is set only when Tier is TierManualReview.
	Reason ReasonCode `json:"reason,omitempty"`
	// Confidence is in [0,1]. Zero for manual-review outcomes.
	Confidence float64 `json:"confidence"`
	// TriggeredBy is the ordered audit trail of question IDs that drove the
	// outcome. Empty only for TierLowRisk.
	TriggeredBy []id.QuestionID `json:"triggered_by,omitempty"`
	// FiredRule records which cascade rule produced the tier (1/2/3), or 0
	// for manual review.
	FiredRule int `json:"fired_rule"`
	// RecommendVerification is advisory: the decision stands, but its
	// confidence fell below the verification threshold.
	RecommendVerification bool      `json:"recommend_verification"`
	RulepackVersion       string    `json:"rulepack_version"`
	EvaluatedAt           time.Time `json:"evaluated_at"`
}

// IsManualReview reports whether the decision requires human handling.
func (d *ClassificationDecision) IsManualReview() bool {
	return d.Tier == TierManualReview
}
