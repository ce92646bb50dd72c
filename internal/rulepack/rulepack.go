// Package rulepack holds the externally supplied classification rules: the
// canonical question tables for both sections, per-question follow-up
// predicates, penalty constants, and the verification threshold.
//
// A Pack is immutable after load and shared read-only across all evaluation
// goroutines. Compliance rule edits ship as new pack documents, not code.
package rulepack

import (
	"fmt"

	id "riskengine/pkg/domain"
)

// Section sizes are fixed by the questionnaire design.
const (
	ProhibitedCount = 7
	HighRiskCount   = 8
)

// Default penalty constants and verification threshold. A pack document may
// override any of them.
const (
	DefaultMaybePenalty          = 0.15
	DefaultFollowUpPenalty       = 0.05
	DefaultVerificationThreshold = 0.7
)

// Penalties are the confidence deductions applied by the audit builder.
type Penalties struct {
	// Maybe is subtracted once per Maybe answer in the contributing sections.
	Maybe float64 `json:"maybe"`
	// FollowUp is subtracted once per follow-up chain traversed to resolve a
	// primary Yes.
	FollowUp float64 `json:"follow_up"`
}

// FollowUp describes one follow-up question attached to a canonical question.
type FollowUp struct {
	ID   id.QuestionID `json:"id"`
	Text string        `json:"text"`
}

// Predicate is the per-question lookup entry driving both consistency checking
// and prohibited confirmation. Semantics:
//
//   - The clearing follow-up asks whether an exemption or clearance applies;
//     Yes clears the primary answer (the condition does not actually apply).
//   - An affirming follow-up asks whether the condition is actually present;
//     Yes affirms the primary answer.
//
// Contradiction: clearing answered Yes while any affirming is answered Yes.
// Confirmation of a prohibited Yes: any affirming Yes, or a clearing No.
type Predicate struct {
	ClearingFollowUp   id.QuestionID   `json:"clearing_follow_up,omitempty"`
	AffirmingFollowUps []id.QuestionID `json:"affirming_follow_ups,omitempty"`
}

// Question is one canonical questionnaire entry.
//
// EscalationSensitive marks prohibited-section questions whose Maybe answer
// must never be auto-resolved; it is ignored for the high-risk section.
type Question struct {
	ID                  id.QuestionID `json:"id"`
	Text                string        `json:"text"`
	FollowUps           []FollowUp    `json:"follow_ups,omitempty"`
	Predicate           *Predicate    `json:"predicate,omitempty"`
	EscalationSensitive bool          `json:"escalation_sensitive,omitempty"`
}

// HasFollowUps reports whether the question defines follow-up questions.
func (q *Question) HasFollowUps() bool { return len(q.FollowUps) > 0 }

// DefinesFollowUp reports whether fid is one of the question's follow-ups.
func (q *Question) DefinesFollowUp(fid id.QuestionID) bool {
	for _, fu := range q.FollowUps {
		if fu.ID == fid {
			return true
		}
	}
	return false
}

// Pack is one immutable rule configuration.
type Pack struct {
	Version               string     `json:"version"`
	Prohibited            []Question `json:"prohibited"`
	HighRisk              []Question `json:"high_risk"`
	Penalties             Penalties  `json:"penalties"`
	VerificationThreshold float64    `json:"verification_threshold"`

	prohibitedByID map[id.QuestionID]*Question
	highRiskByID   map[id.QuestionID]*Question
}

// Question looks up a canonical question by section and ID.
func (p *Pack) Question(section string, qid id.QuestionID) (*Question, bool) {
	var q *Question
	var ok bool
	switch section {
	case "prohibited":
		q, ok = p.prohibitedByID[qid]
	case "high_risk":
		q, ok = p.highRiskByID[qid]
	}
	return q, ok
}

// ProhibitedQuestion looks up a prohibited-section question by ID.
func (p *Pack) ProhibitedQuestion(qid id.QuestionID) (*Question, bool) {
	q, ok := p.prohibitedByID[qid]
	return q, ok
}

// HighRiskQuestion looks up a high-risk-section question by ID.
func (p *Pack) HighRiskQuestion(qid id.QuestionID) (*Question, bool) {
	q, ok := p.highRiskByID[qid]
	return q, ok
}

// Override replaces penalty constants or the verification threshold after
// load. Zero arguments keep the pack's value. Must be called before the pack
// is shared across goroutines.
func (p *Pack) Override(maybePenalty, followUpPenalty, verificationThreshold float64) error {
	if maybePenalty != 0 {
		if maybePenalty < 0 || maybePenalty > 1 {
			return fmt.Errorf("rulepack: maybe penalty override must be in [0,1], got %v", maybePenalty)
		}
		p.Penalties.Maybe = maybePenalty
	}
	if followUpPenalty != 0 {
		if followUpPenalty < 0 || followUpPenalty > 1 {
			return fmt.Errorf("rulepack: follow-up penalty override must be in [0,1], got %v", followUpPenalty)
		}
		p.Penalties.FollowUp = followUpPenalty
	}
	if verificationThreshold != 0 {
		if verificationThreshold < 0 || verificationThreshold > 1 {
			return fmt.Errorf("rulepack: verification threshold override must be in [0,1], got %v", verificationThreshold)
		}
		p.VerificationThreshold = verificationThreshold
	}
	return nil
}

// finalize builds lookup indexes and checks the pack's semantic invariants.
// Called once at load; packs are never mutated afterwards.
func (p *Pack) finalize() error {
	if p.Version == "" {
		return fmt.Errorf("rulepack: version is required")
	}
	if len(p.Prohibited) != ProhibitedCount {
		return fmt.Errorf("rulepack: prohibited section must have exactly %d questions, got %d", ProhibitedCount, len(p.Prohibited))
	}
	if len(p.HighRisk) != HighRiskCount {
		return fmt.Errorf("rulepack: high-risk section must have exactly %d questions, got %d", HighRiskCount, len(p.HighRisk))
	}
	if p.Penalties.Maybe == 0 {
		p.Penalties.Maybe = DefaultMaybePenalty
	}
	if p.Penalties.FollowUp == 0 {
		p.Penalties.FollowUp = DefaultFollowUpPenalty
	}
	if p.VerificationThreshold == 0 {
		p.VerificationThreshold = DefaultVerificationThreshold
	}
	if p.Penalties.Maybe < 0 || p.Penalties.Maybe > 1 {
		return fmt.Errorf("rulepack: maybe penalty must be in [0,1], got %v", p.Penalties.Maybe)
	}
	if p.Penalties.FollowUp < 0 || p.Penalties.FollowUp > 1 {
		return fmt.Errorf("rulepack: follow-up penalty must be in [0,1], got %v", p.Penalties.FollowUp)
	}
	if p.VerificationThreshold < 0 || p.VerificationThreshold > 1 {
		return fmt.Errorf("rulepack: verification threshold must be in [0,1], got %v", p.VerificationThreshold)
	}

	seen := make(map[id.QuestionID]bool)
	index := func(questions []Question, escalationAllowed bool) (map[id.QuestionID]*Question, error) {
		byID := make(map[id.QuestionID]*Question, len(questions))
		for i := range questions {
			q := &questions[i]
			if q.ID == "" {
				return nil, fmt.Errorf("rulepack: question at index %d has no id", i)
			}
			if seen[q.ID] {
				return nil, fmt.Errorf("rulepack: duplicate question id %q", q.ID)
			}
			seen[q.ID] = true
			if !escalationAllowed && q.EscalationSensitive {
				return nil, fmt.Errorf("rulepack: question %q: escalation sensitivity only applies to the prohibited section", q.ID)
			}
			for _, fu := range q.FollowUps {
				if fu.ID == "" {
					return nil, fmt.Errorf("rulepack: question %q has a follow-up with no id", q.ID)
				}
				if seen[fu.ID] {
					return nil, fmt.Errorf("rulepack: duplicate question id %q", fu.ID)
				}
				seen[fu.ID] = true
			}
			if err := checkPredicate(q); err != nil {
				return nil, err
			}
			byID[q.ID] = q
		}
		return byID, nil
	}

	var err error
	if p.prohibitedByID, err = index(p.Prohibited, true); err != nil {
		return err
	}
	if p.highRiskByID, err = index(p.HighRisk, false); err != nil {
		return err
	}
	return nil
}

// checkPredicate verifies a predicate only references follow-ups the question
// actually defines.
func checkPredicate(q *Question) error {
	if q.Predicate == nil {
		return nil
	}
	if !q.HasFollowUps() {
		return fmt.Errorf("rulepack: question %q has a predicate but no follow-ups", q.ID)
	}
	if c := q.Predicate.ClearingFollowUp; c != "" && !q.DefinesFollowUp(c) {
		return fmt.Errorf("rulepack: question %q predicate references unknown clearing follow-up %q", q.ID, c)
	}
	for _, a := range q.Predicate.AffirmingFollowUps {
		if !q.DefinesFollowUp(a) {
			return fmt.Errorf("rulepack: question %q predicate references unknown affirming follow-up %q", q.ID, a)
		}
	}
	return nil
}
