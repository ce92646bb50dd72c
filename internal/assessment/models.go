// Package assessment defines the questionnaire response model handed to the
// engine by the intake flow. A ResponseSet is read-only once submitted; the
// engine never mutates or persists it.
package assessment

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	id "riskengine/pkg/domain"
)

// QuestionAnswer is one question's response: the canonical question ID, the
// primary answer, and zero or more follow-up answers that refine or confirm
// the primary answer.
type QuestionAnswer struct {
	QuestionID id.QuestionID    `json:"question_id"`
	Answer     id.Answer        `json:"answer"`
	FollowUps  []QuestionAnswer `json:"follow_ups,omitempty"`
}

// FollowUp returns the follow-up answer with the given ID, or nil.
func (qa *QuestionAnswer) FollowUp(fid id.QuestionID) *QuestionAnswer {
	for i := range qa.FollowUps {
		if qa.FollowUps[i].QuestionID == fid {
			return &qa.FollowUps[i]
		}
	}
	return nil
}

// ResponseSet is the full assessment for one AI system under review.
//
// Context holds operational metadata (region of operation, owning team, ...)
// stored for compliance records but never read by the classification rules.
type ResponseSet struct {
	SystemID    id.SystemID       `json:"system_id"`
	Prohibited  []QuestionAnswer  `json:"prohibited"`
	HighRisk    []QuestionAnswer  `json:"high_risk"`
	Context     map[string]string `json:"context,omitempty"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

// Section names a questionnaire section.
type Section string

const (
	SectionProhibited Section = "prohibited"
	SectionHighRisk   Section = "high_risk"
)

// Answers returns the answers for the given section.
func (rs *ResponseSet) Answers(section Section) []QuestionAnswer {
	if section == SectionProhibited {
		return rs.Prohibited
	}
	return rs.HighRisk
}

// Answer returns the answer for the given question ID within a section, or nil.
func (rs *ResponseSet) Answer(section Section, qid id.QuestionID) *QuestionAnswer {
	answers := rs.Answers(section)
	for i := range answers {
		if answers[i].QuestionID == qid {
			return &answers[i]
		}
	}
	return nil
}

// Fingerprint returns a stable SHA-256 digest of the classification-relevant
// content of the response set. Evaluation is a pure function, so two response
// sets with the same fingerprint produce the same decision under the same
// rulepack; the service uses this as a cache key.
//
// Context and SubmittedAt are excluded: neither is read by the rules.
func (rs *ResponseSet) Fingerprint() string {
	var b strings.Builder
	b.WriteString(rs.SystemID.String())
	writeSection := func(name Section, answers []QuestionAnswer) {
		b.WriteByte('|')
		b.WriteString(string(name))
		// Sort by question ID so intake ordering differences do not change the digest.
		sorted := make([]QuestionAnswer, len(answers))
		copy(sorted, answers)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].QuestionID < sorted[j].QuestionID })
		for _, qa := range sorted {
			writeAnswer(&b, qa)
		}
	}
	writeSection(SectionProhibited, rs.Prohibited)
	writeSection(SectionHighRisk, rs.HighRisk)
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func writeAnswer(b *strings.Builder, qa QuestionAnswer) {
	b.WriteByte(';')
	b.WriteString(string(qa.QuestionID))
	b.WriteByte('=')
	b.WriteString(string(qa.Answer))
	if len(qa.FollowUps) > 0 {
		sorted := make([]QuestionAnswer, len(qa.FollowUps))
		copy(sorted, qa.FollowUps)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].QuestionID < sorted[j].QuestionID })
		b.WriteByte('(')
		for _, fu := range sorted {
			writeAnswer(b, fu)
		}
		b.WriteByte(')')
	}
}
