package classifier

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"riskengine/internal/assessment"
	"riskengine/internal/rulepack"
	id "riskengine/pkg/domain"
)

// =============================================================================
// Rule Cascade Test Suite
// =============================================================================
// Evaluate is a pure function of the pack and the response set, so the cascade
// ordering, short-circuit behavior, and trigger collection are all verified
// here without any service wiring.

type EvaluatorSuite struct {
	suite.Suite
	pack *rulepack.Pack
}

func TestEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorSuite))
}

func (s *EvaluatorSuite) SetupTest() {
	s.pack = rulepack.Default()
}

func (s *EvaluatorSuite) TestLowRisk() {
	s.Run("all questions answered no", func() {
		rs := fullyAnswered(s.pack)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierLowRisk, verdict.Tier)
		s.Equal(RuleLowRisk, verdict.FiredRule)
		s.Empty(verdict.Triggers)
		s.Empty(verdict.Reason)
	})

	s.Run("maybe on non-escalation prohibited question does not trigger", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P7", id.AnswerMaybe)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierLowRisk, verdict.Tier)
	})

	s.Run("maybe on high-risk question does not trigger", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionHighRisk, "H3", id.AnswerMaybe)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierLowRisk, verdict.Tier)
		s.Empty(verdict.Triggers)
	})
}

func (s *EvaluatorSuite) TestProhibited() {
	s.Run("yes without follow-ups confirms on its own", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P3", id.AnswerYes)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierProhibited, verdict.Tier)
		s.Equal(RuleProhibited, verdict.FiredRule)
		s.Equal([]id.QuestionID{"P3"}, verdict.Triggers)
	})

	s.Run("first confirming question is the sole trigger", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P3", id.AnswerYes)
		setAnswer(rs, assessment.SectionProhibited, "P7", id.AnswerYes)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierProhibited, verdict.Tier)
		s.Equal([]id.QuestionID{"P3"}, verdict.Triggers)
	})

	s.Run("prohibited outranks high-risk triggers", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P7", id.AnswerYes)
		setAnswer(rs, assessment.SectionHighRisk, "H2", id.AnswerYes)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierProhibited, verdict.Tier)
		s.Equal([]id.QuestionID{"P7"}, verdict.Triggers)
	})

	s.Run("affirming follow-up yes confirms", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P4", id.AnswerYes,
			fu("P4.1", id.AnswerNo), fu("P4.2", id.AnswerYes))
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierProhibited, verdict.Tier)
		s.Equal([]id.QuestionID{"P4"}, verdict.Triggers)
	})

	s.Run("clearing follow-up no confirms", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P4", id.AnswerYes,
			fu("P4.1", id.AnswerNo), fu("P4.2", id.AnswerNo))
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierProhibited, verdict.Tier)
	})

	s.Run("clearing follow-up yes clears the primary yes", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P4", id.AnswerYes,
			fu("P4.1", id.AnswerYes), fu("P4.2", id.AnswerNo))
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierLowRisk, verdict.Tier)
	})

	s.Run("affirming-only predicate needs the affirming yes", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P6", id.AnswerYes,
			fu("P6.1", id.AnswerNo))
		s.Equal(TierLowRisk, Evaluate(s.pack, rs).Tier)

		setAnswer(rs, assessment.SectionProhibited, "P6", id.AnswerYes,
			fu("P6.1", id.AnswerYes))
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierProhibited, verdict.Tier)
		s.Equal([]id.QuestionID{"P6"}, verdict.Triggers)
	})
}

func (s *EvaluatorSuite) TestUncertainProhibitedEscalation() {
	s.Run("maybe on escalation-sensitive question requests manual review", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P1", id.AnswerMaybe)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierManualReview, verdict.Tier)
		s.Equal(ReasonUncertainProhibited, verdict.Reason)
		s.Equal([]id.QuestionID{"P1"}, verdict.Triggers)
		s.Equal(RuleNone, verdict.FiredRule)
	})

	s.Run("all uncertain questions are collected", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P1", id.AnswerMaybe)
		setAnswer(rs, assessment.SectionProhibited, "P3", id.AnswerMaybe)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierManualReview, verdict.Tier)
		s.Equal([]id.QuestionID{"P1", "P3"}, verdict.Triggers)
	})

	s.Run("escalation outranks a confirmed prohibition on an earlier question", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P2", id.AnswerYes)
		setAnswer(rs, assessment.SectionProhibited, "P3", id.AnswerMaybe)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierManualReview, verdict.Tier)
		s.Equal(ReasonUncertainProhibited, verdict.Reason)
		s.Equal([]id.QuestionID{"P3"}, verdict.Triggers)
	})

	s.Run("escalation outranks high-risk yes answers", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P2", id.AnswerMaybe)
		setAnswer(rs, assessment.SectionHighRisk, "H5", id.AnswerYes)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierManualReview, verdict.Tier)
	})
}

func (s *EvaluatorSuite) TestHighRisk() {
	s.Run("single yes triggers", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionHighRisk, "H2", id.AnswerYes)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierHighRisk, verdict.Tier)
		s.Equal(RuleHighRisk, verdict.FiredRule)
		s.Equal([]id.QuestionID{"H2"}, verdict.Triggers)
	})

	s.Run("every yes is collected in section order", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionHighRisk, "H5", id.AnswerYes)
		setAnswer(rs, assessment.SectionHighRisk, "H2", id.AnswerYes)
		setAnswer(rs, assessment.SectionHighRisk, "H8", id.AnswerYes)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierHighRisk, verdict.Tier)
		s.Equal([]id.QuestionID{"H2", "H5", "H8"}, verdict.Triggers)
	})

	s.Run("cleared prohibited yes falls through to high-risk", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P5", id.AnswerYes,
			fu("P5.1", id.AnswerYes), fu("P5.2", id.AnswerNo))
		setAnswer(rs, assessment.SectionHighRisk, "H1", id.AnswerYes)
		verdict := Evaluate(s.pack, rs)
		s.Equal(TierHighRisk, verdict.Tier)
		s.Equal([]id.QuestionID{"H1"}, verdict.Triggers)
	})
}

// Determinism: identical inputs always yield identical verdicts.
func (s *EvaluatorSuite) TestDeterminism() {
	rs := fullyAnswered(s.pack)
	setAnswer(rs, assessment.SectionProhibited, "P4", id.AnswerYes,
		fu("P4.1", id.AnswerYes), fu("P4.2", id.AnswerNo))
	setAnswer(rs, assessment.SectionHighRisk, "H4", id.AnswerYes, fu("H4.1", id.AnswerNo))

	first := Evaluate(s.pack, rs)
	for range 10 {
		s.Equal(first, Evaluate(s.pack, rs))
	}
}
