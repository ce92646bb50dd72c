package classifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"riskengine/internal/assessment"
	"riskengine/internal/rulepack"
	id "riskengine/pkg/domain"
)

// =============================================================================
// Confidence and Decision Construction Test Suite
// =============================================================================
// The score is a deterministic heuristic: 1.0 minus the Maybe penalty per
// Maybe answer in the contributing sections, minus the follow-up penalty per
// traversed chain, clamped to [0,1].

type ConfidenceSuite struct {
	suite.Suite
	pack *rulepack.Pack
	at   time.Time
}

func TestConfidenceSuite(t *testing.T) {
	suite.Run(t, new(ConfidenceSuite))
}

func (s *ConfidenceSuite) SetupTest() {
	s.pack = rulepack.Default()
	s.at = time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
}

func (s *ConfidenceSuite) decide(rs *assessment.ResponseSet) ClassificationDecision {
	var verdict Verdict
	if outcome := Validate(s.pack, rs); outcome.OK {
		verdict = Evaluate(s.pack, rs)
	} else {
		verdict = Verdict{Tier: TierManualReview, Reason: outcome.Reason, Triggers: outcome.OffendingQuestions}
	}
	return BuildDecision(s.pack, rs, verdict, s.at)
}

func (s *ConfidenceSuite) TestScore() {
	s.Run("clean low-risk set scores full confidence", func() {
		decision := s.decide(fullyAnswered(s.pack))
		s.Equal(TierLowRisk, decision.Tier)
		s.Equal(1.0, decision.Confidence)
		s.False(decision.RecommendVerification)
		s.Equal(RuleLowRisk, decision.FiredRule)
		s.Equal("builtin-2026.08", decision.RulepackVersion)
		s.Equal(s.at, decision.EvaluatedAt)
		s.False(decision.AssessmentID.IsZero())
	})

	s.Run("each maybe deducts the maybe penalty", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionHighRisk, "H1", id.AnswerMaybe)
		decision := s.decide(rs)
		s.Equal(TierLowRisk, decision.Tier)
		s.InDelta(0.85, decision.Confidence, 1e-9)

		setAnswer(rs, assessment.SectionProhibited, "P7", id.AnswerMaybe)
		decision = s.decide(rs)
		s.InDelta(0.70, decision.Confidence, 1e-9)
	})

	s.Run("follow-up maybes count too", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P4", id.AnswerYes,
			fu("P4.1", id.AnswerYes), fu("P4.2", id.AnswerMaybe))
		decision := s.decide(rs)
		s.Equal(TierLowRisk, decision.Tier)
		// one follow-up Maybe plus one traversed chain
		s.InDelta(0.80, decision.Confidence, 1e-9)
	})

	s.Run("each traversed follow-up chain deducts the chain penalty", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionHighRisk, "H4", id.AnswerYes, fu("H4.1", id.AnswerNo))
		decision := s.decide(rs)
		s.Equal(TierHighRisk, decision.Tier)
		s.Equal([]id.QuestionID{"H4"}, decision.TriggeredBy)
		s.InDelta(0.95, decision.Confidence, 1e-9)
	})

	s.Run("score clamps at zero", func() {
		rs := fullyAnswered(s.pack)
		for _, qid := range []id.QuestionID{"P4", "P5", "P6", "P7"} {
			setAnswer(rs, assessment.SectionProhibited, qid, id.AnswerMaybe)
		}
		for i := range s.pack.HighRisk {
			setAnswer(rs, assessment.SectionHighRisk, s.pack.HighRisk[i].ID, id.AnswerMaybe)
		}
		decision := s.decide(rs)
		s.Equal(TierLowRisk, decision.Tier)
		s.Equal(0.0, decision.Confidence)
		s.True(decision.RecommendVerification)
	})
}

func (s *ConfidenceSuite) TestSectionAttribution() {
	s.Run("prohibited outcome ignores high-risk maybes", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P3", id.AnswerYes)
		setAnswer(rs, assessment.SectionHighRisk, "H1", id.AnswerMaybe)
		setAnswer(rs, assessment.SectionHighRisk, "H6", id.AnswerMaybe)
		decision := s.decide(rs)
		s.Equal(TierProhibited, decision.Tier)
		s.Equal(1.0, decision.Confidence)
	})

	s.Run("prohibited outcome still counts prohibited maybes", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P3", id.AnswerYes)
		setAnswer(rs, assessment.SectionProhibited, "P7", id.AnswerMaybe)
		decision := s.decide(rs)
		s.Equal(TierProhibited, decision.Tier)
		s.InDelta(0.85, decision.Confidence, 1e-9)
	})

	s.Run("chains past the short-circuit trigger are not charged", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P4", id.AnswerYes,
			fu("P4.1", id.AnswerNo), fu("P4.2", id.AnswerNo))
		setAnswer(rs, assessment.SectionProhibited, "P5", id.AnswerYes,
			fu("P5.1", id.AnswerYes), fu("P5.2", id.AnswerNo))
		decision := s.decide(rs)
		s.Equal(TierProhibited, decision.Tier)
		s.Equal([]id.QuestionID{"P4"}, decision.TriggeredBy)
		// only P4's chain was consulted before the cascade stopped
		s.InDelta(0.95, decision.Confidence, 1e-9)
	})
}

func (s *ConfidenceSuite) TestVerificationFlag() {
	s.Run("flag raised strictly below the threshold", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionHighRisk, "H1", id.AnswerMaybe)
		setAnswer(rs, assessment.SectionHighRisk, "H2", id.AnswerMaybe)
		setAnswer(rs, assessment.SectionHighRisk, "H3", id.AnswerMaybe)
		decision := s.decide(rs)
		s.InDelta(0.55, decision.Confidence, 1e-9)
		s.True(decision.RecommendVerification)
	})

	s.Run("flag is advisory and does not change the tier", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionHighRisk, "H5", id.AnswerYes)
		setAnswer(rs, assessment.SectionHighRisk, "H1", id.AnswerMaybe)
		setAnswer(rs, assessment.SectionHighRisk, "H2", id.AnswerMaybe)
		setAnswer(rs, assessment.SectionHighRisk, "H3", id.AnswerMaybe)
		decision := s.decide(rs)
		s.Equal(TierHighRisk, decision.Tier)
		s.Equal([]id.QuestionID{"H5"}, decision.TriggeredBy)
		s.True(decision.RecommendVerification)
	})
}

func (s *ConfidenceSuite) TestManualReview() {
	s.Run("manual review carries no confidence and no flag", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionProhibited, "P1", id.AnswerMaybe)
		decision := s.decide(rs)
		s.Equal(TierManualReview, decision.Tier)
		s.Equal(ReasonUncertainProhibited, decision.Reason)
		s.Equal(0.0, decision.Confidence)
		s.False(decision.RecommendVerification)
		s.Equal(RuleNone, decision.FiredRule)
		s.True(decision.IsManualReview())
	})

	s.Run("validation failure keeps the offending questions as evidence", func() {
		rs := fullyAnswered(s.pack)
		setAnswer(rs, assessment.SectionHighRisk, "H4", id.AnswerYes)
		decision := s.decide(rs)
		s.Equal(TierManualReview, decision.Tier)
		s.Equal(ReasonMissingData, decision.Reason)
		s.Equal([]id.QuestionID{"H4.1"}, decision.TriggeredBy)
	})
}

// Two evaluations of the same input differ only in their assessment IDs.
func (s *ConfidenceSuite) TestDeterminism() {
	rs := fullyAnswered(s.pack)
	setAnswer(rs, assessment.SectionProhibited, "P7", id.AnswerMaybe)
	setAnswer(rs, assessment.SectionHighRisk, "H4", id.AnswerYes, fu("H4.1", id.AnswerYes))

	first := s.decide(rs)
	second := s.decide(rs)
	s.NotEqual(first.AssessmentID, second.AssessmentID)

	first.AssessmentID = id.AssessmentID{}
	second.AssessmentID = id.AssessmentID{}
	s.Equal(first, second)
}
