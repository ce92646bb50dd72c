package classifier

import (
	"time"

	"riskengine/internal/assessment"
	"riskengine/internal/rulepack"
	id "riskengine/pkg/domain"
)

// BuildDecision attaches the confidence score and audit data to an evaluator
// verdict. Deterministic: the same response set, rulepack, and verdict always
// produce the same score bit for bit.
//
// The score starts at 1.0 and is reduced by the pack's Maybe penalty for each
// Maybe answer encountered in the sections that contributed to the decision,
// and by the follow-up penalty for each follow-up chain traversed to resolve
// a primary Yes. Clamped to [0,1].
//
// Manual-review verdicts carry no tier confidence; the score is reported as 0
// and the verification flag is never set for them.
func BuildDecision(pack *rulepack.Pack, rs *assessment.ResponseSet, verdict Verdict, evaluatedAt time.Time) ClassificationDecision {
	decision := ClassificationDecision{
		AssessmentID:    id.NewAssessmentID(),
		SystemID:        rs.SystemID,
		Tier:            verdict.Tier,
		Reason:          verdict.Reason,
		TriggeredBy:     verdict.Triggers,
		FiredRule:       verdict.FiredRule,
		RulepackVersion: pack.Version,
		EvaluatedAt:     evaluatedAt,
	}
	if verdict.Tier == TierManualReview {
		return decision
	}

	confidence := 1.0
	confidence -= pack.Penalties.Maybe * float64(countMaybes(pack, rs, verdict))
	confidence -= pack.Penalties.FollowUp * float64(countTraversedChains(pack, rs, verdict))
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	decision.Confidence = confidence
	decision.RecommendVerification = confidence < pack.VerificationThreshold
	return decision
}

// countMaybes counts Maybe answers, primary and follow-up, across the
// sections the cascade consulted: the prohibited section alone for a
// prohibited outcome, both sections otherwise.
func countMaybes(pack *rulepack.Pack, rs *assessment.ResponseSet, verdict Verdict) int {
	count := sectionMaybes(pack.Prohibited, rs, assessment.SectionProhibited)
	if verdict.Tier != TierProhibited {
		count += sectionMaybes(pack.HighRisk, rs, assessment.SectionHighRisk)
	}
	return count
}

func sectionMaybes(questions []rulepack.Question, rs *assessment.ResponseSet, section assessment.Section) int {
	count := 0
	for i := range questions {
		qa := rs.Answer(section, questions[i].ID)
		if qa == nil {
			continue
		}
		if qa.Answer == id.AnswerMaybe {
			count++
		}
		for j := range qa.FollowUps {
			if qa.FollowUps[j].Answer == id.AnswerMaybe {
				count++
			}
		}
	}
	return count
}

// countTraversedChains counts the follow-up chains the cascade had to walk: a
// primary Yes on a question with defined follow-ups. For a prohibited outcome
// the scan short-circuits at the triggering question, so chains past it were
// never consulted and do not count.
func countTraversedChains(pack *rulepack.Pack, rs *assessment.ResponseSet, verdict Verdict) int {
	count := 0
	for i := range pack.Prohibited {
		question := &pack.Prohibited[i]
		if qa := rs.Answer(assessment.SectionProhibited, question.ID); qa != nil && qa.Answer == id.AnswerYes && question.HasFollowUps() {
			count++
		}
		if verdict.Tier == TierProhibited && len(verdict.Triggers) == 1 && question.ID == verdict.Triggers[0] {
			return count
		}
	}
	for i := range pack.HighRisk {
		question := &pack.HighRisk[i]
		if qa := rs.Answer(assessment.SectionHighRisk, question.ID); qa != nil && qa.Answer == id.AnswerYes && question.HasFollowUps() {
			count++
		}
	}
	return count
}
