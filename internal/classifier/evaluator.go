package classifier

import (
	"riskengine/internal/assessment"
	"riskengine/internal/rulepack"
	id "riskengine/pkg/domain"
)

// Evaluate applies the rule cascade to a response set that already passed
// validation. Pure function; first matching rule wins.
//
// Rule priority:
//  1. Uncertain-prohibited escalation - a Maybe on any escalation-sensitive
//     prohibited question requests manual review before anything else.
//     Uncertainty on the prohibition axis must never be silently downgraded.
//  2. Prohibited - first confirming question short-circuits and is the sole
//     audit trigger.
//  3. High-Risk - every Yes in the section is collected as a trigger.
//  4. Low-Risk - both sections resolved to No.
func Evaluate(pack *rulepack.Pack, rs *assessment.ResponseSet) Verdict {
	// Escalation scan runs over the whole prohibited section before the
	// confirmation scan, so an uncertain answer on a later question is not
	// masked by a confirmed one on an earlier question.
	var uncertain []id.QuestionID
	for i := range pack.Prohibited {
		question := &pack.Prohibited[i]
		if !question.EscalationSensitive {
			continue
		}
		if qa := rs.Answer(assessment.SectionProhibited, question.ID); qa != nil && qa.Answer == id.AnswerMaybe {
			uncertain = append(uncertain, question.ID)
		}
	}
	if len(uncertain) > 0 {
		return Verdict{
			Tier:      TierManualReview,
			Reason:    ReasonUncertainProhibited,
			Triggers:  uncertain,
			FiredRule: RuleNone,
		}
	}

	for i := range pack.Prohibited {
		question := &pack.Prohibited[i]
		qa := rs.Answer(assessment.SectionProhibited, question.ID)
		if qa != nil && confirmsProhibition(question, qa) {
			return Verdict{
				Tier:      TierProhibited,
				Triggers:  []id.QuestionID{question.ID},
				FiredRule: RuleProhibited,
			}
		}
	}

	var triggers []id.QuestionID
	for i := range pack.HighRisk {
		question := &pack.HighRisk[i]
		if qa := rs.Answer(assessment.SectionHighRisk, question.ID); qa != nil && qa.Answer == id.AnswerYes {
			triggers = append(triggers, question.ID)
		}
	}
	if len(triggers) > 0 {
		return Verdict{
			Tier:      TierHighRisk,
			Triggers:  triggers,
			FiredRule: RuleHighRisk,
		}
	}

	return Verdict{Tier: TierLowRisk, FiredRule: RuleLowRisk}
}

// confirmsProhibition reports whether a prohibited-section answer confirms the
// prohibited condition. A Yes with no defined follow-ups confirms on its own.
// With follow-ups and a predicate, the answer confirms when any affirming
// follow-up is Yes or the clearing follow-up is No. A question with follow-ups
// but no predicate confirms on the primary Yes alone: an undefined rule table
// entry must not soften a prohibition trigger.
func confirmsProhibition(question *rulepack.Question, qa *assessment.QuestionAnswer) bool {
	if qa.Answer != id.AnswerYes {
		return false
	}
	if !question.HasFollowUps() {
		return true
	}
	pred := question.Predicate
	if pred == nil {
		return true
	}
	for _, affID := range pred.AffirmingFollowUps {
		if aff := qa.FollowUp(affID); aff != nil && aff.Answer == id.AnswerYes {
			return true
		}
	}
	if pred.ClearingFollowUp != "" {
		if clearing := qa.FollowUp(pred.ClearingFollowUp); clearing != nil && clearing.Answer == id.AnswerNo {
			return true
		}
	}
	return false
}
