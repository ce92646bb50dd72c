package classifier

import (
	"riskengine/internal/assessment"
	"riskengine/internal/rulepack"
	id "riskengine/pkg/domain"
)

// Validate checks completeness and internal consistency of a response set
// before classification is attempted. Pure function; call CheckShape first so
// malformed input never reaches it.
//
// Completeness: every canonical question in both sections must carry a
// non-unanswered primary answer, and a Yes primary on a question with defined
// follow-ups must have all of those follow-ups answered. A question absent
// from the response set counts as unanswered.
//
// Consistency: per-question predicate lookup. The clearing follow-up answered
// Yes together with any affirming follow-up answered Yes is a contradiction.
// Questions without a predicate are always consistent; undefined rules never
// block an assessment.
//
// All offending question IDs are collected, not just the first, so the intake
// flow can surface every gap in one round trip. Missing data is reported
// before inconsistency when both occur.
func Validate(pack *rulepack.Pack, rs *assessment.ResponseSet) ValidationOutcome {
	var missing, inconsistent []id.QuestionID

	checkSection := func(questions []rulepack.Question, section assessment.Section) {
		for i := range questions {
			question := &questions[i]
			qa := rs.Answer(section, question.ID)
			if qa == nil || qa.Answer == id.AnswerUnanswered {
				missing = append(missing, question.ID)
				continue
			}
			if qa.Answer == id.AnswerYes && question.HasFollowUps() {
				for _, fu := range question.FollowUps {
					got := qa.FollowUp(fu.ID)
					if got == nil || got.Answer == id.AnswerUnanswered {
						missing = append(missing, fu.ID)
					}
				}
			}
			if contradicts(question, qa) {
				inconsistent = append(inconsistent, question.ID)
			}
		}
	}

	checkSection(pack.Prohibited, assessment.SectionProhibited)
	checkSection(pack.HighRisk, assessment.SectionHighRisk)

	if len(missing) > 0 {
		return ValidationOutcome{Reason: ReasonMissingData, OffendingQuestions: missing}
	}
	if len(inconsistent) > 0 {
		return ValidationOutcome{Reason: ReasonInconsistentAnswers, OffendingQuestions: inconsistent}
	}
	return ValidationOutcome{OK: true}
}

// contradicts applies the question's predicate: the clearing follow-up says
// the condition does not apply while a sibling affirming follow-up says it
// does. Maybe answers on follow-ups are uncertain, not contradictory.
func contradicts(question *rulepack.Question, qa *assessment.QuestionAnswer) bool {
	pred := question.Predicate
	if pred == nil || pred.ClearingFollowUp == "" {
		return false
	}
	clearing := qa.FollowUp(pred.ClearingFollowUp)
	if clearing == nil || clearing.Answer != id.AnswerYes {
		return false
	}
	for _, affID := range pred.AffirmingFollowUps {
		if aff := qa.FollowUp(affID); aff != nil && aff.Answer == id.AnswerYes {
			return true
		}
	}
	return false
}
