package classifier

import (
	"riskengine/internal/assessment"
	"riskengine/internal/rulepack"
	id "riskengine/pkg/domain"
	dErrors "riskengine/pkg/domain-errors"
)

// CheckShape verifies the caller contract on a submitted response set:
// every question ID must belong to the rulepack's canonical set for its
// section, no ID may appear twice, follow-up IDs must be defined for their
// parent question, and every answer must be within the enum.
//
// Violations are intake bugs, not ambiguous compliance cases, so they are
// reported as fatal CodeMalformedInput errors rather than routed to manual
// review. Missing questions are not a shape violation; the validator treats
// them as unanswered.
func CheckShape(pack *rulepack.Pack, rs *assessment.ResponseSet) error {
	if rs == nil {
		return dErrors.New(dErrors.CodeMalformedInput, "response set is required")
	}
	if err := checkSectionShape(pack, rs.Prohibited, assessment.SectionProhibited); err != nil {
		return err
	}
	return checkSectionShape(pack, rs.HighRisk, assessment.SectionHighRisk)
}

func checkSectionShape(pack *rulepack.Pack, answers []assessment.QuestionAnswer, section assessment.Section) error {
	seen := make(map[id.QuestionID]bool, len(answers))
	for i := range answers {
		qa := &answers[i]
		question, ok := pack.Question(string(section), qa.QuestionID)
		if !ok {
			return dErrors.Newf(dErrors.CodeMalformedInput, "unknown question id %q in %s section", qa.QuestionID, section)
		}
		if seen[qa.QuestionID] {
			return dErrors.Newf(dErrors.CodeMalformedInput, "duplicate question id %q in %s section", qa.QuestionID, section)
		}
		seen[qa.QuestionID] = true
		if !qa.Answer.IsValid() {
			return dErrors.Newf(dErrors.CodeMalformedInput, "question %q: answer value %q outside the enum", qa.QuestionID, qa.Answer)
		}
		seenFollowUps := make(map[id.QuestionID]bool, len(qa.FollowUps))
		for j := range qa.FollowUps {
			fu := &qa.FollowUps[j]
			if !question.DefinesFollowUp(fu.QuestionID) {
				return dErrors.Newf(dErrors.CodeMalformedInput, "question %q: unknown follow-up id %q", qa.QuestionID, fu.QuestionID)
			}
			if seenFollowUps[fu.QuestionID] {
				return dErrors.Newf(dErrors.CodeMalformedInput, "question %q: duplicate follow-up id %q", qa.QuestionID, fu.QuestionID)
			}
			seenFollowUps[fu.QuestionID] = true
			if !fu.Answer.IsValid() {
				return dErrors.Newf(dErrors.CodeMalformedInput, "follow-up %q: answer value %q outside the enum", fu.QuestionID, fu.Answer)
			}
			if len(fu.FollowUps) > 0 {
				return dErrors.Newf(dErrors.CodeMalformedInput, "follow-up %q: nested follow-ups are not part of the questionnaire", fu.QuestionID)
			}
		}
	}
	return nil
}
