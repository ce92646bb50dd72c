package classifier

import (
	"time"

	"riskengine/internal/assessment"
	"riskengine/internal/rulepack"
	id "riskengine/pkg/domain"
)

// fullyAnswered builds a response set answering every canonical question of
// the pack with No. Tests mutate it from there.
func fullyAnswered(pack *rulepack.Pack) *assessment.ResponseSet {
	rs := &assessment.ResponseSet{
		SystemID:    "chatbot-eu-prod",
		SubmittedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}
	for i := range pack.Prohibited {
		rs.Prohibited = append(rs.Prohibited, assessment.QuestionAnswer{
			QuestionID: pack.Prohibited[i].ID,
			Answer:     id.AnswerNo,
		})
	}
	for i := range pack.HighRisk {
		rs.HighRisk = append(rs.HighRisk, assessment.QuestionAnswer{
			QuestionID: pack.HighRisk[i].ID,
			Answer:     id.AnswerNo,
		})
	}
	return rs
}

// setAnswer overwrites one question's answer and follow-ups in place.
func setAnswer(rs *assessment.ResponseSet, section assessment.Section, qid id.QuestionID, answer id.Answer, followUps ...assessment.QuestionAnswer) {
	qa := rs.Answer(section, qid)
	if qa == nil {
		panic("setAnswer: question " + string(qid) + " not present in " + string(section))
	}
	qa.Answer = answer
	qa.FollowUps = followUps
}

// removeAnswer drops one question from a section entirely.
func removeAnswer(rs *assessment.ResponseSet, section assessment.Section, qid id.QuestionID) {
	answers := rs.Answers(section)
	for i := range answers {
		if answers[i].QuestionID == qid {
			trimmed := append(answers[:i:i], answers[i+1:]...)
			if section == assessment.SectionProhibited {
				rs.Prohibited = trimmed
			} else {
				rs.HighRisk = trimmed
			}
			return
		}
	}
}

func fu(qid id.QuestionID, answer id.Answer) assessment.QuestionAnswer {
	return assessment.QuestionAnswer{QuestionID: qid, Answer: answer}
}
