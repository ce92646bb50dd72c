package handler

import (
	"time"

	"riskengine/internal/assessment"
	id "riskengine/pkg/domain"
	dErrors "riskengine/pkg/domain-errors"
)

// maxBatchSize bounds evaluate-batch requests.
const maxBatchSize = 50

// AnswerPayload is one question's response on the wire.
type AnswerPayload struct {
	QuestionID string          `json:"question_id"`
	Answer     string          `json:"answer"`
	FollowUps  []AnswerPayload `json:"follow_ups,omitempty"`
}

// EvaluateRequest is the HTTP request body for POST /assessments/evaluate.
type EvaluateRequest struct {
	SystemID    string            `json:"system_id"`
	Prohibited  []AnswerPayload   `json:"prohibited"`
	HighRisk    []AnswerPayload   `json:"high_risk"`
	Context     map[string]string `json:"context,omitempty"`
	SubmittedAt time.Time         `json:"submitted_at"`

	// Parsed value (populated by Validate)
	parsed *assessment.ResponseSet
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	systemID, err := id.ParseSystemID(r.SystemID)
	if err != nil {
		return err
	}

	prohibited, err := parseAnswers(r.Prohibited)
	if err != nil {
		return err
	}
	highRisk, err := parseAnswers(r.HighRisk)
	if err != nil {
		return err
	}

	submittedAt := r.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}

	r.parsed = &assessment.ResponseSet{
		SystemID:    systemID,
		Prohibited:  prohibited,
		HighRisk:    highRisk,
		Context:     r.Context,
		SubmittedAt: submittedAt,
	}
	return nil
}

// ResponseSet returns the parsed response set.
func (r *EvaluateRequest) ResponseSet() *assessment.ResponseSet {
	return r.parsed
}

func parseAnswers(payloads []AnswerPayload) ([]assessment.QuestionAnswer, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	out := make([]assessment.QuestionAnswer, 0, len(payloads))
	for _, p := range payloads {
		if p.QuestionID == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "question_id is required")
		}
		answer, err := id.ParseAnswer(p.Answer)
		if err != nil {
			return nil, err
		}
		followUps, err := parseAnswers(p.FollowUps)
		if err != nil {
			return nil, err
		}
		out = append(out, assessment.QuestionAnswer{
			QuestionID: id.QuestionID(p.QuestionID),
			Answer:     answer,
			FollowUps:  followUps,
		})
	}
	return out, nil
}

// EvaluateBatchRequest is the HTTP request body for POST /assessments/evaluate-batch.
type EvaluateBatchRequest struct {
	Assessments []EvaluateRequest `json:"assessments"`

	parsed []*assessment.ResponseSet
}

// Validate validates and parses every entry.
func (r *EvaluateBatchRequest) Validate() error {
	if r == nil || len(r.Assessments) == 0 {
		return dErrors.New(dErrors.CodeValidation, "assessments cannot be empty")
	}
	if len(r.Assessments) > maxBatchSize {
		return dErrors.Newf(dErrors.CodeValidation, "at most %d assessments per batch", maxBatchSize)
	}
	r.parsed = make([]*assessment.ResponseSet, len(r.Assessments))
	for i := range r.Assessments {
		if err := r.Assessments[i].Validate(); err != nil {
			return dErrors.Wrap(dErrors.CodeOf(err), "assessment "+r.Assessments[i].SystemID, err)
		}
		r.parsed[i] = r.Assessments[i].ResponseSet()
	}
	return nil
}

// ResponseSets returns the parsed response sets.
func (r *EvaluateBatchRequest) ResponseSets() []*assessment.ResponseSet {
	return r.parsed
}
