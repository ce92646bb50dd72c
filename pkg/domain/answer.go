package domain

import dErrors "riskengine/pkg/domain-errors"

// Answer is a discrete questionnaire response.
// Invariant: the value must be one of the four supported answers; anything
// else in a submitted response set is a caller-contract violation.
type Answer string

// Supported answers. Unanswered is a legitimate wire value (the intake flow
// submits whatever it collected) but fails completeness validation.
const (
	AnswerYes        Answer = "yes"
	AnswerNo         Answer = "no"
	AnswerMaybe      Answer = "maybe"
	AnswerUnanswered Answer = "unanswered"
)

// validAnswers is the single source of truth for valid answer values.
var validAnswers = map[Answer]bool{
	AnswerYes:        true,
	AnswerNo:         true,
	AnswerMaybe:      true,
	AnswerUnanswered: true,
}

// ParseAnswer constructs an Answer from external input.
//
// Errors: returns CodeMalformedInput when the value is outside the enum,
// since an unknown answer value indicates an intake bug rather than an
// ambiguous compliance case.
func ParseAnswer(s string) (Answer, error) {
	if s == "" {
		return AnswerUnanswered, nil
	}
	a := Answer(s)
	if !a.IsValid() {
		return "", dErrors.Newf(dErrors.CodeMalformedInput, "unknown answer value %q", s)
	}
	return a, nil
}

// IsValid checks if the answer is one of the supported enum values.
func (a Answer) IsValid() bool { return validAnswers[a] }

func (a Answer) String() string { return string(a) }
