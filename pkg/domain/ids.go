// Package domain holds shared value types used across modules: typed
// identifiers and the answer enum. Construct values via the ParseXxx
// functions at trust boundaries; direct casting bypasses validation.
package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	dErrors "riskengine/pkg/domain-errors"
)

// AssessmentID identifies a single evaluation of a response set.
type AssessmentID uuid.UUID

// NewAssessmentID generates a fresh assessment identifier.
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.New())
}

// ParseAssessmentID constructs an AssessmentID from external input.
func ParseAssessmentID(s string) (AssessmentID, error) {
	u, err := uuid.Parse(s)
	if err != nil || u == uuid.Nil {
		return AssessmentID{}, dErrors.New(dErrors.CodeInvalidInput, "assessment id must be a valid UUID")
	}
	return AssessmentID(u), nil
}

func (id AssessmentID) String() string { return uuid.UUID(id).String() }

// MarshalText renders the ID in canonical UUID form for JSON and logs.
func (id AssessmentID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

// UnmarshalText parses the canonical UUID form.
func (id *AssessmentID) UnmarshalText(text []byte) error {
	u, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*id = AssessmentID(u)
	return nil
}

// IsZero reports whether the ID is unset.
func (id AssessmentID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// SystemID identifies the AI system under review. It is assigned by the
// intake flow, not by this service, so it is an opaque slug rather than a UUID.
type SystemID string

var systemIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,127}$`)

// ParseSystemID constructs a SystemID from external input.
//
// Errors: returns CodeInvalidInput when the value is empty, too long, or
// contains characters outside [a-zA-Z0-9._-].
func ParseSystemID(s string) (SystemID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "system id cannot be empty")
	}
	if !systemIDPattern.MatchString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "system id must match [a-zA-Z0-9._-] and be at most 128 characters")
	}
	return SystemID(s), nil
}

func (id SystemID) String() string { return string(id) }

// QuestionID identifies a canonical questionnaire question (e.g. "P3", "H5")
// or one of its follow-ups (e.g. "P3.1"). IDs are unique within a rulepack.
type QuestionID string

func (id QuestionID) String() string { return string(id) }

// QuestionIDStrings converts a slice of QuestionID to plain strings for
// serialization and logging.
func QuestionIDStrings(ids []QuestionID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
