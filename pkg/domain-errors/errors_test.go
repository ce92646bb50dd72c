package dErrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodedErrors(t *testing.T) {
	t.Run("new carries code and description", func(t *testing.T) {
		err := New(CodeValidation, "missing field")
		assert.Equal(t, "validation_failed: missing field", err.Error())
		assert.True(t, HasCode(err, CodeValidation))
		assert.False(t, HasCode(err, CodeNotFound))
	})

	t.Run("newf formats the description", func(t *testing.T) {
		err := Newf(CodeMalformedInput, "unknown question id %q", "P9")
		assert.Contains(t, err.Error(), `"P9"`)
	})

	t.Run("wrap preserves the cause chain", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(CodeInternal, "persist decision", cause)
		assert.ErrorIs(t, err, cause)
		assert.True(t, HasCode(err, CodeInternal))
	})

	t.Run("code survives further wrapping", func(t *testing.T) {
		err := fmt.Errorf("evaluate: %w", New(CodeNotFound, "no decision recorded"))
		assert.Equal(t, CodeNotFound, CodeOf(err))
		assert.True(t, HasCode(err, CodeNotFound))
	})

	t.Run("unknown errors default to internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidInput:   http.StatusBadRequest,
		CodeBadRequest:     http.StatusBadRequest,
		CodeValidation:     http.StatusBadRequest,
		CodeMalformedInput: http.StatusBadRequest,
		CodeUnauthorized:   http.StatusUnauthorized,
		CodeNotFound:       http.StatusNotFound,
		CodeInternal:       http.StatusInternalServerError,
		Code("mystery"):    http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
