package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatching(t *testing.T) {
	t.Run("matches by code when target message is empty", func(t *testing.T) {
		err := New(CodeConflict, "already registered")
		assert.ErrorIs(t, err, New(CodeConflict, ""))
		assert.NotErrorIs(t, err, New(CodeNotFound, ""))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", New(CodeForbidden, "nope"))
		assert.True(t, HasCode(err, CodeForbidden))
		assert.Equal(t, CodeForbidden, CodeOf(err))
	})

	t.Run("wrap keeps the cause", func(t *testing.T) {
		cause := errors.New("socket closed")
		err := Wrap(cause, CodeInternal, "failed to insert")
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "failed to insert: socket closed", err.Error())
	})

	t.Run("plain errors default to internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeInvalidInput: http.StatusBadRequest,
		CodeRateLimited:  http.StatusTooManyRequests,
		CodeGateway:      http.StatusInternalServerError,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), code)
	}
}
