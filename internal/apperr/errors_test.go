package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("post not found"), http.StatusNotFound},
		{"conflict", Conflict("already liked"), http.StatusConflict},
		{"unauthorized", Unauthorized("token required"), http.StatusUnauthorized},
		{"forbidden", Forbidden("not the author"), http.StatusForbidden},
		{"invalid argument", InvalidArgument("bad cuisine"), http.StatusBadRequest},
		{"internal", Internal("db down", errors.New("conn refused")), http.StatusInternalServerError},
		{"plain error defaults to 500", errors.New("oops"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeConflict, CodeOf(Conflict("dup")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))

	// The code survives wrapping.
	wrapped := fmt.Errorf("outer: %w", NotFound("gone"))
	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
}

func TestIs(t *testing.T) {
	err := NotFound("missing")
	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeConflict))
}

func TestUnwrapPreservesOrigin(t *testing.T) {
	origin := errors.New("duplicate key value violates unique constraint")
	err := Internal("failed to like post", origin)
	assert.True(t, errors.Is(err, origin))
	assert.Contains(t, err.Error(), "failed to like post")
}
