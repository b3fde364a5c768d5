package apperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_HTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindInvalidToken:    http.StatusBadRequest,
		KindUnauthorized:    http.StatusUnauthorized,
		KindNotFound:        http.StatusNotFound,
		KindUpstreamTimeout: http.StatusGatewayTimeout,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		t.Run(kind.String(), func(t *testing.T) {
			assert.Equal(t, status, kind.HTTPStatus())
		})
	}
}

func TestKindOf_FollowsWrapChain(t *testing.T) {
	base := NotFound("Chat session not found")
	wrapped := fmt.Errorf("loading session: %w", base)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(wrapped, KindValidation))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestError_UnwrapExposesCause(t *testing.T) {
	err := UpstreamTimeout("AI provider timed out", context.DeadlineExceeded)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "AI provider timed out: context deadline exceeded", err.Error())
	assert.Equal(t, "Invalid Token", InvalidToken("Invalid Token").Error())
}
