package mailer

import (
	"bytes"
	"testing"

	"buddyai-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWelcome(t *testing.T) {
	svc := NewEmailService("smtp.example.com", 587, "u", "p", "noreply@example.com", "BuddyAI", logger.NewNopLogger()).(*emailService)

	msg := svc.buildWelcome("alice@example.com", "<alice>")

	assert.Equal(t, []string{"alice@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Welcome to BuddyAI"}, msg.GetHeader("Subject"))
	require.Len(t, msg.GetHeader("From"), 1)
	assert.Contains(t, msg.GetHeader("From")[0], "noreply@example.com")

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "&lt;alice&gt;")
}
