package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEmail_NotConfigured(t *testing.T) {
	t.Setenv("EMAIL_FROM", "")
	t.Setenv("EMAIL_PASS", "")

	err := SendEmail("kid@example.com", "test", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestWelcomeEmail(t *testing.T) {
	subject, body := WelcomeEmail("Μαρία", "http://localhost:8080/newsletter/unsubscribe?token=abc")

	assert.Contains(t, subject, "PameKids")
	assert.Contains(t, body, "Γεια σου Μαρία")
	assert.Contains(t, body, "http://localhost:8080/newsletter/unsubscribe?token=abc")
}

func TestWelcomeEmail_NoName(t *testing.T) {
	_, body := WelcomeEmail("", "http://example.com/u?token=x")

	assert.Contains(t, body, "Γεια σου,")
}
