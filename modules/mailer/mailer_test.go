package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailerFromEnv_Disabled(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("MAIL_FROM", "")

	m := NewMailerFromEnv()
	require.NotNil(t, m)

	assert.False(t, m.Enabled())
	assert.Equal(t, "noreply@wholesaleportal.local", m.from)

	// Disabled sends are dropped, never errors.
	err := m.Send("pat@acme.test", "Subject", "Body")
	assert.NoError(t, err)
	err = m.SendWelcome("pat@acme.test", "Pat", "Acme Hardware", "w8k2mproq4vt")
	assert.NoError(t, err)
}

func TestNewMailerFromEnv_Configured(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.test")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("MAIL_FROM", "orders@acme.test")

	m := NewMailerFromEnv()
	require.NotNil(t, m)

	assert.True(t, m.Enabled())
	assert.Equal(t, "orders@acme.test", m.from)
}

func TestNewMailerFromEnv_DefaultPort(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.test")
	t.Setenv("SMTP_PORT", "not-a-number")

	m := NewMailerFromEnv()
	require.True(t, m.Enabled())
	assert.Equal(t, 587, m.dialer.Port)
}
