package mail

import (
	"context"
	"testing"

	"codeberg.org/clickquest/server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_PopulatesFields(t *testing.T) {
	m := New(config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "user",
		Password: "pass",
		From:     "noreply@example.com",
	})

	require.NotNil(t, m)
	assert.Equal(t, "smtp.example.com", m.host)
	assert.Equal(t, 587, m.port)
	assert.Equal(t, "noreply@example.com", m.from)
}

func TestSend_HonorsContextCancellation(t *testing.T) {
	// unroutable host; the context guard must return before any dial completes
	m := New(config.SMTPConfig{
		Host: "smtp.invalid",
		Port: 587,
		From: "noreply@example.com",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.SendVerificationEmail(ctx, "user@example.com", "123456")
	assert.ErrorIs(t, err, context.Canceled)
}
