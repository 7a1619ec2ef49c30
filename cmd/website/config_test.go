package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idevelopit/website/pkg/email"
)

func TestLoadSettings(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("RECEIVER_EMAIL", "owner@example.com")
	t.Setenv("EMAIL_PROVIDER", "smtp")
	t.Setenv("CONTACT_SEND_TIMEOUT", "20s")
	t.Setenv("RATE_LIMIT_CAPACITY", "5")

	var cfg settings
	require.NoError(t, loadSettings(&cfg))

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "website", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, email.ProviderSMTP, cfg.Email.Provider)
	assert.Equal(t, "owner@example.com", cfg.Contact.ReceiverEmail)
	assert.Equal(t, 20*time.Second, cfg.Contact.SendTimeout)
	assert.True(t, cfg.RateLimit.Enabled())
	assert.Equal(t, time.Minute, cfg.RateLimit.RefillInterval)
	assert.False(t, cfg.Redis.Enabled())
}
