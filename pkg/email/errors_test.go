package email_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idevelopit/website/pkg/email"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want email.Kind
	}{
		{"nil", nil, email.KindOther},
		{"tagged auth", &email.Error{Kind: email.KindAuth, Op: "smtp.send", Err: errors.New("535 denied")}, email.KindAuth},
		{"tagged network", &email.Error{Kind: email.KindNetwork, Op: "smtp.send", Err: errors.New("x")}, email.KindNetwork},
		{"tagged other wins over message", &email.Error{Kind: email.KindOther, Op: "postmark.send", Err: errors.New("timeout")}, email.KindOther},
		{"wrapped tagged", fmt.Errorf("contact: %w", &email.Error{Kind: email.KindAuth, Op: "x"}), email.KindAuth},
		{"deadline exceeded", context.DeadlineExceeded, email.KindNetwork},
		{"wrapped deadline", fmt.Errorf("send: %w", context.DeadlineExceeded), email.KindNetwork},
		{"dial error", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, email.KindNetwork},
		{"legacy authentication message", errors.New("authentication failed"), email.KindAuth},
		{"legacy auth message", errors.New("invalid auth token"), email.KindAuth},
		{"legacy network message", errors.New("network unreachable"), email.KindNetwork},
		{"legacy timeout message", errors.New("read timeout"), email.KindNetwork},
		{"legacy match is case-sensitive", errors.New("Authentication required"), email.KindOther},
		{"unrelated", errors.New("mailbox full"), email.KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, email.KindOf(tt.err))
		})
	}
}

func TestError(t *testing.T) {
	t.Parallel()

	cause := errors.New("535 5.7.8 bad credentials")
	err := &email.Error{Kind: email.KindAuth, Op: "smtp.send", Err: cause}

	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "email: smtp.send: auth: 535 5.7.8 bad credentials", err.Error())

	var target *email.Error
	assert.ErrorAs(t, fmt.Errorf("wrap: %w", err), &target)
	assert.Equal(t, "smtp.send", target.Op)
}
