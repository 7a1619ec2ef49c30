package email

import (
	"context"
	"errors"
	"net"
	"strings"
)

var (
	ErrFailedToSendEmail = errors.New("mailer.errors.failed_to_send_email")
	ErrInvalidConfig     = errors.New("mailer.errors.invalid_config")
	ErrInvalidParams     = errors.New("mailer.errors.invalid_params")

	// ErrInvalidReplyTo marks a reply-to address the transport cannot use.
	// It is always joined with ErrInvalidParams.
	ErrInvalidReplyTo = errors.New("mailer.errors.invalid_reply_to")
)

// Kind classifies a transport failure.
type Kind string

const (
	KindAuth    Kind = "auth"
	KindNetwork Kind = "network"
	KindOther   Kind = "other"
)

// Error is a transport failure tagged with its Kind.
type Error struct {
	Kind Kind
	Op   string // transport operation, e.g. "postmark.send"
	Err  error
}

func (e *Error) Error() string {
	msg := "email: " + e.Op + ": " + string(e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes every *Error match ErrFailedToSendEmail.
func (e *Error) Is(target error) bool {
	return target == ErrFailedToSendEmail
}

func newError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the failure kind of err.
//
// Tagged *Error values win. Otherwise deadlines and network errors are
// KindNetwork, and as a last resort the message is searched for "auth" or
// "authentication" (KindAuth) and "network" or "timeout" (KindNetwork).
// A nil error is KindOther.
func KindOf(err error) Kind {
	if err == nil {
		return KindOther
	}

	var tagged *Error
	if errors.As(err, &tagged) && tagged.Kind != "" {
		return tagged.Kind
	}

	if isNetworkError(err) {
		return KindNetwork
	}

	return kindFromMessage(err.Error())
}

func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// kindFromMessage is the substring classifier used for untagged errors.
// Matching is case-sensitive.
func kindFromMessage(msg string) Kind {
	switch {
	case strings.Contains(msg, "authentication"), strings.Contains(msg, "auth"):
		return KindAuth
	case strings.Contains(msg, "network"), strings.Contains(msg, "timeout"):
		return KindNetwork
	default:
		return KindOther
	}
}
