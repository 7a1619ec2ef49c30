package contact

import "errors"

var (
	ErrRequiredFields = errors.New("contact: required fields missing")
	ErrInvalidEmail   = errors.New("contact: invalid email")
	ErrMessageTooLong = errors.New("contact: message too long")
	ErrConfiguration  = errors.New("contact: email configuration error")
	ErrTransient      = errors.New("contact: transient send failure")
	ErrSendFailed     = errors.New("contact: send failed")
	ErrInvalidConfig  = errors.New("contact: invalid config")
)

// User-facing messages. They never carry transport details.
const (
	MsgRequiredFields   = "Name, email, and message are required."
	MsgInvalidEmail     = "Please provide a valid email address."
	MsgMessageTooLong   = "Your message is too long. Please shorten it and try again."
	MsgConfiguration    = "Email configuration error. Please contact support."
	MsgTransient        = "Network error. Please try again later."
	MsgSendFailed       = "Failed to send message. Please try again or contact us directly."
	MsgMethodNotAllowed = "Method not allowed"
	MsgTooManyRequests  = "Too many requests. Please try again later."
)

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrRequiredFields) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrMessageTooLong)
}
