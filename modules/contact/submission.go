package contact

import (
	"fmt"

	"github.com/idevelopit/website/handler"
	"github.com/idevelopit/website/pkg/sanitizer"
	"github.com/idevelopit/website/pkg/validator"
)

// Submission is one contact form payload. Phone and Subject are optional.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Result is the JSON answer of the contact endpoint.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

var (
	cleanLine = sanitizer.Compose(
		sanitizer.RemoveNullBytes,
		sanitizer.RemoveControlChars,
		sanitizer.SingleLine,
	)
	cleanText = sanitizer.Compose(
		sanitizer.RemoveNullBytes,
		sanitizer.NormalizeNewlines,
		sanitizer.RemoveControlChars,
		sanitizer.Trim,
	)
)

// Normalize trims the free-text fields, collapses single-line fields to one
// line and normalizes message line endings to \n. Message line breaks are kept.
//
// Email is returned as submitted: it is validated on its raw value and never
// rewritten into a different address.
func Normalize(s Submission) Submission {
	return Submission{
		Name:    cleanLine(s.Name),
		Email:   s.Email,
		Phone:   cleanLine(s.Phone),
		Subject: cleanLine(s.Subject),
		Message: cleanText(s.Message),
	}
}

// Validate checks required fields first, then the email shape, then the
// optional message length cap (maxMessageLength <= 0 disables it).
//
// The returned error wraps ErrRequiredFields, ErrInvalidEmail or
// ErrMessageTooLong together with a handler.ValidationError listing fields.
func Validate(s Submission, maxMessageLength int) error {
	err := validator.Apply(
		validator.Required("name", s.Name),
		validator.Required("email", s.Email),
		validator.Required("message", s.Message),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequiredFields, fieldErrors(err))
	}

	if err := validator.Apply(validator.ValidEmail("email", s.Email)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEmail, fieldErrors(err))
	}

	err = validator.Apply(
		validator.When(maxMessageLength > 0, validator.MaxLen("message", s.Message, maxMessageLength)),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMessageTooLong, fieldErrors(err))
	}

	return nil
}

// fieldErrors converts rule failures into the handler's url.Values based error.
func fieldErrors(err error) handler.ValidationError {
	verr := handler.NewValidationError()
	for _, e := range validator.ExtractValidationErrors(err) {
		verr.Add(e.Field, e.Message)
	}
	return verr
}

// HumanizeSubject turns a subject slug into display text:
// "web-development" becomes "Web Development".
func HumanizeSubject(slug string) string {
	return sanitizer.Humanize(slug)
}
