package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/idevelopit/website/pkg/sanitizer"
	"github.com/idevelopit/website/pkg/validator"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`             // Email address of the recipient
	FromName string `json:"from_name,omitempty"` // Display name shown with the sender address
	ReplyTo  string `json:"reply_to,omitempty"`  // Address answers should go to
	Subject  string `json:"subject"`             // Subject of the email
	BodyHTML string `json:"body_html"`           // HTML body of the email
	BodyText string `json:"body_text,omitempty"` // Plain text alternative
	Tag      string `json:"tag,omitempty"`       // Optional
}

// Validate checks that the params can be delivered.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: SendTo is required", ErrInvalidParams)
	}
	if !validator.IsEmail(p.SendTo) {
		return fmt.Errorf("%w: SendTo must be a valid email address", ErrInvalidParams)
	}
	if p.ReplyTo != "" && !validator.IsEmail(p.ReplyTo) {
		return fmt.Errorf("%w: %w: ReplyTo must be a valid email address", ErrInvalidParams, ErrInvalidReplyTo)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidParams)
	}
	if strings.ContainsAny(p.Subject, "\r\n") {
		return fmt.Errorf("%w: Subject must be a single line", ErrInvalidParams)
	}
	if strings.TrimSpace(p.BodyHTML) == "" && strings.TrimSpace(p.BodyText) == "" {
		return fmt.Errorf("%w: BodyHTML or BodyText is required", ErrInvalidParams)
	}
	return nil
}

// New creates the sender selected by cfg.Provider.
func New(cfg Config) (EmailSender, error) {
	switch cfg.Provider {
	case ProviderPostmark:
		return NewPostmarkClient(cfg)
	case ProviderSMTP:
		return NewSMTPClient(cfg)
	case ProviderDev, "":
		if cfg.DevDir == "" {
			return nil, fmt.Errorf("%w: DevDir is required", ErrInvalidConfig)
		}
		return NewDevSender(cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
}

// MustNew is like New but panics on invalid configuration.
func MustNew(cfg Config) EmailSender {
	sender, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}

func validateSender(cfg Config) error {
	sender := cfg.Sender()
	if sender == "" {
		return fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !validator.IsEmail(sender) {
		return fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	return nil
}

// formatFrom renders the From header value.
func formatFrom(name, addr string) string {
	if name = sanitizer.DisplayName(name); name == "" {
		return addr
	}
	return fmt.Sprintf(`"%s" <%s>`, name, addr)
}
