package email

import (
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/idevelopit/website/pkg/sanitizer"
)

type smtpClient struct {
	client *mail.Client
	config Config
}

// SMTPOption configures the underlying go-mail client.
type SMTPOption = mail.Option

// NewSMTPClient creates an SMTP email sender authenticating as cfg.SMTPUsername.
// STARTTLS is mandatory unless overridden with opts.
func NewSMTPClient(cfg Config, opts ...SMTPOption) (EmailSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTPHost is required", ErrInvalidConfig)
	}
	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return nil, fmt.Errorf("%w: SMTPPort must be between 1 and 65535", ErrInvalidConfig)
	}
	if cfg.SMTPUsername == "" {
		return nil, fmt.Errorf("%w: SMTPUsername is required", ErrInvalidConfig)
	}
	if cfg.SMTPPassword == "" {
		return nil, fmt.Errorf("%w: SMTPPassword is required", ErrInvalidConfig)
	}
	if err := validateSender(cfg); err != nil {
		return nil, err
	}

	base := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if cfg.SMTPTimeout > 0 {
		base = append(base, mail.WithTimeout(cfg.SMTPTimeout))
	}

	client, err := mail.NewClient(cfg.SMTPHost, append(base, opts...)...)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &smtpClient{client: client, config: cfg}, nil
}

// SendEmail implements EmailSender over a fresh SMTP session per message.
func (c *smtpClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	msg, err := c.message(params)
	if err != nil {
		return err
	}

	if err := c.client.DialAndSendWithContext(ctx, msg); err != nil {
		return newError(smtpKind(err), "smtp.send", err)
	}
	return nil
}

func (c *smtpClient) message(params SendEmailParams) (*mail.Msg, error) {
	msg := mail.NewMsg()

	var err error
	if name := sanitizer.DisplayName(params.FromName); name != "" {
		err = msg.FromFormat(name, c.config.Sender())
	} else {
		err = msg.From(c.config.Sender())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: invalid sender: %v", ErrInvalidParams, err)
	}
	if err := msg.To(params.SendTo); err != nil {
		return nil, fmt.Errorf("%w: invalid recipient: %v", ErrInvalidParams, err)
	}
	if params.ReplyTo != "" {
		if err := msg.ReplyTo(params.ReplyTo); err != nil {
			return nil, fmt.Errorf("%w: %w: %v", ErrInvalidParams, ErrInvalidReplyTo, err)
		}
	}

	msg.Subject(params.Subject)
	msg.SetDate()
	msg.SetMessageID()

	switch {
	case params.BodyText != "" && params.BodyHTML != "":
		msg.SetBodyString(mail.TypeTextPlain, params.BodyText)
		msg.AddAlternativeString(mail.TypeTextHTML, params.BodyHTML)
	case params.BodyHTML != "":
		msg.SetBodyString(mail.TypeTextHTML, params.BodyHTML)
	default:
		msg.SetBodyString(mail.TypeTextPlain, params.BodyText)
	}

	return msg, nil
}

// smtpKind maps SMTP reply codes and dial failures to a Kind.
func smtpKind(err error) Kind {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch {
		case tpErr.Code == 530, tpErr.Code == 534, tpErr.Code == 535:
			return KindAuth
		case tpErr.Code >= 400 && tpErr.Code < 500:
			return KindNetwork
		}
	}

	var sendErr *mail.SendError
	if errors.As(err, &sendErr) && sendErr.IsTemp() {
		return KindNetwork
	}

	if isNetworkError(err) {
		return KindNetwork
	}
	if strings.Contains(err.Error(), "SMTP AUTH") {
		return KindAuth
	}
	return kindFromMessage(err.Error())
}
