package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/idevelopit/website/pkg/email"
	"github.com/idevelopit/website/pkg/logger"
	"github.com/idevelopit/website/pkg/validator"
)

// Service validates submissions and relays them through an email.EmailSender.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	cfg     Config
	sender  email.EmailSender
	clock   clockwork.Clock
	log     *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for dispatch failures.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock sets the clock used for notification timestamps.
func WithClock(c clockwork.Clock) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// NewService creates a contact Service.
func NewService(cfg Config, sender email.EmailSender, opts ...ServiceOption) (*Service, error) {
	if sender == nil {
		return nil, fmt.Errorf("%w: email sender is required", ErrInvalidConfig)
	}
	if !validator.IsEmail(cfg.ReceiverEmail) {
		return nil, fmt.Errorf("%w: receiver email %q is not a valid address", ErrInvalidConfig, cfg.ReceiverEmail)
	}
	if cfg.SendTimeout < 0 {
		return nil, fmt.Errorf("%w: send timeout must not be negative", ErrInvalidConfig)
	}
	if cfg.SiteName == "" {
		cfg.SiteName = "Portfolio"
	}

	s := &Service{
		cfg:     cfg,
		sender:  sender,
		clock:   clockwork.NewRealClock(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Submit validates sub and sends one notification for it.
//
// The returned Result is always safe to show to the submitter. The error,
// when non-nil, wraps exactly one of ErrRequiredFields, ErrInvalidEmail,
// ErrMessageTooLong, ErrConfiguration, ErrTransient or ErrSendFailed.
// Nothing is sent when validation fails.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	sub = Normalize(sub)
	if err := Validate(sub, s.cfg.MaxMessageLength); err != nil {
		return ResultFor(err), err
	}

	n, err := Compose(ctx, sub, Meta{
		SiteName: s.cfg.SiteName,
		Service:  HumanizeSubject(sub.Subject),
		SentAt:   s.clock.Now(),
	})
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSendFailed, err)
		s.log.ErrorContext(ctx, "failed to compose contact notification",
			logger.Component("contact"),
			logger.Error(err),
		)
		return ResultFor(err), err
	}

	sendCtx := ctx
	if s.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.cfg.SendTimeout)
		defer cancel()
	}

	start := s.clock.Now()
	sendErr := s.sender.SendEmail(sendCtx, n.Params(s.cfg.ReceiverEmail))
	if sendErr == nil {
		s.log.InfoContext(ctx, "contact notification sent",
			logger.Component("contact"),
			logger.Event("contact_sent"),
			logger.Duration(s.clock.Since(start)),
		)
		return Result{Success: true}, nil
	}

	err = s.classify(sendCtx, sendErr)
	level := slog.LevelError
	if errors.Is(err, ErrTransient) || IsValidation(err) {
		level = slog.LevelWarn
	}
	s.log.LogAttrs(ctx, level, "failed to send contact notification",
		logger.Component("contact"),
		logger.ErrorKind(string(email.KindOf(sendErr))),
		logger.Error(sendErr),
		logger.Duration(s.clock.Since(start)),
	)
	return ResultFor(err), err
}

// classify maps a transport failure onto a contact fault category.
func (s *Service) classify(sendCtx context.Context, err error) error {
	switch {
	case errors.Is(err, email.ErrInvalidReplyTo):
		// The submitter's address passed our check but not the transport's.
		return fmt.Errorf("%w: %w", ErrInvalidEmail, err)
	case errors.Is(err, email.ErrInvalidConfig), errors.Is(err, email.ErrInvalidParams):
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	case errors.Is(sendCtx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTransient, err)
	}

	switch email.KindOf(err) {
	case email.KindAuth:
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	case email.KindNetwork:
		return fmt.Errorf("%w: %w", ErrTransient, err)
	default:
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
}

// ResultFor returns the user-facing result for an error returned by Submit.
func ResultFor(err error) Result {
	if err == nil {
		return Result{Success: true}
	}
	return Result{Success: false, Error: message(err)}
}

func message(err error) string {
	switch {
	case errors.Is(err, ErrRequiredFields):
		return MsgRequiredFields
	case errors.Is(err, ErrInvalidEmail):
		return MsgInvalidEmail
	case errors.Is(err, ErrMessageTooLong):
		return MsgMessageTooLong
	case errors.Is(err, ErrConfiguration):
		return MsgConfiguration
	case errors.Is(err, ErrTransient):
		return MsgTransient
	default:
		return MsgSendFailed
	}
}

// StatusCode maps an error returned by Submit to an HTTP status:
// nil is 200, validation 400, transient 503, anything else 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, ErrTransient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
