package contact

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/idevelopit/website/handler"
	"github.com/idevelopit/website/pkg/binder"
	"github.com/idevelopit/website/pkg/ratelimiter"
)

type routesConfig struct {
	log        *slog.Logger
	limiter    ratelimiter.Limiter
	keyFunc    ratelimiter.KeyFunc
	binderOpts []binder.Option
}

// RouteOption configures Routes.
type RouteOption func(*routesConfig)

// WithRouteLogger sets the logger for request errors.
func WithRouteLogger(l *slog.Logger) RouteOption {
	return func(c *routesConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRateLimit limits submissions per key. Denied requests get a JSON 429.
// Store failures let the request through and are logged.
func WithRateLimit(limiter ratelimiter.Limiter, keyFunc ratelimiter.KeyFunc) RouteOption {
	return func(c *routesConfig) {
		c.limiter = limiter
		c.keyFunc = keyFunc
	}
}

// WithBinderOptions passes options to the JSON binder, e.g. a body size limit.
func WithBinderOptions(opts ...binder.Option) RouteOption {
	return func(c *routesConfig) {
		c.binderOpts = append(c.binderOpts, opts...)
	}
}

// Routes exposes the Service as the contact endpoint:
//
//	POST /   {name,email,phone?,subject?,message} -> {success,error?}
//
// Any other method answers 405. Malformed bodies answer 400 with the same
// message as missing fields.
func Routes(svc *Service, opts ...RouteOption) chi.Router {
	// Fields reach Validate unaltered; Normalize cleans them afterwards.
	cfg := &routesConfig{
		log:        slog.Default(),
		binderOpts: []binder.Option{binder.WithSanitizer(nil)},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.MethodNotAllowed(methodNotAllowed)

	post := handler.Wrap(svc.handleSubmit,
		handler.WithBinder[handler.Context, Submission](binder.JSON(cfg.binderOpts...)),
		handler.WithErrorHandler[handler.Context, Submission](handler.NewErrorHandler(cfg.log, handler.ErrorHandlerConfig{
			Classify: classifyBindError,
		})),
	)

	r.Group(func(r chi.Router) {
		if cfg.limiter != nil && cfg.keyFunc != nil {
			r.Use(ratelimiter.Middleware(cfg.limiter, cfg.keyFunc,
				ratelimiter.WithDeniedHandler(http.HandlerFunc(tooManyRequests)),
				ratelimiter.WithFailOpen(cfg.log),
			))
		}
		r.Post("/", post)
	})

	return r
}

func (s *Service) handleSubmit(ctx handler.Context, sub Submission) handler.Response {
	res, err := s.Submit(ctx, sub)
	return handler.JSON(res, handler.WithJSONStatus(StatusCode(err)))
}

// classifyBindError answers undecodable bodies like a submission with
// missing fields.
func classifyBindError(err error) (handler.ErrorInfo, bool) {
	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		return handler.ErrorInfo{StatusCode: http.StatusBadRequest, Message: MsgMessageTooLong, LogLevel: slog.LevelWarn}, true
	case errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrUnsupportedMediaType),
		errors.Is(err, binder.ErrMissingContentType):
		return handler.ErrorInfo{StatusCode: http.StatusBadRequest, Message: MsgRequiredFields, LogLevel: slog.LevelWarn}, true
	}
	return handler.ErrorInfo{StatusCode: http.StatusInternalServerError, Message: MsgSendFailed, LogLevel: slog.LevelError}, true
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(MsgMethodNotAllowed,
		handler.WithJSONStatus(http.StatusMethodNotAllowed),
		handler.WithJSONHeader("Allow", http.MethodPost),
	).Render(w, r)
}

func tooManyRequests(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(MsgTooManyRequests, handler.WithJSONStatus(http.StatusTooManyRequests)).Render(w, r)
}
