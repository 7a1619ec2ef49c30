// Package logger builds *slog.Logger instances for the website services.
//
// New applies functional options (format, level, output, static attributes)
// and wraps the resulting handler in a decorator that copies request-scoped
// values such as the request ID out of the context on every log call:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "website"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "contact submission dispatched", logger.Component("contact"))
//
// The helpers in attr.go keep attribute keys consistent across packages.
package logger
