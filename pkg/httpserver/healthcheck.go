package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/idevelopit/website/pkg/logger"
)

// HealthCheckHandler serves liveness and readiness probes.
//
// Without dependency checks it answers 200 "ALIVE". With checks, each one runs
// against the request context; all passing yields 200 "READY", any failure
// yields 503 "NOT_READY".
func HealthCheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				if log != nil {
					log.ErrorContext(r.Context(), "readiness check failed",
						logger.Error(err),
						logger.Component("healthcheck"),
					)
				}
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
