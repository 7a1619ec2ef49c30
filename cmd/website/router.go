package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/idevelopit/website/modules/catalog"
	"github.com/idevelopit/website/modules/contact"
	"github.com/idevelopit/website/pkg/clientip"
	"github.com/idevelopit/website/pkg/email"
	"github.com/idevelopit/website/pkg/environment"
	"github.com/idevelopit/website/pkg/httpserver"
	"github.com/idevelopit/website/pkg/ratelimiter"
	"github.com/idevelopit/website/pkg/redis"
	"github.com/idevelopit/website/pkg/requestid"
)

// deps holds everything the router needs.
type deps struct {
	env     environment.Environment
	log     *slog.Logger
	catalog *catalog.Catalog
	contact *contact.Service
	limiter ratelimiter.Limiter
	checks  []func(context.Context) error
	closers []func()
}

// newDeps builds the contact service and, when enabled, its rate limiter.
// The limiter uses Redis when rdb is set and an in-memory store otherwise.
func newDeps(cfg settings, log *slog.Logger, sender email.EmailSender, rdb *goredis.Client) (*deps, error) {
	d := &deps{
		env:     environment.Parse(cfg.App.Env),
		log:     log,
		catalog: catalog.Default(),
	}

	svc, err := contact.NewService(cfg.Contact, sender, contact.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("contact service: %w", err)
	}
	d.contact = svc

	if rdb != nil {
		d.checks = append(d.checks, redis.Healthcheck(rdb))
	}

	if cfg.RateLimit.Enabled() {
		var store ratelimiter.Store
		if rdb != nil {
			store = ratelimiter.NewRedisStore(rdb, ratelimiter.WithKeyPrefix(cfg.App.Name+":contact:"))
		} else {
			mem := ratelimiter.NewMemoryStore()
			d.closers = append(d.closers, mem.Close)
			store = mem
		}

		limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
			Capacity:       cfg.RateLimit.Capacity,
			RefillRate:     cfg.RateLimit.RefillRate,
			RefillInterval: cfg.RateLimit.RefillInterval,
		})
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		d.limiter = limiter
	}

	return d, nil
}

func (d *deps) Close() {
	for _, c := range d.closers {
		c()
	}
}

func newRouter(d *deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(environment.Middleware(d.env))

	r.Get("/health/live", httpserver.HealthCheckHandler(d.log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(d.log, d.checks...))

	contactOpts := []contact.RouteOption{contact.WithRouteLogger(d.log)}
	if d.limiter != nil {
		contactOpts = append(contactOpts, contact.WithRateLimit(d.limiter, clientip.Key))
	}

	r.Route("/api", func(r chi.Router) {
		r.Mount("/contact", contact.Routes(d.contact, contactOpts...))
		r.Mount("/services", catalog.Routes(d.catalog))
	})

	return r
}
