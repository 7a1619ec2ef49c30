// Command website serves the contact form API and the services catalog.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	goredis "github.com/redis/go-redis/v9"

	"github.com/idevelopit/website/pkg/clientip"
	"github.com/idevelopit/website/pkg/config"
	"github.com/idevelopit/website/pkg/email"
	"github.com/idevelopit/website/pkg/environment"
	"github.com/idevelopit/website/pkg/httpserver"
	"github.com/idevelopit/website/pkg/logger"
	"github.com/idevelopit/website/pkg/redis"
	"github.com/idevelopit/website/pkg/requestid"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("website stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg settings
	if err := loadSettings(&cfg); err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.App.Env, cfg.App.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	}
	if cfg.App.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevel(logger.ParseLevel(cfg.App.LogLevel)))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	sender, err := email.New(cfg.Email)
	if err != nil {
		return fmt.Errorf("email transport: %w", err)
	}
	log.Info("email transport configured", logger.Provider(string(cfg.Email.Provider)))

	var rdb *goredis.Client
	if cfg.Redis.Enabled() {
		rdb, err = redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer rdb.Close()
	}

	d, err := newDeps(cfg, log, sender, rdb)
	if err != nil {
		return err
	}
	defer d.Close()

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, newRouter(d))
}

func loadSettings(cfg *settings) error {
	if err := config.Load(&cfg.App); err != nil {
		return fmt.Errorf("app config: %w", err)
	}
	if err := config.Load(&cfg.HTTP); err != nil {
		return fmt.Errorf("http config: %w", err)
	}
	if err := config.Load(&cfg.Email); err != nil {
		return fmt.Errorf("email config: %w", err)
	}
	if err := config.Load(&cfg.Contact); err != nil {
		return fmt.Errorf("contact config: %w", err)
	}
	if err := config.Load(&cfg.RateLimit); err != nil {
		return fmt.Errorf("rate limit config: %w", err)
	}
	if err := config.Load(&cfg.Redis); err != nil {
		return fmt.Errorf("redis config: %w", err)
	}
	return nil
}
