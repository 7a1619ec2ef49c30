package main

import (
	"time"

	"github.com/idevelopit/website/modules/contact"
	"github.com/idevelopit/website/pkg/email"
	"github.com/idevelopit/website/pkg/httpserver"
	"github.com/idevelopit/website/pkg/redis"
)

type appConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"website"`
	LogLevel string `env:"LOG_LEVEL"`
}

// rateLimitConfig controls the contact endpoint limiter. Capacity 0 disables it.
type rateLimitConfig struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"0"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1m"`
}

func (c rateLimitConfig) Enabled() bool {
	return c.Capacity > 0
}

// settings groups every configuration struct the process loads.
type settings struct {
	App       appConfig
	HTTP      httpserver.Config
	Email     email.Config
	Contact   contact.Config
	RateLimit rateLimitConfig
	Redis     redis.Config
}
