// Package config loads process configuration from environment variables.
//
// Values come from the process environment, optionally seeded from one or more
// .env files through github.com/joho/godotenv, and are parsed into tagged
// structs with github.com/caarlos0/env/v11. Each configuration type is parsed
// once and cached for the lifetime of the process.
//
//	type MailConfig struct {
//	    Receiver string        `env:"RECEIVER_EMAIL,required"`
//	    Timeout  time.Duration `env:"CONTACT_SEND_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg MailConfig
//	config.MustLoad(&cfg)
//
// Use ResetCache in tests that change the environment between loads.
package config
