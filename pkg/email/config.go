package email

import "time"

// Provider names a mail transport.
type Provider string

const (
	ProviderPostmark Provider = "postmark"
	ProviderSMTP     Provider = "smtp"
	ProviderDev      Provider = "dev"
)

// Config holds email transport configuration.
// Only the settings of the selected Provider are required.
type Config struct {
	Provider Provider `env:"EMAIL_PROVIDER" envDefault:"dev"`

	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	SMTPHost     string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string        `env:"SMTP_USERNAME"`
	SMTPPassword string        `env:"SMTP_PASSWORD"`
	SMTPTimeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`

	// SenderEmail is the authenticated From address. Defaults to SMTPUsername.
	SenderEmail string `env:"SENDER_EMAIL"`

	DevDir string `env:"EMAIL_DEV_DIR" envDefault:"tmp/emails"`
}

// Sender returns the From address.
func (c Config) Sender() string {
	if c.SenderEmail != "" {
		return c.SenderEmail
	}
	return c.SMTPUsername
}
