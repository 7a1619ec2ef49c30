package contact

import "time"

// Config holds contact relay settings.
type Config struct {
	// ReceiverEmail is where notifications are delivered.
	ReceiverEmail string `env:"RECEIVER_EMAIL,required"`

	// SendTimeout bounds one transport call. Zero disables the bound.
	SendTimeout time.Duration `env:"CONTACT_SEND_TIMEOUT" envDefault:"15s"`

	// SiteName prefixes notification subjects: "<SiteName> Contact: ...".
	SiteName string `env:"CONTACT_SITE_NAME" envDefault:"Portfolio"`

	// MaxMessageLength caps the message in characters. Zero disables the check.
	MaxMessageLength int `env:"CONTACT_MAX_MESSAGE_LENGTH" envDefault:"0"`
}
