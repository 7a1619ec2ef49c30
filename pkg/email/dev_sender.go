package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/idevelopit/website/pkg/sanitizer"
)

// DevSender implements EmailSender for local development.
// It saves each email as HTML, text and JSON files instead of sending it.
type DevSender struct {
	dir string
	now func() time.Time
}

// NewDevSender creates a development email sender that saves emails to dir.
// The directory is created on first send.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir, now: time.Now}
}

type emailMetadata struct {
	Timestamp string `json:"timestamp"`
	SendTo    string `json:"send_to"`
	From      string `json:"from,omitempty"`
	ReplyTo   string `json:"reply_to,omitempty"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
}

// SendEmail writes the message files to the configured directory.
func (d *DevSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return newError(KindNetwork, "dev.send", err)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return newError(KindOther, "dev.send", fmt.Errorf("failed to create directory: %w", err))
	}

	now := d.now()
	identifier := params.Tag
	if identifier == "" {
		identifier = params.Subject
	}
	base := filepath.Join(d.dir, fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405.000"), filename(identifier)))

	if params.BodyHTML != "" {
		if err := os.WriteFile(base+".html", []byte(params.BodyHTML), 0o644); err != nil {
			return newError(KindOther, "dev.send", fmt.Errorf("failed to write HTML file: %w", err))
		}
	}
	if params.BodyText != "" {
		if err := os.WriteFile(base+".txt", []byte(params.BodyText), 0o644); err != nil {
			return newError(KindOther, "dev.send", fmt.Errorf("failed to write text file: %w", err))
		}
	}

	metadata, err := json.MarshalIndent(emailMetadata{
		Timestamp: now.Format(time.RFC3339),
		SendTo:    params.SendTo,
		From:      sanitizer.DisplayName(params.FromName),
		ReplyTo:   params.ReplyTo,
		Subject:   params.Subject,
		Tag:       params.Tag,
	}, "", "  ")
	if err != nil {
		return newError(KindOther, "dev.send", fmt.Errorf("failed to marshal metadata: %w", err))
	}
	if err := os.WriteFile(base+".json", metadata, 0o644); err != nil {
		return newError(KindOther, "dev.send", fmt.Errorf("failed to write JSON file: %w", err))
	}

	return nil
}

// filename converts a subject or tag into a safe, lowercase file name.
func filename(s string) string {
	return strings.ToLower(sanitizer.SanitizeFilename(s, 100, "email"))
}
