package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/idevelopit/website/pkg/email"
	"github.com/idevelopit/website/pkg/email/templates"
)

// timestampLayout renders like "10/19/2026, 3:04:05 PM UTC".
const timestampLayout = "1/2/2006, 3:04:05 PM MST"

// Meta carries everything a notification needs besides the submission.
type Meta struct {
	SiteName string
	// Service is the display name of the subject. Empty omits the service.
	Service string
	SentAt  time.Time
}

// Notification is the formatted message sent for one submission.
type Notification struct {
	Subject  string
	Text     string
	HTML     string
	FromName string
	ReplyTo  string
}

// Compose formats sub into a notification. sub must already be normalized
// and valid.
func Compose(ctx context.Context, sub Submission, meta Meta) (Notification, error) {
	html, err := templates.Render(ctx, notificationHTML(sub, meta))
	if err != nil {
		return Notification{}, fmt.Errorf("render notification: %w", err)
	}

	return Notification{
		Subject:  subjectLine(sub, meta),
		Text:     notificationText(sub, meta),
		HTML:     html,
		FromName: sub.Name,
		ReplyTo:  sub.Email,
	}, nil
}

// Params converts the notification into transport parameters for sendTo.
func (n Notification) Params(sendTo string) email.SendEmailParams {
	return email.SendEmailParams{
		SendTo:   sendTo,
		FromName: n.FromName,
		ReplyTo:  n.ReplyTo,
		Subject:  n.Subject,
		BodyHTML: n.HTML,
		BodyText: n.Text,
		Tag:      "contact",
	}
}

func subjectLine(sub Submission, meta Meta) string {
	var b strings.Builder
	b.WriteString(meta.SiteName)
	b.WriteString(" Contact: ")
	if meta.Service != "" {
		b.WriteString(meta.Service)
		b.WriteString(" - ")
	}
	b.WriteString(sub.Name)
	return strings.TrimSpace(b.String())
}

func notificationText(sub Submission, meta Meta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\n", sub.Name, sub.Email)
	if sub.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", sub.Phone)
	}
	if meta.Service != "" {
		fmt.Fprintf(&b, "Service: %s\n", meta.Service)
	}
	fmt.Fprintf(&b, "\nMessage:\n%s\n\n---\n", sub.Message)
	fmt.Fprintf(&b, "Sent from %s contact form on %s\n",
		strings.ToLower(meta.SiteName), meta.SentAt.Format(timestampLayout))
	return b.String()
}
