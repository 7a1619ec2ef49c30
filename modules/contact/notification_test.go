package contact_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idevelopit/website/modules/contact"
)

var sentAt = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

func TestCompose(t *testing.T) {
	t.Parallel()

	t.Run("minimal submission", func(t *testing.T) {
		t.Parallel()

		n, err := contact.Compose(context.Background(), validSubmission(), contact.Meta{SiteName: "Portfolio", SentAt: sentAt})
		require.NoError(t, err)

		assert.Equal(t, "Portfolio Contact: Jane Doe", n.Subject)
		assert.Equal(t, "Jane Doe", n.FromName)
		assert.Equal(t, "jane@example.com", n.ReplyTo)
		assert.Equal(t, "From: Jane Doe <jane@example.com>\n"+
			"\n"+
			"Message:\n"+
			"Hello\n"+
			"\n"+
			"---\n"+
			"Sent from portfolio contact form on 10/19/2026, 3:04:05 PM UTC\n", n.Text)

		assert.Contains(t, n.HTML, "New Contact Form Submission")
		assert.Contains(t, n.HTML, `href="mailto:jane@example.com"`)
		assert.NotContains(t, n.HTML, "Phone:")
		assert.NotContains(t, n.HTML, "Service:")
		assert.Contains(t, n.HTML, "sent from your portfolio contact form on 10/19/2026, 3:04:05 PM UTC.")
		assert.Contains(t, n.HTML, "You can reply directly to this email to respond to Jane Doe.")
	})

	t.Run("phone and service", func(t *testing.T) {
		t.Parallel()

		sub := validSubmission()
		sub.Phone = "+1 555 0100"
		sub.Subject = "web-development"
		sub.Message = "Line one\nLine two"

		n, err := contact.Compose(context.Background(), sub, contact.Meta{SiteName: "Portfolio", Service: "Web Development", SentAt: sentAt})
		require.NoError(t, err)

		assert.Equal(t, "Portfolio Contact: Web Development - Jane Doe", n.Subject)
		assert.Contains(t, n.Text, "Phone: +1 555 0100\nService: Web Development\n\nMessage:\nLine one\nLine two\n")
		assert.Contains(t, n.HTML, `href="tel:+1 555 0100"`)
		assert.Contains(t, n.HTML, "Web Development")
		assert.Contains(t, n.HTML, "Line one<br>Line two")
	})

	t.Run("html escapes submitted values", func(t *testing.T) {
		t.Parallel()

		sub := contact.Submission{
			Name:    `<script>alert("x")</script>`,
			Email:   `a"b@example.com`,
			Message: "<b>bold</b>\n& more",
		}

		n, err := contact.Compose(context.Background(), sub, contact.Meta{SiteName: "Portfolio", SentAt: sentAt})
		require.NoError(t, err)

		assert.NotContains(t, n.HTML, "<script>")
		assert.NotContains(t, n.HTML, "<b>bold</b>")
		assert.Contains(t, n.HTML, "&lt;script&gt;")
		assert.Contains(t, n.HTML, "&lt;b&gt;bold&lt;/b&gt;<br>&amp; more")
		assert.Contains(t, n.HTML, `mailto:a&#34;b@example.com`)
		assert.Contains(t, n.Text, "<b>bold</b>")
	})
}

func TestNotification_Params(t *testing.T) {
	t.Parallel()

	n, err := contact.Compose(context.Background(), validSubmission(), contact.Meta{SiteName: "Portfolio", SentAt: sentAt})
	require.NoError(t, err)

	p := n.Params("owner@example.com")
	require.NoError(t, p.Validate())
	assert.Equal(t, "owner@example.com", p.SendTo)
	assert.Equal(t, "jane@example.com", p.ReplyTo)
	assert.Equal(t, "Jane Doe", p.FromName)
	assert.Equal(t, n.HTML, p.BodyHTML)
	assert.Equal(t, n.Text, p.BodyText)
	assert.Equal(t, "contact", p.Tag)
}
