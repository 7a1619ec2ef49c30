package contact

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const (
	styleWrapper = "font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9;"
	styleCard    = "background-color: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);"
	styleHeading = "color: #333; margin-bottom: 20px; border-bottom: 2px solid #4F46E5; padding-bottom: 10px;"
	styleRow     = "margin-bottom: 15px;"
	styleLabel   = "color: #555;"
	styleValue   = "margin-left: 10px; color: #333;"
	styleLink    = "margin-left: 10px; color: #4F46E5; text-decoration: none;"
	styleMessage = "margin-top: 10px; padding: 15px; background-color: #f8f9fa; border-left: 4px solid #4F46E5; border-radius: 4px;"
	styleFooter  = "margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #666;"
)

// htmlWriter keeps the first write error so markup reads top to bottom.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, p := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, p)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) open(tag, style string) {
	h.raw("<", tag, ` style="`, style, `">`)
}

func (h *htmlWriter) link(href templ.SafeURL, label string) {
	h.raw(`<a href="`, templ.EscapeString(string(href)), `" style="`, styleLink, `">`)
	h.text(label)
	h.raw("</a>")
}

func (h *htmlWriter) row(label string, value func()) {
	h.open("div", styleRow)
	h.open("strong", styleLabel)
	h.text(label)
	h.raw("</strong>")
	value()
	h.raw("</div>")
}

// multiline escapes every line of s and joins them with <br>.
func (h *htmlWriter) multiline(s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			h.raw("<br>")
		}
		h.text(line)
	}
}

// notificationHTML renders the rich body. Every submitted value is escaped.
func notificationHTML(sub Submission, meta Meta) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.open("div", styleWrapper)
		h.open("div", styleCard)

		h.open("h2", styleHeading)
		h.raw("New Contact Form Submission</h2>")

		h.row("Name:", func() {
			h.open("span", styleValue)
			h.text(sub.Name)
			h.raw("</span>")
		})
		h.row("Email:", func() {
			h.link(templ.URL("mailto:"+sub.Email), sub.Email)
		})
		if sub.Phone != "" {
			h.row("Phone:", func() {
				h.link(templ.URL("tel:"+sub.Phone), sub.Phone)
			})
		}
		if meta.Service != "" {
			h.row("Service:", func() {
				h.open("span", styleValue)
				h.text(meta.Service)
				h.raw("</span>")
			})
		}

		h.open("div", "margin-bottom: 20px;")
		h.open("strong", styleLabel)
		h.raw("Message:</strong>")
		h.open("div", styleMessage)
		h.multiline(sub.Message)
		h.raw("</div></div>")

		h.open("div", styleFooter)
		h.raw("<p>This message was sent from your ")
		h.text(strings.ToLower(meta.SiteName))
		h.raw(" contact form on ")
		h.text(meta.SentAt.Format(timestampLayout))
		h.raw(".</p><p>You can reply directly to this email to respond to ")
		h.text(sub.Name)
		h.raw(".</p></div>")

		h.raw("</div></div>")

		return h.err
	})
}
