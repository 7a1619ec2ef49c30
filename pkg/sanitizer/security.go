package sanitizer

import (
	"regexp"
	"strings"
)

var unsafeFilenameRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// RemoveNullBytes removes null bytes.
func RemoveNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// PreventHeaderInjection removes characters that could split a mail or HTTP header.
func PreventHeaderInjection(s string) string {
	result := strings.ReplaceAll(s, "\r", "")
	result = strings.ReplaceAll(result, "\n", "")
	return RemoveNullBytes(result)
}

// DisplayName strips characters that would break out of a quoted
// display name such as "Jane Doe" <jane@example.com>.
func DisplayName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '\r', '\n', '<', '>', '\x00':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// SanitizeFilename keeps letters, digits, dash, underscore and dot, turns
// spaces into underscores and caps the result at maxLen bytes.
// An empty result is replaced by fallback.
func SanitizeFilename(s string, maxLen int, fallback string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = unsafeFilenameRegex.ReplaceAllString(s, "")
	s = strings.Trim(s, ".")

	if maxLen > 0 && len(s) > maxLen {
		s = s[:maxLen]
	}
	if s == "" {
		return fallback
	}
	return s
}
