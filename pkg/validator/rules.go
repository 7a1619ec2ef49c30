package validator

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule codes, stable across messages.
const (
	CodeRequired   = "required"
	CodeMaxLength  = "max_length"
	CodeEmail      = "email"
	CodeSingleLine = "single_line"
)

// notEmailChar excludes "@" and ECMAScript whitespace: ASCII spaces including
// \v, Unicode space separators, the line and paragraph separators and the
// byte order mark. RE2's \s alone covers only [\t\n\f\r ].
const notEmailChar = `[^@\s\x0B\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// emailRegex accepts local@domain.tld with a single @ and no whitespace.
var emailRegex = regexp.MustCompile(`^` + notEmailChar + `+@` + notEmailChar + `+\.` + notEmailChar + `+$`)

// Required validates that a string is not empty after trimming whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
			Code:    CodeRequired,
		},
	}
}

// MaxLen validates that value holds at most max characters (runes).
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Code:    CodeMaxLength,
		},
	}
}

// ValidEmail validates the local@domain.tld shape. Empty values fail.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsEmail(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
			Code:    CodeEmail,
		},
	}
}

// SingleLine validates that value contains no line breaks.
func SingleLine(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return !strings.ContainsAny(value, "\r\n")
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a single line",
			Code:    CodeSingleLine,
		},
	}
}

// IsEmail reports whether value matches the local@domain.tld shape.
func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}
