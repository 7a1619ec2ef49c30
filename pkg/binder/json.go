package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"

	"github.com/idevelopit/website/pkg/sanitizer"
)

// DefaultMaxJSONSize is the default maximum size for JSON request bodies (1MB).
const DefaultMaxJSONSize = 1 << 20

type jsonConfig struct {
	maxSize        int64
	disallowFields bool
	sanitize       func(string) string
}

// Option configures the JSON binder.
type Option func(*jsonConfig)

// WithMaxSize overrides the body size limit.
func WithMaxSize(n int64) Option {
	return func(c *jsonConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithDisallowUnknownFields rejects bodies carrying fields the target does not declare.
func WithDisallowUnknownFields() Option {
	return func(c *jsonConfig) {
		c.disallowFields = true
	}
}

// WithSanitizer replaces the string sanitizer applied to every decoded
// string field. nil disables sanitizing.
func WithSanitizer(fn func(string) string) Option {
	return func(c *jsonConfig) {
		c.sanitize = fn
	}
}

var defaultSanitizer = sanitizer.Compose(
	sanitizer.RemoveNullBytes,
	sanitizer.RemoveControlChars,
)

// JSON creates a JSON binder function.
//
//	r.Post("/", handler.Wrap(submit,
//		handler.WithBinder[handler.Context, contact.Submission](binder.JSON()),
//	))
func JSON(opts ...Option) func(r *http.Request, v any) error {
	cfg := &jsonConfig{
		maxSize:  DefaultMaxJSONSize,
		sanitize: defaultSanitizer,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(r *http.Request, v any) error {
		if err := r.Context().Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, contentType)
		}

		if r.Body == nil {
			return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, cfg.maxSize+1))
		if err != nil {
			return fmt.Errorf("%w: failed to read request body: %w", ErrFailedToParseJSON, err)
		}
		if int64(len(body)) > cfg.maxSize {
			return fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, cfg.maxSize)
		}

		decoder := json.NewDecoder(bytes.NewReader(body))
		if cfg.disallowFields {
			decoder.DisallowUnknownFields()
		}

		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %w", ErrFailedToParseJSON, err)
		}

		// Ensure entire body was consumed
		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}

		if cfg.sanitize != nil {
			sanitizeValue(reflect.ValueOf(v), cfg.sanitize)
		}
		return nil
	}
}

// sanitizeValue walks v and rewrites every settable string.
func sanitizeValue(rv reflect.Value, fn func(string) string) {
	switch rv.Kind() {
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(fn(rv.String()))
		}

	case reflect.Struct:
		for i := range rv.NumField() {
			sanitizeValue(rv.Field(i), fn)
		}

	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			sanitizeValue(rv.Index(i), fn)
		}

	case reflect.Map:
		if rv.Type().Elem().Kind() != reflect.String {
			return
		}
		iter := rv.MapRange()
		for iter.Next() {
			rv.SetMapIndex(iter.Key(), reflect.ValueOf(fn(iter.Value().String())).Convert(rv.Type().Elem()))
		}

	case reflect.Ptr, reflect.Interface:
		if !rv.IsNil() {
			sanitizeValue(rv.Elem(), fn)
		}
	}
}
