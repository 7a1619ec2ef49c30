// Package binder decodes HTTP request bodies into typed values for the
// handler package.
//
// JSON checks the media type, enforces a body size limit (1MB by default),
// decodes exactly one JSON value and then runs every string field through a
// sanitizer that drops null bytes and control characters while keeping
// newlines and tabs.
//
// All failures wrap one of the package sentinels, so callers can map them
// with errors.Is:
//
//	switch {
//	case errors.Is(err, binder.ErrBodyTooLarge):
//	case errors.Is(err, binder.ErrFailedToParseJSON):
//	}
package binder
