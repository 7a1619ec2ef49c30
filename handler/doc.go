// Package handler provides type-safe HTTP request handling.
//
// Generic handler functions receive a bound request value and return a
// Response; Wrap turns them into an http.HandlerFunc:
//
//	type Submission struct {
//		Name  string `json:"name"`
//		Email string `json:"email"`
//	}
//
//	func submit(ctx handler.Context, req Submission) handler.Response {
//		return handler.JSON(map[string]bool{"success": true})
//	}
//
//	r.Post("/api/contact", handler.Wrap(submit,
//		handler.WithBinder[handler.Context, Submission](binder.JSON()),
//	))
//
// # Errors
//
// Binding and rendering failures go to the configured ErrorHandler. The
// default one and NewErrorHandler both answer with ErrorBody, the JSON shape
// {"success":false,"error":"..."} shared by every endpoint of the site:
//   - HTTPError carries a status code and a message key
//   - ValidationError (url.Values based) always maps to 400
//   - anything else is a 500 with a generic message
//
// NewErrorHandler logs the full error with the request ID and never writes
// error details to the client beyond the classified message.
//
// # Decorators
//
// Decorators wrap a HandlerFunc with cross-cutting behavior. They are applied
// in order, the first being the outermost.
package handler
