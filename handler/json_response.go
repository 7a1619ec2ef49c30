package handler

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON shape of every error answered by the site.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type jsonResponse struct {
	status  int
	body    any
	headers http.Header
}

func (j *jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for k, v := range j.headers {
		w.Header()[k] = v
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		if status > 0 {
			r.status = status
		}
	}
}

// WithJSONHeader adds a response header.
func WithJSONHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = make(http.Header)
		}
		r.headers.Add(key, value)
	}
}

// JSON encodes v as the response body with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: v}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// JSONError renders {"success":false,"error":message}.
// The status defaults to 500, or the HTTPError code when err is one.
func JSONError(err any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusInternalServerError}

	var message string
	switch e := err.(type) {
	case string:
		message = e
	case HTTPError:
		r.status = e.Code
		message = http.StatusText(e.Code)
	case error:
		message = e.Error()
	}
	r.body = ErrorBody{Success: false, Error: message}

	for _, opt := range opts {
		opt(r)
	}
	return r
}
