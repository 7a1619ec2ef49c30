package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/idevelopit/website/modules/contact"
)

// ErrUnexpectedResponse is returned when the endpoint answers with
// something other than a {success,error} JSON body.
var ErrUnexpectedResponse = errors.New("collector: unexpected response")

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 64 << 10

// Client posts submissions to the contact endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// NewClient creates a client for the endpoint URL, e.g. "https://example.com/api/contact".
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send posts sub once. It never retries.
//
// A decoded {success,error} body is returned as is with a nil error, whatever
// the status code. Transport failures and undecodable bodies return a Result
// carrying the generic failure message together with the error.
func (c *Client) Send(ctx context.Context, sub contact.Submission) (contact.Result, error) {
	failed := contact.Result{Success: false, Error: contact.MsgSendFailed}

	body, err := json.Marshal(sub)
	if err != nil {
		return failed, fmt.Errorf("encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return failed, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failed, fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()

	var res contact.Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&res); err != nil {
		return failed, fmt.Errorf("%w: status %d: %w", ErrUnexpectedResponse, resp.StatusCode, err)
	}
	if !res.Success && res.Error == "" {
		res.Error = contact.MsgSendFailed
	}
	return res, nil
}
