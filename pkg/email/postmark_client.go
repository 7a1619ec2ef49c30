package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mrz1836/postmark"
)

// postmarkInvalidToken is Postmark's "Bad or missing API token" error code.
const postmarkInvalidToken = 10

type postmarkClient struct {
	client *postmark.Client
	config Config
}

// PostmarkOption configures the Postmark client.
type PostmarkOption func(*http.Client)

// WithPostmarkTransport sets the HTTP transport used to reach the Postmark API.
func WithPostmarkTransport(rt http.RoundTripper) PostmarkOption {
	return func(c *http.Client) {
		if rt != nil {
			c.Transport = rt
		}
	}
}

// NewPostmarkClient creates a Postmark-backed email sender.
// Both tokens are required for runtime operation.
func NewPostmarkClient(cfg Config, opts ...PostmarkOption) (EmailSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if err := validateSender(cfg); err != nil {
		return nil, err
	}

	httpClient := &http.Client{Transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(httpClient)
	}
	httpClient.Transport = statusTransport{base: httpClient.Transport}

	client := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	client.HTTPClient = httpClient

	return &postmarkClient{client: client, config: cfg}, nil
}

// SendEmail implements EmailSender using Postmark's transactional API.
// Tracking stays off: the recipient is the site owner, not a customer.
func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	var status int
	ctx = context.WithValue(ctx, statusKey{}, &status)

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:     formatFrom(params.FromName, c.config.Sender()),
		ReplyTo:  params.ReplyTo,
		To:       params.SendTo,
		Subject:  params.Subject,
		Tag:      params.Tag,
		HTMLBody: params.BodyHTML,
		TextBody: params.BodyText,
	})
	if err == nil && resp.ErrorCode == 0 {
		return nil
	}
	if err == nil {
		err = fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message)
	}

	return newError(postmarkKind(status, resp.ErrorCode, err), "postmark.send", err)
}

func postmarkKind(status int, code int64, err error) Kind {
	switch {
	case status == http.StatusUnauthorized, code == postmarkInvalidToken:
		return KindAuth
	case status == http.StatusTooManyRequests, status >= http.StatusInternalServerError:
		return KindNetwork
	case status == 0 && isNetworkError(err):
		return KindNetwork
	case errors.Is(err, context.Canceled):
		return KindNetwork
	default:
		return KindOther
	}
}

type statusKey struct{}

// statusTransport records the response status into the request context so
// failures can be classified regardless of how the API client reports them.
type statusTransport struct {
	base http.RoundTripper
}

func (t statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	res, err := t.base.RoundTrip(req)
	if res != nil {
		if status, ok := req.Context().Value(statusKey{}).(*int); ok {
			*status = res.StatusCode
		}
	}
	return res, err
}
