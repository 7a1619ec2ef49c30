package contact_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/idevelopit/website/modules/contact"
	"github.com/idevelopit/website/pkg/email"
	"github.com/idevelopit/website/pkg/logger"
)

// MockEmailSender is a testify mock of email.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func testConfig() contact.Config {
	return contact.Config{
		ReceiverEmail: "owner@example.com",
		SendTimeout:   time.Second,
		SiteName:      "Portfolio",
	}
}

func newService(t *testing.T, sender email.EmailSender, mutate ...func(*contact.Config)) *contact.Service {
	t.Helper()

	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	svc, err := contact.NewService(cfg, sender,
		contact.WithLogger(logger.Discard()),
		contact.WithClock(clockwork.NewFakeClockAt(sentAt)),
	)
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	t.Parallel()

	sender := new(MockEmailSender)

	_, err := contact.NewService(testConfig(), nil)
	assert.ErrorIs(t, err, contact.ErrInvalidConfig)

	cfg := testConfig()
	cfg.ReceiverEmail = ""
	_, err = contact.NewService(cfg, sender)
	assert.ErrorIs(t, err, contact.ErrInvalidConfig)

	cfg = testConfig()
	cfg.SendTimeout = -time.Second
	_, err = contact.NewService(cfg, sender)
	assert.ErrorIs(t, err, contact.ErrInvalidConfig)

	svc, err := contact.NewService(testConfig(), sender)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestService_Submit(t *testing.T) {
	t.Parallel()

	t.Run("sends one notification with reply-to submitter", func(t *testing.T) {
		t.Parallel()

		sender := new(MockEmailSender)
		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return p.SendTo == "owner@example.com" &&
				p.ReplyTo == "jane@example.com" &&
				p.FromName == "Jane Doe" &&
				p.Subject == "Portfolio Contact: Jane Doe"
		})).Return(nil).Once()

		res, err := newService(t, sender).Submit(context.Background(), validSubmission())

		require.NoError(t, err)
		assert.Equal(t, contact.Result{Success: true}, res)
		sender.AssertNumberOfCalls(t, "SendEmail", 1)
		sender.AssertExpectations(t)
	})

	t.Run("humanizes the subject", func(t *testing.T) {
		t.Parallel()

		var got email.SendEmailParams
		sender := new(MockEmailSender)
		sender.On("SendEmail", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(1).(email.SendEmailParams) }).
			Return(nil)

		sub := validSubmission()
		sub.Subject = "web-development"
		_, err := newService(t, sender).Submit(context.Background(), sub)
		require.NoError(t, err)

		assert.Equal(t, "Portfolio Contact: Web Development - Jane Doe", got.Subject)
		assert.Contains(t, got.BodyText, "Service: Web Development")
		assert.Contains(t, got.BodyHTML, "Web Development")
	})

	t.Run("subject is humanized from the slug", func(t *testing.T) {
		t.Parallel()

		var subjects []string
		sender := new(MockEmailSender)
		sender.On("SendEmail", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { subjects = append(subjects, args.Get(1).(email.SendEmailParams).Subject) }).
			Return(nil)

		svc := newService(t, sender)
		for _, slug := range []string{"ui-ux-design", "cloud-migration"} {
			sub := validSubmission()
			sub.Subject = slug
			_, err := svc.Submit(context.Background(), sub)
			require.NoError(t, err)
		}

		assert.Equal(t, []string{
			"Portfolio Contact: Ui Ux Design - Jane Doe",
			"Portfolio Contact: Cloud Migration - Jane Doe",
		}, subjects)
	})

	t.Run("reply-to is the submitted address unchanged", func(t *testing.T) {
		t.Parallel()

		var got email.SendEmailParams
		sender := new(MockEmailSender)
		sender.On("SendEmail", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(1).(email.SendEmailParams) }).
			Return(nil).Once()

		sub := validSubmission()
		sub.Email = "Jane.Doe+site@Example.com"
		_, err := newService(t, sender).Submit(context.Background(), sub)
		require.NoError(t, err)
		assert.Equal(t, "Jane.Doe+site@Example.com", got.ReplyTo)
	})

	t.Run("identical submissions are not deduplicated", func(t *testing.T) {
		t.Parallel()

		sender := new(MockEmailSender)
		sender.On("SendEmail", mock.Anything, mock.Anything).Return(nil)

		svc := newService(t, sender)
		for range 2 {
			_, err := svc.Submit(context.Background(), validSubmission())
			require.NoError(t, err)
		}
		sender.AssertNumberOfCalls(t, "SendEmail", 2)
	})

	t.Run("validation failures never dispatch", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			sub     contact.Submission
			wantErr error
			wantMsg string
		}{
			{contact.Submission{Email: "jane@example.com", Message: "Hi"}, contact.ErrRequiredFields, contact.MsgRequiredFields},
			{contact.Submission{Name: "Jane", Message: "Hi"}, contact.ErrRequiredFields, contact.MsgRequiredFields},
			{contact.Submission{Name: "Jane", Email: "jane@example.com"}, contact.ErrRequiredFields, contact.MsgRequiredFields},
			{contact.Submission{Name: "Jane", Email: "foo", Message: "Hi"}, contact.ErrInvalidEmail, contact.MsgInvalidEmail},
			{contact.Submission{Name: "Jane", Email: "foo@bar", Message: "Hi"}, contact.ErrInvalidEmail, contact.MsgInvalidEmail},
			{contact.Submission{Name: "Jane", Email: "@bar.com", Message: "Hi"}, contact.ErrInvalidEmail, contact.MsgInvalidEmail},
			{contact.Submission{Name: "Jane", Email: "jane@exa\nmple.com", Message: "Hi"}, contact.ErrInvalidEmail, contact.MsgInvalidEmail},
			{contact.Submission{Name: "Jane", Email: " jane@example.com", Message: "Hi"}, contact.ErrInvalidEmail, contact.MsgInvalidEmail},
			{contact.Submission{Name: "Jane", Email: "jane@example.com\r\n", Message: "Hi"}, contact.ErrInvalidEmail, contact.MsgInvalidEmail},
			{contact.Submission{Name: "Jane", Email: "jane\u00a0x@example.com", Message: "Hi"}, contact.ErrInvalidEmail, contact.MsgInvalidEmail},
		}

		sender := new(MockEmailSender)
		svc := newService(t, sender)
		for _, c := range cases {
			res, err := svc.Submit(context.Background(), c.sub)
			assert.ErrorIs(t, err, c.wantErr)
			assert.Equal(t, contact.Result{Success: false, Error: c.wantMsg}, res)
			assert.Equal(t, http.StatusBadRequest, contact.StatusCode(err))
		}
		sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("message length cap", func(t *testing.T) {
		t.Parallel()

		sender := new(MockEmailSender)
		svc := newService(t, sender, func(c *contact.Config) { c.MaxMessageLength = 5 })

		sub := validSubmission()
		sub.Message = "Hello there"
		res, err := svc.Submit(context.Background(), sub)

		assert.ErrorIs(t, err, contact.ErrMessageTooLong)
		assert.Equal(t, contact.MsgMessageTooLong, res.Error)
		sender.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})
}

func TestService_Submit_TransportFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sendErr    error
		wantErr    error
		wantMsg    string
		wantStatus int
	}{
		{
			name:       "legacy auth message",
			sendErr:    errors.New("Invalid login: 535 authentication failed for secret-user"),
			wantErr:    contact.ErrConfiguration,
			wantMsg:    contact.MsgConfiguration,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "tagged auth",
			sendErr:    &email.Error{Kind: email.KindAuth, Op: "postmark.send", Err: errors.New("ErrorCode 10: bad token xyz")},
			wantErr:    contact.ErrConfiguration,
			wantMsg:    contact.MsgConfiguration,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "invalid transport config",
			sendErr:    fmt.Errorf("%w: SenderEmail is required", email.ErrInvalidConfig),
			wantErr:    contact.ErrConfiguration,
			wantMsg:    contact.MsgConfiguration,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "legacy timeout message",
			sendErr:    errors.New("connection timeout after 30s"),
			wantErr:    contact.ErrTransient,
			wantMsg:    contact.MsgTransient,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "tagged network",
			sendErr:    &email.Error{Kind: email.KindNetwork, Op: "smtp.send", Err: errors.New("dial failed")},
			wantErr:    contact.ErrTransient,
			wantMsg:    contact.MsgTransient,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "net error",
			sendErr:    &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			wantErr:    contact.ErrTransient,
			wantMsg:    contact.MsgTransient,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "reply-to rejected by transport",
			sendErr:    fmt.Errorf("%w: %w: mail: missing '@' or angle-addr", email.ErrInvalidParams, email.ErrInvalidReplyTo),
			wantErr:    contact.ErrInvalidEmail,
			wantMsg:    contact.MsgInvalidEmail,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "recipient rejected by transport",
			sendErr:    fmt.Errorf("%w: invalid recipient", email.ErrInvalidParams),
			wantErr:    contact.ErrConfiguration,
			wantMsg:    contact.MsgConfiguration,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "other failure",
			sendErr:    errors.New("mailbox unavailable: internal detail 42"),
			wantErr:    contact.ErrSendFailed,
			wantMsg:    contact.MsgSendFailed,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "tagged other",
			sendErr:    &email.Error{Kind: email.KindOther, Op: "postmark.send", Err: errors.New("auth-like text is ignored")},
			wantErr:    contact.ErrSendFailed,
			wantMsg:    contact.MsgSendFailed,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sender := new(MockEmailSender)
			sender.On("SendEmail", mock.Anything, mock.Anything).Return(tt.sendErr).Once()

			res, err := newService(t, sender).Submit(context.Background(), validSubmission())

			require.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.sendErr)
			assert.False(t, res.Success)
			assert.Equal(t, tt.wantMsg, res.Error)
			assert.NotContains(t, res.Error, tt.sendErr.Error())
			assert.Equal(t, tt.wantStatus, contact.StatusCode(err))
			sender.AssertExpectations(t)
		})
	}
}

func TestService_Submit_SMTPReplyTo(t *testing.T) {
	t.Parallel()

	sender, err := email.NewSMTPClient(email.Config{
		Provider:     email.ProviderSMTP,
		SMTPHost:     "127.0.0.1",
		SMTPPort:     2525,
		SMTPUsername: "site@example.com",
		SMTPPassword: "app-password",
		SMTPTimeout:  time.Second,
	})
	require.NoError(t, err)
	svc := newService(t, sender)

	for _, addr := range []string{"a,b@example.com", "<jane>@example.com"} {
		sub := validSubmission()
		sub.Email = addr

		res, err := svc.Submit(context.Background(), sub)

		require.ErrorIs(t, err, contact.ErrInvalidEmail, addr)
		assert.NotErrorIs(t, err, contact.ErrConfiguration, addr)
		assert.Equal(t, contact.Result{Error: contact.MsgInvalidEmail}, res, addr)
		assert.Equal(t, http.StatusBadRequest, contact.StatusCode(err), addr)
	}
}

func TestService_Submit_Timeout(t *testing.T) {
	t.Parallel()

	sender := new(MockEmailSender)
	sender.On("SendEmail", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(errors.New("send aborted")).Once()

	svc := newService(t, sender, func(c *contact.Config) { c.SendTimeout = 20 * time.Millisecond })
	res, err := svc.Submit(context.Background(), validSubmission())

	assert.ErrorIs(t, err, contact.ErrTransient)
	assert.Equal(t, contact.MsgTransient, res.Error)
	assert.Equal(t, http.StatusServiceUnavailable, contact.StatusCode(err))
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{contact.ErrRequiredFields, http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", contact.ErrInvalidEmail), http.StatusBadRequest},
		{contact.ErrMessageTooLong, http.StatusBadRequest},
		{contact.ErrTransient, http.StatusServiceUnavailable},
		{contact.ErrConfiguration, http.StatusInternalServerError},
		{contact.ErrSendFailed, http.StatusInternalServerError},
		{errors.New("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, contact.StatusCode(tt.err), "%v", tt.err)
	}
}

func TestResultFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, contact.Result{Success: true}, contact.ResultFor(nil))
	assert.Equal(t, contact.Result{Error: contact.MsgTransient}, contact.ResultFor(contact.ErrTransient))
	assert.Equal(t, contact.Result{Error: contact.MsgSendFailed}, contact.ResultFor(errors.New("x")))
}
