package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/idevelopit/website/modules/contact"
	"github.com/idevelopit/website/pkg/async"
)

// DefaultResetDelay is how long the form stays Submitted before clearing.
const DefaultResetDelay = 3 * time.Second

var (
	ErrAlreadySubmitting = errors.New("collector: submission in progress")
	ErrAlreadySubmitted  = errors.New("collector: form already submitted")
	ErrUnknownField      = errors.New("collector: unknown field")
)

// State is the form's UI state.
type State int

const (
	Idle State = iota
	Submitting
	Submitted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Field names a form input. Values match the JSON keys of contact.Submission.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// Sender delivers one submission. *Client implements it.
type Sender interface {
	Send(ctx context.Context, sub contact.Submission) (contact.Result, error)
}

// Snapshot is a consistent view of the form.
type Snapshot struct {
	State  State
	Values contact.Submission
	// Error is the last failure message, already safe to display.
	Error string
}

// Form holds the contact form state machine:
//
//	Idle -> Submitting -> Submitted -> (after the reset delay) Idle, fields cleared
//	Submitting -> Idle with Error set on failure
type Form struct {
	sender     Sender
	clock      clockwork.Clock
	resetDelay time.Duration
	onChange   func(Snapshot)

	mu         sync.Mutex
	values     contact.Submission
	state      State
	lastError  string
	inflight   *async.Future[struct{}]
	resetTimer clockwork.Timer
}

// FormOption configures a Form.
type FormOption func(*Form)

// WithClock sets the clock driving the reset delay.
func WithClock(c clockwork.Clock) FormOption {
	return func(f *Form) {
		if c != nil {
			f.clock = c
		}
	}
}

// WithResetDelay overrides DefaultResetDelay.
func WithResetDelay(d time.Duration) FormOption {
	return func(f *Form) {
		if d > 0 {
			f.resetDelay = d
		}
	}
}

// OnChange registers fn to be called after every state transition.
// fn runs outside the form lock and may call Snapshot.
func OnChange(fn func(Snapshot)) FormOption {
	return func(f *Form) {
		f.onChange = fn
	}
}

// NewForm creates an idle, empty form.
func NewForm(sender Sender, opts ...FormOption) *Form {
	f := &Form{
		sender:     sender,
		clock:      clockwork.NewRealClock(),
		resetDelay: DefaultResetDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Set updates one field.
func (f *Form) Set(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case FieldName:
		f.values.Name = value
	case FieldEmail:
		f.values.Email = value
	case FieldPhone:
		f.values.Phone = value
	case FieldSubject:
		f.values.Subject = value
	case FieldMessage:
		f.values.Message = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// Snapshot returns the current state, values and last error.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Form) snapshotLocked() Snapshot {
	return Snapshot{State: f.state, Values: f.values, Error: f.lastError}
}

// Submit sends the current values once and returns without waiting for the
// answer. Use Wait or OnChange to observe the outcome.
//
// Empty required fields fail with contact.ErrRequiredFields before any
// request is made. A second Submit while one is in flight fails with
// ErrAlreadySubmitting.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case Submitting:
		f.mu.Unlock()
		return ErrAlreadySubmitting
	case Submitted:
		f.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if missingRequired(f.values) {
		f.mu.Unlock()
		return contact.ErrRequiredFields
	}

	f.state = Submitting
	f.lastError = ""
	snap := f.snapshotLocked()
	f.mu.Unlock()

	// Announce Submitting before the request can resolve.
	f.notify(snap)

	future := async.Async(ctx, snap.Values, f.sender.Send)
	f.mu.Lock()
	f.inflight = async.Then(future, f.resolve)
	f.mu.Unlock()
	return nil
}

// Wait blocks until the in-flight submission, if any, has been resolved.
func (f *Form) Wait() {
	f.mu.Lock()
	inflight := f.inflight
	f.mu.Unlock()

	if inflight != nil {
		_, _ = inflight.Await()
	}
}

// Close stops a pending reset.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
}

func (f *Form) resolve(res contact.Result, err error) {
	f.mu.Lock()
	if err == nil && res.Success {
		f.state = Submitted
		f.resetTimer = f.clock.AfterFunc(f.resetDelay, f.reset)
	} else {
		f.state = Idle
		f.lastError = res.Error
		if f.lastError == "" {
			f.lastError = contact.MsgSendFailed
		}
	}
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(snap)
}

func (f *Form) reset() {
	f.mu.Lock()
	if f.state != Submitted {
		f.mu.Unlock()
		return
	}
	f.state = Idle
	f.values = contact.Submission{}
	f.lastError = ""
	f.resetTimer = nil
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.notify(snap)
}

func (f *Form) notify(s Snapshot) {
	if f.onChange != nil {
		f.onChange(s)
	}
}

func missingRequired(s contact.Submission) bool {
	return strings.TrimSpace(s.Name) == "" ||
		strings.TrimSpace(s.Email) == "" ||
		strings.TrimSpace(s.Message) == ""
}
