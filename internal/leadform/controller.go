package leadform

import (
	"context"
	"errors"
	"sync"

	"github.com/wolfman30/lead-capture/internal/leads"
)

// User-facing notification texts.
const (
	MsgSubmitted     = "Thank you! We'll be in touch soon."
	MsgServerFailure = "Something went wrong. Please try again."
	MsgNetworkError  = "Network error. Please check your connection and try again."
)

var (
	// ErrInvalidInput is returned when local validation fails; no request is sent.
	ErrInvalidInput = errors.New("leadform: invalid input")
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("leadform: submission in progress")
	// ErrAlreadySubmitted is returned until Reset is called after a success.
	ErrAlreadySubmitted = errors.New("leadform: already submitted")
)

// State is the submission state of the form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Field names one of the form inputs.
type Field string

const (
	FieldName   Field = "name"
	FieldMobile Field = "mobile"
	FieldEmail  Field = "email"
)

// NoticeKind distinguishes success from error notifications.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a transient message surfaced to the user.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notifier receives notices as they are raised.
type Notifier interface {
	Notify(Notice)
}

// Submitter delivers a validated submission to the endpoint.
type Submitter interface {
	Submit(ctx context.Context, req leads.SubmitLeadRequest) (*leads.Lead, error)
}

// Controller holds the form inputs and drives idle -> submitting -> submitted.
// It is safe for concurrent use; a second Submit while one is in flight is rejected.
type Controller struct {
	submitter Submitter
	notifier  Notifier

	mu          sync.Mutex
	values      leads.SubmitLeadRequest
	fieldErrors leads.FieldErrors
	state       State
	notice      Notice
}

// NewController creates an idle controller. notifier may be nil.
func NewController(submitter Submitter, notifier Notifier) *Controller {
	return &Controller{submitter: submitter, notifier: notifier}
}

// SetField updates one input. Edits are ignored while a submission is in flight.
func (c *Controller) SetField(field Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateSubmitting {
		return
	}
	switch field {
	case FieldName:
		c.values.Name = value
	case FieldMobile:
		c.values.Mobile = value
	case FieldEmail:
		c.values.Email = value
	}
}

// Values returns the current inputs.
func (c *Controller) Values() leads.SubmitLeadRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

// State returns the current submission state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// FieldErrors returns the messages from the last failed validation.
func (c *Controller) FieldErrors() leads.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(leads.FieldErrors, len(c.fieldErrors))
	for k, v := range c.fieldErrors {
		out[k] = v
	}
	return out
}

// Notice returns the most recent notification.
func (c *Controller) Notice() Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notice
}

// Submit validates the inputs and, when valid, sends exactly one request.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateSubmitting:
		c.mu.Unlock()
		return ErrBusy
	case StateSubmitted:
		c.mu.Unlock()
		return ErrAlreadySubmitted
	}
	if errs := leads.Validate(c.values); len(errs) > 0 {
		c.fieldErrors = errs
		c.notice = Notice{}
		c.mu.Unlock()
		return ErrInvalidInput
	}
	c.fieldErrors = nil
	c.state = StateSubmitting
	values := c.values
	c.mu.Unlock()

	_, err := c.submitter.Submit(ctx, values)

	c.mu.Lock()
	var notice Notice
	if err == nil {
		c.state = StateSubmitted
		c.values = leads.SubmitLeadRequest{}
		notice = Notice{Kind: NoticeSuccess, Message: MsgSubmitted}
	} else {
		c.state = StateIdle
		notice = Notice{Kind: NoticeError, Message: failureMessage(err)}
	}
	c.notice = notice
	c.mu.Unlock()

	if c.notifier != nil {
		c.notifier.Notify(notice)
	}
	return err
}

// Reset returns a submitted form to idle so another entry can be made.
// It reports whether the state changed.
func (c *Controller) Reset() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateSubmitted {
		return false
	}
	c.state = StateIdle
	c.fieldErrors = nil
	c.notice = Notice{}
	return true
}

func failureMessage(err error) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		if serverErr.Message != "" {
			return serverErr.Message
		}
		return MsgServerFailure
	}
	if IsNetworkError(err) {
		return MsgNetworkError
	}
	return MsgServerFailure
}
