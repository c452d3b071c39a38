package leads

import "errors"

var (
	// ErrMissingFields is returned when name, mobile or email is empty
	ErrMissingFields = errors.New("leads: all fields are required")

	// ErrInvalidLead is returned when a request fails the form schema
	ErrInvalidLead = errors.New("leads: invalid lead")

	// ErrStorageNotConfigured is returned by a backend without credentials
	ErrStorageNotConfigured = errors.New("leads: storage backend is not configured")
)

// Caller-facing messages. Backend error detail never replaces these.
const (
	MsgFieldsRequired   = "All fields are required"
	MsgInvalidFields    = "Please correct the highlighted fields."
	MsgNotConfigured    = "Database service is not configured. Please contact support."
	MsgSubmitFailed     = "Failed to submit. Please try again."
	MsgUnexpectedFailed = "An unexpected error occurred"
)
