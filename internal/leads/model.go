package leads

import "time"

// Status tags the lifecycle stage of a lead.
type Status string

// StatusNew is assigned to every lead at creation. Callers cannot set it.
const StatusNew Status = "new"

// Lead represents a stored lead-capture form submission
type Lead struct {
	ID        string    `json:"id" dynamodbav:"id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Mobile    string    `json:"mobile" dynamodbav:"mobile"`
	Email     string    `json:"email" dynamodbav:"email"`
	Status    Status    `json:"status" dynamodbav:"status"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// SubmitLeadRequest is the body accepted by the submission endpoint and the
// field set held by the form controller.
type SubmitLeadRequest struct {
	Name   string `json:"name" validate:"required,min=2"`
	Mobile string `json:"mobile" validate:"required,min=10"`
	Email  string `json:"email" validate:"required,email"`
}

// RequireFields returns ErrMissingFields when name, mobile or email is empty.
// Whitespace is a value here; Validate judges its format.
func (r *SubmitLeadRequest) RequireFields() error {
	if r.Name == "" || r.Mobile == "" || r.Email == "" {
		return ErrMissingFields
	}
	return nil
}

// newLead builds the record a backend persists. Values are stored as submitted.
func newLead(req *SubmitLeadRequest) *Lead {
	return &Lead{
		Name:   req.Name,
		Mobile: req.Mobile,
		Email:  req.Email,
		Status: StatusNew,
	}
}
