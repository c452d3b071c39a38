package leads

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  SubmitLeadRequest
		want FieldErrors
	}{
		{
			name: "valid minimum lengths",
			req:  SubmitLeadRequest{Name: "Jo", Mobile: "5551234567", Email: "jo@x.com"},
		},
		{
			name: "name too short",
			req:  SubmitLeadRequest{Name: "J", Mobile: "5551234567", Email: "jo@x.com"},
			want: FieldErrors{"name": MsgNameTooShort},
		},
		{
			name: "multibyte name counts characters",
			req:  SubmitLeadRequest{Name: "Zoë", Mobile: "5551234567", Email: "zoe@x.com"},
		},
		{
			name: "mobile too short",
			req:  SubmitLeadRequest{Name: "Jo", Mobile: "555123456", Email: "jo@x.com"},
			want: FieldErrors{"mobile": MsgMobileLength},
		},
		{
			name: "mobile format is not checked beyond length",
			req:  SubmitLeadRequest{Name: "Jo", Mobile: "call me later", Email: "jo@x.com"},
		},
		{
			name: "malformed email",
			req:  SubmitLeadRequest{Name: "Jo", Mobile: "5551234567", Email: "jo@"},
			want: FieldErrors{"email": MsgEmailInvalid},
		},
		{
			name: "everything empty",
			req:  SubmitLeadRequest{},
			want: FieldErrors{
				"name":   MsgNameTooShort,
				"mobile": MsgMobileLength,
				"email":  MsgEmailInvalid,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.req)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for field, msg := range tt.want {
				if got[field] != msg {
					t.Errorf("field %s: expected %q, got %q", field, msg, got[field])
				}
			}
		})
	}
}

func TestFieldErrorsError(t *testing.T) {
	fe := FieldErrors{"mobile": "bad mobile", "email": "bad email"}
	if got, want := fe.Error(), "email: bad email; mobile: bad mobile"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if !errors.Is(fe, ErrInvalidLead) {
		t.Fatal("expected FieldErrors to match ErrInvalidLead")
	}
}

func TestRequireFields(t *testing.T) {
	if err := (&SubmitLeadRequest{Name: "a", Mobile: "b", Email: "c"}).RequireFields(); err != nil {
		t.Fatalf("expected non-empty fields to pass, got %v", err)
	}
	if err := (&SubmitLeadRequest{Name: "a", Mobile: " ", Email: "c"}).RequireFields(); err != nil {
		t.Fatalf("expected whitespace to count as a value, got %v", err)
	}
	if err := (&SubmitLeadRequest{Name: "a", Email: "c"}).RequireFields(); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}
