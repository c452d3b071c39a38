package leads

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field error messages shown next to each input.
const (
	MsgNameTooShort = "Name must be at least 2 characters."
	MsgMobileLength = "Please enter a valid mobile number."
	MsgEmailInvalid = "Please enter a valid email address."
)

var fieldMessages = map[string]string{
	"name":   MsgNameTooShort,
	"mobile": MsgMobileLength,
	"email":  MsgEmailInvalid,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors maps a JSON field name to its user-facing message.
type FieldErrors map[string]string

// Error implements error with fields in a stable order.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrInvalidLead.
func (fe FieldErrors) Unwrap() error { return ErrInvalidLead }

// Validate checks a submission against the form schema: name at least 2
// characters, mobile at least 10 characters, email well-formed. It returns
// nil when the request is valid.
func Validate(req SubmitLeadRequest) FieldErrors {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := fieldMessages[field]
		if !ok {
			msg = fmt.Sprintf("%s failed %s", field, fe.Tag())
		}
		out[field] = msg
	}
	return out
}
