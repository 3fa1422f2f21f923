package domain

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a user-safe validation failure for a single field. Messages
// never expose internals; they are written for display next to the form
// field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Loose international dial string: optional +, no leading zero, up to 16
// digits total.
var dialStringRegex = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields under their wire (json) names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Phone numbers arrive in whatever shape the caller typed; accept a
	// loose dial string rather than strict E.164.
	_ = v.RegisterValidation("dialstring", func(fl validator.FieldLevel) bool {
		return dialStringRegex.MatchString(fl.Field().String())
	})

	return v
}

// fieldMessages maps "field.tag" to the message shown to the user. Entries
// mirror the copy used by the site's client-side validation so both sides
// tell the user the same thing.
var fieldMessages = map[string]string{
	"name.required": "Name must be at least 2 characters",
	"name.min":      "Name must be at least 2 characters",
	"name.max":      "Name must be less than 100 characters",

	"email.required": "Please enter a valid email address",
	"email.email":    "Please enter a valid email address",

	"address.required": "Please enter a complete address",
	"address.min":      "Please enter a complete address",
	"address.max":      "Address must be less than 200 characters",

	"inquiry.required": "Message must be at least 10 characters",
	"inquiry.min":      "Message must be at least 10 characters",
	"inquiry.max":      "Message must be less than 1000 characters",

	"phone.dialstring": "Please enter a valid phone number",

	"pickupAddress.required": "Please enter a complete pickup address",
	"pickupAddress.min":      "Please enter a complete pickup address",
	"pickupAddress.max":      "Address must be less than 200 characters",

	"dropOffAddress.max": "Address must be less than 200 characters",

	"description.required": "Please describe what you need",
	"description.min":      "Please describe what you need",
	"description.max":      "Description must be less than 1000 characters",

	"preferredDate.max": "Preferred date must be less than 100 characters",

	"serviceType.required": "Please select a service type",
	"serviceType.oneof":    "Please select a valid service type",

	"question.required": "Question must be at least 10 characters",
	"question.min":      "Question must be at least 10 characters",
	"question.max":      "Question must be less than 500 characters",

	"turnstileToken.required": "Please complete the security check",

	"pageSource.max": "Page source must be less than 200 characters",
}

// validateStruct runs the schema checks for one submission and converts
// validator failures into user-safe field errors.
func validateStruct(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "form", Message: "Invalid form data"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
