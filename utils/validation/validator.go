package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	// PasswordMinLength is the minimum password length
	PasswordMinLength = 8

	defaultValidator *Validator
	once             sync.Once

	textPolicy = bluemonday.StrictPolicy()
)

// Errors maps a wire field name to its messages, {"field": ["msg"]}.
type Errors map[string][]string

// Add appends a message for field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Merge copies every message from other into e.
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

// Fields returns the failing field names in order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for f := range e {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, f+": "+strings.Join(e[f], " "))
	}
	return strings.Join(parts, "; ")
}

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance reporting wire field names
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return &Validator{validate: v}
}

// Default returns the shared validator.
func Default() *Validator {
	once.Do(func() { defaultValidator = NewValidator() })
	return defaultValidator
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// Check validates s and returns the field errors, nil when valid.
func (v *Validator) Check(s interface{}) Errors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return FormatValidationErrors(err)
}

// Required reports only the required fields s leaves empty.
func (v *Validator) Required(s interface{}) Errors {
	var validationErrs validator.ValidationErrors
	if !errors.As(v.validate.Struct(s), &validationErrs) {
		return nil
	}
	out := Errors{}
	for _, e := range validationErrs {
		if e.Tag() == "required" || e.Tag() == "required_without" {
			out.Add(e.Field(), "This field is required.")
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FormatValidationErrors converts validation errors to {"field": ["msg"]}
func FormatValidationErrors(err error) Errors {
	out := Errors{}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		out.Add("non_field_errors", err.Error())
		return out
	}

	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "required", "required_without":
			out.Add(field, "This field is required.")
		case "email":
			out.Add(field, "Enter a valid email address.")
		case "max":
			if e.Kind() == reflect.String {
				out.Add(field, fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param()))
			} else {
				out.Add(field, fmt.Sprintf("Ensure this value is less than or equal to %s.", e.Param()))
			}
		case "min":
			if e.Kind() == reflect.String {
				out.Add(field, fmt.Sprintf("Ensure this field has at least %s characters.", e.Param()))
			} else {
				out.Add(field, fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param()))
			}
		case "gte":
			out.Add(field, fmt.Sprintf("Ensure this value is greater than or equal to %s.", e.Param()))
		case "lte":
			out.Add(field, fmt.Sprintf("Ensure this value is less than or equal to %s.", e.Param()))
		case "oneof":
			out.Add(field, fmt.Sprintf("\"%v\" is not a valid choice.", e.Value()))
		case "numeric":
			out.Add(field, "A valid integer is required.")
		default:
			out.Add(field, "Invalid value.")
		}
	}

	return out
}

// ValidatePassword checks if a password meets minimum requirements
func ValidatePassword(password string) (bool, []string) {
	errors := []string{}

	if len(password) < PasswordMinLength {
		errors = append(errors, fmt.Sprintf("This password is too short. It must contain at least %d characters.", PasswordMinLength))
	}

	allDigits := password != ""
	for _, char := range password {
		if char < '0' || char > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		errors = append(errors, "This password is entirely numeric.")
	}

	return len(errors) == 0, errors
}

// SanitizeString removes null bytes and surrounding whitespace
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	return strings.TrimSpace(s)
}

// SanitizeText strips any markup from free text such as observaciones.
func SanitizeText(s string) string {
	return SanitizeString(textPolicy.Sanitize(s))
}
