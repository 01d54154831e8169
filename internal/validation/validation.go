package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Error codes carried by ValidationError.
const (
	CodeMissingField    = "missing_field"
	CodeConsentRequired = "consent_required"
	CodeTooLong         = "too_long"
	CodeInvalid         = "invalid"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements error.
func (e ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// MissingField reports a required field left empty.
func MissingField(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Code:    CodeMissingField,
		Message: "is required",
	}
}

// ConsentRequired reports an unchecked consent control.
func ConsentRequired(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Code:    CodeConsentRequired,
		Message: "must be accepted",
	}
}

// Collector accumulates validation errors without failing on first.
type Collector struct {
	errors []ValidationError
}

// Add appends a validation error to the collector if non-nil.
func (c *Collector) Add(err *ValidationError) {
	if err != nil {
		c.errors = append(c.errors, *err)
	}
}

// HasErrors returns true if the collector has accumulated any errors.
func (c *Collector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns all accumulated validation errors.
func (c *Collector) Errors() []ValidationError {
	return c.errors
}

// ValidateUTF8 returns an error if the value is not valid UTF-8.
func ValidateUTF8(field, value string) *ValidationError {
	if !utf8.ValidString(value) {
		return &ValidationError{
			Field:   field,
			Code:    CodeInvalid,
			Message: "must be valid UTF-8",
		}
	}
	return nil
}

// ValidateNoNullBytes returns an error if the value contains null bytes.
func ValidateNoNullBytes(field, value string) *ValidationError {
	if strings.Contains(value, "\x00") {
		return &ValidationError{
			Field:   field,
			Code:    CodeInvalid,
			Message: "must not contain null bytes",
		}
	}
	return nil
}

// ValidateMaxLength returns an error if the value exceeds max runes.
func ValidateMaxLength(field, value string, max int) *ValidationError {
	if utf8.RuneCountInString(value) > max {
		return &ValidationError{
			Field:   field,
			Code:    CodeTooLong,
			Message: fmt.Sprintf("exceeds maximum length of %d characters", max),
		}
	}
	return nil
}

// ValidateULID returns an error if the value is not a valid ULID format.
// ULIDs are 26 characters using Crockford Base32 (excludes I, L, O, U).
func ValidateULID(field, value string) *ValidationError {
	if len(value) != 26 {
		return &ValidationError{
			Field:   field,
			Code:    CodeInvalid,
			Message: "must be a valid ULID (26 characters)",
		}
	}

	const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	for _, r := range value {
		upper := strings.ToUpper(string(r))
		if !strings.Contains(crockfordBase32, upper) {
			return &ValidationError{
				Field:   field,
				Code:    CodeInvalid,
				Message: "must be a valid ULID (invalid character)",
			}
		}
	}
	return nil
}

// ValidateRequired returns an error if the value is empty or whitespace-only.
func ValidateRequired(field, value string) *ValidationError {
	if strings.TrimSpace(value) == "" {
		return MissingField(field)
	}
	return nil
}

// ValidateConsent returns an error if a consent checkbox is not checked.
func ValidateConsent(field string, checked bool) *ValidationError {
	if !checked {
		return ConsentRequired(field)
	}
	return nil
}
