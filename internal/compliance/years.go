package compliance

import (
	"fmt"
	"strings"
)

// FieldError is a single field-level validation failure, rendered inline
// next to the offending field by API and CLI consumers.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateYears checks the free-text compliance year(s) field: it must be
// a single 4-digit year or a comma-separated list of 4-digit years. An
// empty value is valid (the field is optional). Returns the list of
// field-level errors; an empty list means valid.
func ValidateYears(text string) []FieldError {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var errs []FieldError
	for _, part := range strings.Split(text, ",") {
		year := strings.TrimSpace(part)
		if !isFourDigitYear(year) {
			errs = append(errs, FieldError{
				Field:   "complianceYears",
				Message: fmt.Sprintf("%q is not a 4-digit year", year),
			})
		}
	}
	return errs
}

// YearCountHint reports an advisory mismatch between the number of years
// entered and the number the frequency spans. The count rule is a UI hint
// only, never a hard validation failure; the empty string means no hint.
func YearCountHint(f Frequency, text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if len(ValidateYears(text)) > 0 {
		return ""
	}

	entered := len(strings.Split(text, ","))
	expected := f.YearCount()
	if entered == expected {
		return ""
	}
	return fmt.Sprintf("frequency %q usually covers %d year(s), %d entered", f, expected, entered)
}

func isFourDigitYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
