package shared

import (
	"fmt"
	"strings"
)

// FieldViolation describes a single invariant violation scoped to a field.
// The field path uses bracket notation for collections, e.g. "items[2].taxAmount".
type FieldViolation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors is a collection of field violations returned as one error.
// Validation never stops at the first mismatch; callers receive the full list.
type ValidationErrors []FieldViolation

// Error implements the error interface
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(v))
	for i, violation := range v {
		parts[i] = fmt.Sprintf("%s: %s", violation.Field, violation.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasViolations returns true if at least one violation was collected
func (v ValidationErrors) HasViolations() bool {
	return len(v) > 0
}

// Add appends a violation to the collection
func (v *ValidationErrors) Add(field, code, message string) {
	*v = append(*v, FieldViolation{Field: field, Code: code, Message: message})
}

// AsError returns the collection as an error, or nil when empty.
// This keeps the all-or-nothing contract: a non-nil result means nothing
// may be persisted.
func (v ValidationErrors) AsError() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
