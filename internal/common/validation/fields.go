// Package validation provides field-level validation primitives shared by
// the wizard flows and the payload schema guard used at submission time.
package validation

import (
	"fmt"
	"regexp"
	"sort"
)

// FieldErrors maps a wire field name to a human-readable blocking message.
// Presence of any entry for a step's fields blocks advancement.
type FieldErrors map[string]string

// Has reports whether the field currently carries a blocking error.
func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Clear removes the error for a single field, if any.
func (fe FieldErrors) Clear(field string) {
	delete(fe, field)
}

// Messages returns "field: message" lines in a stable order, for logs.
func (fe FieldErrors) Messages() []string {
	out := make([]string, 0, len(fe))
	for field, msg := range fe {
		out = append(out, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(out)
	return out
}

// Result is the outcome of a single validation pass. Errors block
// advancement; Alerts are advisory only and are fully replaced on every
// pass, never merged.
type Result struct {
	Valid  bool
	Errors FieldErrors
	Alerts []string
}

// NewResult builds a Result from collected errors and alerts.
func NewResult(errs FieldErrors, alerts []string) Result {
	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
		Alerts: alerts,
	}
}

// Merge folds another result into this one. Used by whole-form validation to
// accumulate per-step passes.
func (r Result) Merge(other Result) Result {
	merged := FieldErrors{}
	for k, v := range r.Errors {
		merged[k] = v
	}
	for k, v := range other.Errors {
		merged[k] = v
	}
	alerts := append(append([]string{}, r.Alerts...), other.Alerts...)
	return NewResult(merged, alerts)
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail validates email format.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
