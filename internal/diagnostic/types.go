package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Severity tells whether a diagnostic makes a document unusable.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is one problem found in a settings document.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of problem, e.g. "type_not_found".
	Code    string
	Message string
	// Subject names the entry at fault, such as a type name.
	Subject string
	// FieldPath is the document key, e.g. "ignored_members[0].names[1]".
	FieldPath string
	// Suggestions are names the user may have meant.
	Suggestions []string
}

// Diagnostics collects every problem of a document.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// AddError records an error.
func (d *Diagnostics) AddError(code, message, subject, fieldPath string) {
	d.AddSuggestedError(code, message, subject, fieldPath, nil)
}

// AddSuggestedError records an error with alternatives the user may have meant.
func (d *Diagnostics) AddSuggestedError(code, message, subject, fieldPath string, suggestions []string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:    SeverityError,
		Code:        code,
		Message:     message,
		Subject:     subject,
		FieldPath:   fieldPath,
		Suggestions: suggestions,
	})
}

// AddWarning records a problem that does not stop the document from being used.
func (d *Diagnostics) AddWarning(code, message, subject, fieldPath string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:  SeverityWarning,
		Code:      code,
		Message:   message,
		Subject:   subject,
		FieldPath: fieldPath,
	})
}

// All returns the errors followed by the warnings.
func (d *Diagnostics) All() []Diagnostic {
	return append(append([]Diagnostic(nil), d.Errors...), d.Warnings...)
}

// IsValid reports whether no error was recorded.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error joins the errors into one, or returns nil when d is valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String renders "[subject] path: [code] message (did you mean a, b?)".
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.Subject != "" {
		sb.WriteString("[" + d.Subject + "]")
	}

	if d.FieldPath != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(d.FieldPath)
	}

	if sb.Len() > 0 {
		sb.WriteString(": ")
	}

	if d.Code != "" {
		sb.WriteString("[" + d.Code + "] ")
	}

	sb.WriteString(d.Message)

	if len(d.Suggestions) > 0 {
		sb.WriteString(" (did you mean " + strings.Join(d.Suggestions, ", ") + "?)")
	}

	return sb.String()
}
