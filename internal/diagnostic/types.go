package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"enum-update-generator/internal/common"
)

// Diagnostic codes.
const (
	CodeSetterOmitted  = "setter-omitted"
	CodeUngroupedField = "ungrouped-field"
	CodeBlankField     = "blank-field"
	CodeNoGroups       = "no-groups"
	CodeRecordFailed   = "record-failed"
	CodeStaleFile      = "stale-file"
)

// Diagnostics holds all diagnostic information from synthesis.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Record names the struct this relates to (if any).
	Record string
	// Field names the field or group this relates to (if any).
	Field string
	// Pos locates the finding in source when known.
	Pos token.Position
	// Err is the underlying error of an error diagnostic, if any.
	Err error
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, record, field string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Record:   record,
		Field:    field,
	})
}

// Add appends a prepared diagnostic to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Error joins the error diagnostics into one error, or returns nil when there
// are none. Diagnostics carrying Err contribute it unchanged, so errors.Is
// sees the original kinds.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		if e.Err != nil {
			errs = append(errs, e.Err)
		} else {
			errs = append(errs, errors.New(e.String()))
		}
	}

	return errors.Join(errs...)
}

// Subject returns "Record.Field", "Record" or "" depending on what is set.
func (d Diagnostic) Subject() string {
	switch {
	case d.Record != "" && d.Field != "":
		return d.Record + "." + d.Field
	case d.Record != "":
		return d.Record
	default:
		return d.Field
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos.IsValid() {
		prefix = append(prefix, d.Pos.String()+":")
	}

	if subject := d.Subject(); subject != "" {
		prefix = append(prefix, subject)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
