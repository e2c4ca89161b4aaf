package annotate

import (
	"errors"
	"go/token"
	"strings"
)

// Extraction error kinds. Every error returned by this package wraps one of them.
var (
	// ErrMalformedDirective: a group(...) argument is not an identifier, or a
	// directive is syntactically broken.
	ErrMalformedDirective = errors.New("malformed directive")
	// ErrMalformedRename: rename_default(...) does not hold exactly one identifier.
	ErrMalformedRename = errors.New("malformed rename_default")
	// ErrEmptyForwardDirective: the forward marker has a missing or empty argument list.
	ErrEmptyForwardDirective = errors.New("empty forward directive")
	// ErrUnsupportedForwardShape: the forward argument is not a directive comment.
	ErrUnsupportedForwardShape = errors.New("unsupported forward shape")
	// ErrUnknownDirective: a directive name under the tag key is not recognized.
	ErrUnknownDirective = errors.New("unknown directive")
)

// Error reports an extraction failure at the annotation that caused it.
type Error struct {
	Kind      error          // One of the Err* sentinels
	Record    string         // Record name
	Field     string         // Field name, empty for record-level directives
	Directive string         // Offending directive text
	Detail    string         // Optional explanation
	Pos       token.Position // Annotation position, may be invalid
}

// Error returns a formatted message such as
// "state.go:12:20: TestStruct.test: "group(1)": malformed directive: argument "1" is not an identifier".
func (e *Error) Error() string {
	var sb strings.Builder

	if e.Pos.IsValid() {
		sb.WriteString(e.Pos.String())
		sb.WriteString(": ")
	}

	if e.Record != "" {
		sb.WriteString(e.Record)
		if e.Field != "" {
			sb.WriteString(".")
			sb.WriteString(e.Field)
		}

		sb.WriteString(": ")
	}

	sb.WriteString(e.Reason())

	return sb.String()
}

// Reason returns the error without position or subject, e.g.
// `"group(1)": malformed directive: argument "1" is not an identifier`.
func (e *Error) Reason() string {
	var sb strings.Builder

	if e.Directive != "" {
		sb.WriteString(`"` + e.Directive + `": `)
	}

	sb.WriteString(e.Kind.Error())

	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}

	return sb.String()
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Message returns the error without position, for reporters that print the
// position themselves.
func (e *Error) Message() string {
	withoutPos := *e
	withoutPos.Pos = token.Position{}

	return withoutPos.Error()
}
