package annotate

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"enum-update-generator/internal/analyze"
	"enum-update-generator/internal/match"
	"enum-update-generator/internal/model"
)

// Record directive names.
const (
	directiveForward   = "forward"
	directiveGenerate  = "generate"
	directiveNoSetters = "no_setters"
)

// ErrUnknownField: configuration names a field the record does not declare.
var ErrUnknownField = errors.New("unknown field")

// directiveShape matches a Go directive comment body such as "nolint:revive"
// or "go:generate stringer".
var directiveShape = regexp.MustCompile(`^[a-z0-9]+:\S`)

// Marked reports whether doc carries the generate directive, e.g. "//update:generate".
func Marked(doc []analyze.Comment, opts Options) bool {
	return hasDirective(doc, opts.tagKey(), directiveGenerate)
}

// Annotated reports whether raw uses the annotations at all: a record
// directive under the tag key in its doc comment, or a field tagged with it.
func Annotated(raw *analyze.RawRecord, opts Options) bool {
	for _, c := range raw.Doc {
		if _, _, ok := recordDirective(c.Text, opts.tagKey()); ok {
			return true
		}
	}

	for i := range raw.Fields {
		if _, ok := raw.Fields[i].Tag.Lookup(opts.tagKey()); ok {
			return true
		}
	}

	return false
}

func hasDirective(doc []analyze.Comment, key, directive string) bool {
	for _, c := range doc {
		if name, _, ok := recordDirective(c.Text, key); ok && name == directive {
			return true
		}
	}

	return false
}

// Forwarded returns the directive lines to attach to the union type: every
// "//<key>:forward(...)" in doc, unwrapped, followed by opts.Forward.
func Forwarded(record string, doc []analyze.Comment, opts Options) ([]string, error) {
	var lines []string

	for _, c := range doc {
		name, rest, ok := recordDirective(c.Text, opts.tagKey())
		if !ok || name != directiveForward {
			continue
		}

		line, detail, kind := forwardArg(rest)
		if kind != nil {
			return nil, &Error{Kind: kind, Record: record, Directive: strings.TrimPrefix(c.Text, "//"), Detail: detail, Pos: c.Pos}
		}

		lines = append(lines, line)
	}

	for _, extra := range opts.Forward {
		line, detail, kind := forwardArg("(" + extra + ")")
		if kind != nil {
			return nil, &Error{Kind: kind, Record: record, Directive: extra, Detail: detail}
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// Record extracts the descriptor of one record: forwarded directives first,
// then every field in declaration order. The first error wins.
func Record(raw *analyze.RawRecord, opts Options) (*model.RecordDescriptor, error) {
	for _, name := range slices.Sorted(maps.Keys(opts.FieldDirectives)) {
		if raw.Field(name) == nil {
			return nil, &Error{Kind: ErrUnknownField, Record: raw.Name, Field: name, Detail: match.Hint(name, raw.FieldNames()), Pos: raw.Pos}
		}
	}

	forwarded, err := Forwarded(raw.Name, raw.Doc, opts)
	if err != nil {
		return nil, err
	}

	desc := &model.RecordDescriptor{
		Name:        raw.Name,
		PkgPath:     raw.PkgPath,
		PkgName:     raw.PkgName,
		Exported:    raw.Exported,
		Forwarded:   forwarded,
		TypeParams:  raw.TypeParams,
		SkipSetters: opts.NoSetters || hasDirective(raw.Doc, opts.tagKey(), directiveNoSetters),
		Pos:         raw.Pos,
	}

	for i := range raw.Fields {
		field, err := Field(raw.Name, &raw.Fields[i], opts)
		if err != nil {
			return nil, err
		}

		desc.Fields = append(desc.Fields, field)
	}

	return desc, nil
}

// recordDirective splits "//<key>:name rest" into name and rest.
func recordDirective(text, key string) (string, string, bool) {
	body, ok := strings.CutPrefix(text, "//"+key+":")
	if !ok {
		return "", "", false
	}

	end := strings.IndexFunc(body, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if end < 0 {
		end = len(body)
	}

	return body[:end], body[end:], true
}

// forwardArg unwraps "(body)" into the directive line "//body". On failure it
// returns a detail and the error kind.
func forwardArg(rest string) (string, string, error) {
	if strings.TrimSpace(rest) == "" {
		return "", "missing argument list", ErrEmptyForwardDirective
	}

	if rest[0] != '(' {
		return "", "want a parenthesized directive", ErrUnsupportedForwardShape
	}

	depth := 0
	closing := -1

	for i := range len(rest) {
		switch rest[i] {
		case '(':
			depth++
		case ')':
			depth--
		}

		if depth == 0 {
			closing = i
			break
		}
	}

	if closing < 0 {
		return "", "unbalanced parentheses", ErrUnsupportedForwardShape
	}

	if trailing := strings.TrimSpace(rest[closing+1:]); trailing != "" {
		return "", fmt.Sprintf("unexpected %q after argument list", trailing), ErrUnsupportedForwardShape
	}

	body := strings.TrimSpace(rest[1:closing])
	if body == "" {
		return "", "empty argument list", ErrEmptyForwardDirective
	}

	if !directiveShape.MatchString(body) {
		return "", fmt.Sprintf("%q is not a directive comment", body), ErrUnsupportedForwardShape
	}

	return "//" + body, "", nil
}
