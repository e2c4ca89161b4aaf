package annotate

import (
	"errors"
	"go/token"
	"strings"
)

// directive is one parsed field directive such as "group(A, B)".
type directive struct {
	name    string
	args    []string
	hasArgs bool // written with parentheses, possibly empty
	text    string
}

var errUnbalanced = errors.New("unbalanced parentheses")

// splitDirectives splits a tag value on semicolons outside parentheses.
// Empty entries are dropped.
func splitDirectives(value string) ([]string, error) {
	var (
		parts []string
		depth int
		start int
	)

	for i := range len(value) {
		switch value[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errUnbalanced
			}
		case ';':
			if depth == 0 {
				parts = appendPart(parts, value[start:i])
				start = i + 1
			}
		}
	}

	if depth != 0 {
		return nil, errUnbalanced
	}

	return appendPart(parts, value[start:]), nil
}

func appendPart(parts []string, part string) []string {
	if part = strings.TrimSpace(part); part != "" {
		parts = append(parts, part)
	}

	return parts
}

// parseDirective parses "name" or "name(arg, arg)". Arguments are returned
// trimmed but otherwise unchecked.
func parseDirective(text string) (directive, error) {
	d := directive{text: text}

	open := strings.IndexByte(text, '(')
	if open < 0 {
		d.name = text
		if !token.IsIdentifier(d.name) {
			return d, errors.New("invalid directive name")
		}

		return d, nil
	}

	d.name = strings.TrimSpace(text[:open])
	if !token.IsIdentifier(d.name) {
		return d, errors.New("invalid directive name")
	}

	if !strings.HasSuffix(text, ")") {
		return d, errors.New("text after closing parenthesis")
	}

	inner := text[open+1 : len(text)-1]
	if strings.ContainsAny(inner, "()") {
		return d, errors.New("nested parentheses")
	}

	d.hasArgs = true
	if strings.TrimSpace(inner) == "" {
		return d, nil
	}

	for _, arg := range strings.Split(inner, ",") {
		d.args = append(d.args, strings.TrimSpace(arg))
	}

	return d, nil
}
