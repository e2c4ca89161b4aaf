package annotate

import (
	"fmt"
	"go/token"
	"slices"

	"enum-update-generator/internal/analyze"
	"enum-update-generator/internal/match"
	"enum-update-generator/internal/model"
)

// DefaultTagKey is the struct tag key and doc directive prefix used when
// Options.TagKey is empty.
const DefaultTagKey = "update"

// Field directive names.
const (
	directiveGroup    = "group"
	directiveSuppress = "suppress_default"
	directiveRename   = "rename_default"
)

const blankField = "_"

var directiveNames = []string{directiveGroup, directiveSuppress, directiveRename}

// Options tune extraction for one record.
type Options struct {
	// TagKey is the struct tag key and doc directive prefix.
	TagKey string
	// FieldDirectives holds extra directives per field name. They are applied
	// after the field's own tag, with the same syntax.
	FieldDirectives map[string]string
	// Forward holds extra directive lines forwarded to the union type, after
	// the ones found in the doc comment.
	Forward []string
	// NoSetters disables the Modify methods, like the no_setters directive.
	NoSetters bool
}

func (o Options) tagKey() string {
	if o.TagKey == "" {
		return DefaultTagKey
	}

	return o.TagKey
}

// Field extracts the group memberships of one field.
//
// Directives are folded left to right: group adds memberships, suppress_default
// clears the default group and rename_default sets it, so a later rename
// revives a suppressed default. The default group that survives is appended
// after the explicit groups.
//
// Blank fields cannot be assigned: they belong to no group, and a directive
// placing one in a group is an error.
func Field(record string, raw *analyze.RawField, opts Options) (model.FieldDescriptor, error) {
	desc := model.FieldDescriptor{
		Name:         raw.Name,
		Type:         raw.Type,
		DefaultGroup: raw.Name,
		HasDefault:   true,
		Pos:          raw.AnnotationPos(),
	}

	sources := []struct {
		value string
		pos   token.Position
	}{
		{raw.Tag.Get(opts.tagKey()), raw.AnnotationPos()},
		{opts.FieldDirectives[raw.Name], token.Position{}},
	}

	for _, src := range sources {
		fail := func(kind error, text, detail string) error {
			return &Error{Kind: kind, Record: record, Field: raw.Name, Directive: text, Detail: detail, Pos: src.pos}
		}

		parts, err := splitDirectives(src.value)
		if err != nil {
			return desc, fail(ErrMalformedDirective, src.value, err.Error())
		}

		for _, part := range parts {
			d, err := parseDirective(part)
			if err != nil {
				kind := ErrMalformedDirective
				if d.name == directiveRename {
					kind = ErrMalformedRename
				}

				return desc, fail(kind, part, err.Error())
			}

			switch d.name {
			case directiveGroup:
				groups, detail := groupArgs(raw.Name, d)
				if detail != "" {
					return desc, fail(ErrMalformedDirective, part, detail)
				}

				for _, g := range groups {
					if !slices.Contains(desc.ExplicitGroups, g) {
						desc.ExplicitGroups = append(desc.ExplicitGroups, g)
					}
				}

			case directiveSuppress:
				if d.hasArgs {
					return desc, fail(ErrMalformedDirective, part, "suppress_default takes no arguments")
				}

				desc.HasDefault = false
				desc.DefaultGroup = ""

			case directiveRename:
				if len(d.args) != 1 || !token.IsIdentifier(d.args[0]) {
					return desc, fail(ErrMalformedRename, part, "want exactly one identifier")
				}

				desc.HasDefault = true
				desc.DefaultGroup = d.args[0]

			default:
				return desc, fail(ErrUnknownDirective, part, match.Hint(d.name, directiveNames))
			}
		}
	}

	if raw.Name == blankField {
		if len(desc.ExplicitGroups) > 0 || desc.HasDefault && desc.DefaultGroup != blankField {
			return desc, &Error{
				Kind:   ErrMalformedDirective,
				Record: record,
				Field:  raw.Name,
				Detail: "a blank field cannot belong to a group",
				Pos:    raw.AnnotationPos(),
			}
		}

		desc.HasDefault = false
		desc.DefaultGroup = ""
	}

	return desc, nil
}

// groupArgs returns the groups named by a group directive, or a non-empty
// detail describing why the directive is malformed.
func groupArgs(field string, d directive) ([]string, string) {
	if !d.hasArgs {
		return []string{field}, ""
	}

	if len(d.args) == 0 {
		return nil, "empty group list"
	}

	for _, arg := range d.args {
		if !token.IsIdentifier(arg) {
			return nil, fmt.Sprintf("argument %q is not an identifier", arg)
		}
	}

	return d.args, ""
}
