package annotate

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enum-update-generator/internal/analyze"
)

func docLines(lines ...string) []analyze.Comment {
	comments := make([]analyze.Comment, 0, len(lines))
	for i, line := range lines {
		comments = append(comments, analyze.Comment{Text: line, Pos: token.Position{Filename: "state.go", Line: i + 1, Column: 1}})
	}

	return comments
}

func TestForwarded(t *testing.T) {
	doc := docLines(
		"// State is shared between workers.",
		"//",
		"//update:generate",
		"//update:forward(nolint:revive)",
		"//update:forward( go:generate stringer -type=(Kind) )",
		"//other:forward()",
		"//update:forwarding(nolint:all)",
	)

	lines, err := Forwarded("State", doc, Options{Forward: []string{"lint:ignore U1000"}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"//nolint:revive",
		"//go:generate stringer -type=(Kind)",
		"//lint:ignore U1000",
	}, lines)

	assert.True(t, Marked(doc, Options{}))
	assert.False(t, Marked(docLines("// update:generate"), Options{}))
	assert.True(t, Marked(docLines("//enum:generate"), Options{TagKey: "enum"}))
}

func TestForwarded_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind error
	}{
		{name: "missing list", line: "//update:forward", kind: ErrEmptyForwardDirective},
		{name: "empty list", line: "//update:forward()", kind: ErrEmptyForwardDirective},
		{name: "blank list", line: "//update:forward(  )", kind: ErrEmptyForwardDirective},
		{name: "not parenthesized", line: "//update:forward nolint:revive", kind: ErrUnsupportedForwardShape},
		{name: "not a directive", line: "//update:forward(Debug)", kind: ErrUnsupportedForwardShape},
		{name: "trailing text", line: "//update:forward(nolint:revive) extra", kind: ErrUnsupportedForwardShape},
		{name: "unbalanced", line: "//update:forward(nolint:revive", kind: ErrUnsupportedForwardShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Forwarded("State", docLines("// State.", tt.line), Options{})
			require.ErrorIs(t, err, tt.kind)

			var extractErr *Error
			require.ErrorAs(t, err, &extractErr)
			assert.Equal(t, 2, extractErr.Pos.Line, "reported at the directive")
			assert.Empty(t, extractErr.Field)
		})
	}

	_, err := Forwarded("State", nil, Options{Forward: []string{""}})
	require.ErrorIs(t, err, ErrEmptyForwardDirective)
}

func TestRecord(t *testing.T) {
	raw := &analyze.RawRecord{
		Name:     "TestStruct",
		PkgPath:  "example/basic",
		PkgName:  "basic",
		Exported: true,
		Doc:      docLines("//update:forward(nolint:revive)"),
		Fields: []analyze.RawField{
			*rawField("test", `update:"group(UpdateBoth)"`),
			*rawField("test2", `update:"group(UpdateBoth)"`),
		},
	}

	desc, err := Record(raw, Options{})
	require.NoError(t, err)

	assert.Equal(t, "TestStruct", desc.Name)
	assert.Equal(t, "TestStructUpdate", desc.UnionName())
	assert.Equal(t, []string{"//nolint:revive"}, desc.Forwarded)
	require.Len(t, desc.Fields, 2)
	assert.Equal(t, []string{"UpdateBoth", "test"}, desc.Fields[0].Groups())
	assert.Equal(t, []string{"UpdateBoth", "test2"}, desc.Fields[1].Groups())
}

func TestRecord_FirstErrorWins(t *testing.T) {
	raw := &analyze.RawRecord{
		Name: "State",
		Fields: []analyze.RawField{
			*rawField("a", `update:"rename_default()"`),
			*rawField("b", `update:"group(1)"`),
		},
	}

	desc, err := Record(raw, Options{})
	require.ErrorIs(t, err, ErrMalformedRename)
	assert.Nil(t, desc)

	raw.Doc = docLines("//update:forward()")
	_, err = Record(raw, Options{})
	require.ErrorIs(t, err, ErrEmptyForwardDirective, "record directives are checked before fields")
}

func TestRecord_UnknownOverrideField(t *testing.T) {
	raw := &analyze.RawRecord{Name: "State", Fields: []analyze.RawField{*rawField("members", ""), *rawField("leader", "")}}

	_, err := Record(raw, Options{FieldDirectives: map[string]string{"missing": "group(A)"}})
	require.ErrorIs(t, err, ErrUnknownField)

	var extractErr *Error
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "missing", extractErr.Field)
	assert.Empty(t, extractErr.Detail)

	_, err = Record(raw, Options{FieldDirectives: map[string]string{"member": "group(A)", "leader": "group(A)"}})
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "member", extractErr.Field)
	assert.Equal(t, `did you mean "members"?`, extractErr.Detail)
}

func TestAnnotated(t *testing.T) {
	plain := &analyze.RawRecord{Name: "Options", Fields: []analyze.RawField{*rawField("Apply", `json:"apply"`)}}
	assert.False(t, Annotated(plain, Options{}))

	tagged := &analyze.RawRecord{Name: "State", Fields: []analyze.RawField{*rawField("a", `update:""`)}}
	assert.True(t, Annotated(tagged, Options{}))
	assert.False(t, Annotated(tagged, Options{TagKey: "enum"}))

	marked := &analyze.RawRecord{Name: "State", Doc: docLines("// State.", "//update:generate")}
	assert.True(t, Annotated(marked, Options{}))

	forwarded := &analyze.RawRecord{Name: "State", Doc: docLines("//update:forward(nolint:revive)")}
	assert.True(t, Annotated(forwarded, Options{}))
}

func TestRecord_NoSetters(t *testing.T) {
	raw := &analyze.RawRecord{Name: "State", Fields: []analyze.RawField{*rawField("a", "")}}

	desc, err := Record(raw, Options{})
	require.NoError(t, err)
	assert.False(t, desc.SkipSetters)

	desc, err = Record(raw, Options{NoSetters: true})
	require.NoError(t, err)
	assert.True(t, desc.SkipSetters)

	raw.Doc = docLines("//update:generate", "//update:no_setters")
	desc, err = Record(raw, Options{})
	require.NoError(t, err)
	assert.True(t, desc.SkipSetters)
	assert.Empty(t, desc.Forwarded)
}
