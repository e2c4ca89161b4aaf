package analyze

import (
	"go/token"
	"reflect"

	"enum-update-generator/internal/model"
)

// Comment is one line of a declaration's doc comment.
type Comment struct {
	Text string // Raw text including the leading "//"
	Pos  token.Position
}

// RawField describes a struct field before annotation extraction.
type RawField struct {
	Name   string            // Go field name (type name for embedded fields)
	Type   model.TypeRef     // Rendered type and shape
	Tag    reflect.StructTag // Raw struct tag
	Pos    token.Position    // Field position
	TagPos token.Position    // Tag position, zero when the field has no tag
}

// AnnotationPos returns the position errors about the field's annotations are
// reported at.
func (f *RawField) AnnotationPos() token.Position {
	if f.TagPos.IsValid() {
		return f.TagPos
	}

	return f.Pos
}

// RawRecord describes one struct type declaration.
type RawRecord struct {
	Name       string
	PkgPath    string
	PkgName    string
	Exported   bool
	TypeParams []model.TypeParam
	Fields     []RawField
	Doc        []Comment
	Pos        token.Position
}

// Field returns the field with the given name, or nil.
func (r *RawRecord) Field(name string) *RawField {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i]
		}
	}

	return nil
}

// FieldNames returns the declared field names in order.
func (r *RawRecord) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		names = append(names, f.Name)
	}

	return names
}

// Package holds the records of one loaded package.
type Package struct {
	Path    string // Import path
	Name    string // Package name
	Dir     string // Directory holding the package sources
	Records []*RawRecord
}

// Record returns the record with the given name, or nil.
func (p *Package) Record(name string) *RawRecord {
	for _, r := range p.Records {
		if r.Name == name {
			return r
		}
	}

	return nil
}
