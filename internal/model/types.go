package model

import (
	"go/token"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// UnionSuffix is appended to the record name to form the union type name.
const UnionSuffix = "Update"

// Import is a package referenced by a rendered type expression.
type Import struct {
	Path string
	Name string
}

// TypeRef is an opaque description of a field type.
type TypeRef struct {
	Expr    string   // Type expression as written in the record's package, e.g. "[]time.Time"
	Imports []Import // Packages referenced by Expr
	Shape   Shape    // Duplication class
	Copy    CopyKind // Duplication expression for owned values
}

// IsExclusive reports whether values of this type cannot be duplicated.
func (t TypeRef) IsExclusive() bool {
	return t.Shape == ShapeExclusive
}

// FieldDescriptor describes one declared field after annotation extraction.
type FieldDescriptor struct {
	Name           string
	Type           TypeRef
	ExplicitGroups []string // Ordered set of groups from group directives
	DefaultGroup   string   // Default group name, valid when HasDefault is set
	HasDefault     bool
	Pos            token.Position // Location of the field (or its annotation)
}

// Groups returns every group the field belongs to: the explicit groups in
// declaration order followed by the default group, without duplicates.
func (f *FieldDescriptor) Groups() []string {
	groups := slices.Clone(f.ExplicitGroups)
	if f.HasDefault && !slices.Contains(groups, f.DefaultGroup) {
		groups = append(groups, f.DefaultGroup)
	}

	return groups
}

// TypeParam is one type parameter of a generic record.
type TypeParam struct {
	Name       string
	Constraint string
	Imports    []Import // Packages referenced by Constraint
}

// RecordDescriptor is the annotated struct the union is derived from.
type RecordDescriptor struct {
	Name       string
	PkgPath    string
	PkgName    string
	Exported   bool
	Fields     []FieldDescriptor
	Forwarded  []string // Directive lines attached verbatim to the union type
	TypeParams []TypeParam
	// SkipSetters disables the Modify methods; the union and Apply are
	// still generated.
	SkipSetters bool
	Pos         token.Position
}

// UnionName returns the name of the generated union type.
func (r *RecordDescriptor) UnionName() string {
	return r.Name + UnionSuffix
}

// IsGeneric reports whether the record declares type parameters.
func (r *RecordDescriptor) IsGeneric() bool {
	return len(r.TypeParams) > 0
}

// TypeParamsDecl renders the type parameter list for a declaration,
// e.g. "[K comparable, V any]". It is empty for non-generic records.
func (r *RecordDescriptor) TypeParamsDecl() string {
	if !r.IsGeneric() {
		return ""
	}

	parts := make([]string, 0, len(r.TypeParams))
	for _, tp := range r.TypeParams {
		parts = append(parts, tp.Name+" "+tp.Constraint)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// TypeArgs renders the type argument list used to instantiate the record's
// generic types with its own parameters, e.g. "[K, V]".
func (r *RecordDescriptor) TypeArgs() string {
	if !r.IsGeneric() {
		return ""
	}

	names := make([]string, 0, len(r.TypeParams))
	for _, tp := range r.TypeParams {
		names = append(names, tp.Name)
	}

	return "[" + strings.Join(names, ", ") + "]"
}

// Member is one field inside a group.
type Member struct {
	Field string
	Type  TypeRef
}

// GroupDescriptor is a named collection of fields that change together.
type GroupDescriptor struct {
	Name    string
	Members []Member
}

// VariantName returns the title-cased group name used for the union variant.
func (g *GroupDescriptor) VariantName() string {
	return TitleCase(g.Name)
}

// HasExclusiveMember reports whether any member cannot be duplicated.
func (g *GroupDescriptor) HasExclusiveMember() bool {
	return slices.ContainsFunc(g.Members, func(m Member) bool { return m.Type.IsExclusive() })
}

// TitleCase converts a snake_case identifier such as "managed_by_first" to
// "ManagedByFirst". Other names keep their capitalization apart from the first
// rune, so "userID" becomes "UserID".
func TitleCase(name string) string {
	if strings.Contains(name, "_") {
		return strcase.ToCamel(name)
	}

	first, size := utf8.DecodeRuneInString(name)
	if first == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(first)) + name[size:]
}

// SnakeCase converts an identifier such as "UpdateBoth" to "update_both".
func SnakeCase(name string) string {
	return strcase.ToSnake(name)
}
