package gen

import (
	"errors"
	"fmt"

	"enum-update-generator/internal/diagnostic"
	"enum-update-generator/internal/model"
)

// Generated method names.
const (
	ApplyMethod  = "Apply"
	SetterPrefix = "Modify"
)

var (
	// ErrVariantCollision: two groups map to the same variant name.
	ErrVariantCollision = errors.New("variant name collision")
	// ErrNameConflict: a generated method would clash with a record field.
	ErrNameConflict = errors.New("generated name conflicts with field")
)

// Options controls synthesis.
type Options struct {
	// Runtime is the import path of the enumupdate package. Empty disables
	// the Applier assertion.
	Runtime string
}

// Artifacts are the declarations generated for one record.
type Artifacts struct {
	Record  *model.RecordDescriptor
	Union   *Union
	Apply   *Apply
	Setters []Setter
	Imports []importSpec
}

// Union is the sealed update interface and its variants.
type Union struct {
	Name       string
	Marker     string   // Unexported method sealing the interface
	TypeParams string   // Declaration list, e.g. "[K comparable, V any]"
	TypeArgs   string   // Instantiation list, e.g. "[K, V]"
	Forwarded  []string // Directive lines placed above the interface
	Variants   []Variant
}

// Variant is one member of the union: the fields of one group.
type Variant struct {
	Name   string // Type name, e.g. "TestStructUpdateUpdateBoth"
	Group  string // Group name as declared
	Fields []VariantField
	// Pointer is set when a field holds a lock: the variant implements the
	// union by pointer and Apply leaves that field alone.
	Pointer bool
}

// VariantField is a field of a variant struct.
type VariantField struct {
	Name      string
	Type      string
	Exclusive bool
}

// Apply is the method applying an update to the record.
type Apply struct {
	Receiver string
	Record   string // Record type with type arguments, e.g. "Pair[K, V]"
	Union    string // Union type with type arguments
	Arms     []Arm
	// Assertion is the Applier check, empty when disabled.
	Assertion string
}

// Arm is one case of the Apply type switch.
type Arm struct {
	Variant string // Variant type with type arguments
	Fields  []string
}

// Setter is a Modify method for one group.
type Setter struct {
	Name     string
	Receiver string
	Record   string
	Union    string
	Variant  string // Variant type with type arguments
	Params   []Param
}

// Param is one setter parameter.
type Param struct {
	Name  string
	Type  string
	Field string
	Dup   string // Expression stored into the record
}

// Synthesize derives every artifact of rec from its groups.
func Synthesize(rec *model.RecordDescriptor, groups []model.GroupDescriptor, opts Options) (*Artifacts, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	union, err := SynthesizeUnion(rec, groups)
	if err != nil {
		return nil, diags, err
	}

	if err := checkMethodNames(rec, union); err != nil {
		return nil, diags, err
	}

	receiver := receiverName(rec)

	imports := newImportSet(rec, opts)
	imports.addRecordImports(rec)

	// Generic types cannot be asserted without instantiation.
	var runtime string
	if opts.Runtime != "" && !rec.IsGeneric() && opts.Runtime != rec.PkgPath {
		runtime = imports.use(model.Import{Path: opts.Runtime, Name: runtimeName(opts.Runtime)})
	}

	a := &Artifacts{
		Record: rec,
		Union:  union,
		Apply:  SynthesizeApply(rec, union, receiver, runtime),
	}

	if !rec.SkipSetters {
		a.Setters = SynthesizeSetters(rec, union, groups, receiver, imports.use, &diags)
	}

	a.Imports = imports.specs()

	for i := range rec.Fields {
		field := &rec.Fields[i]

		switch {
		case field.Name == blankName:
			diags.Add(diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticInfo,
				Code:     diagnostic.CodeBlankField,
				Message:  "blank field cannot be updated and is skipped",
				Record:   rec.Name,
				Field:    field.Name,
				Pos:      field.Pos,
			})
		case len(field.Groups()) == 0:
			diags.Add(diagnostic.Diagnostic{
				Severity: diagnostic.DiagnosticInfo,
				Code:     diagnostic.CodeUngroupedField,
				Message:  "field belongs to no group and is excluded from every update",
				Record:   rec.Name,
				Field:    field.Name,
				Pos:      field.Pos,
			})
		}
	}

	if len(groups) == 0 {
		diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticWarning,
			Code:     diagnostic.CodeNoGroups,
			Message:  "record has no groups; the union has no variants",
			Record:   rec.Name,
			Pos:      rec.Pos,
		})
	}

	return a, diags, nil
}

// SynthesizeUnion builds the union interface and one variant per group, in
// group order. Type parameters are carried on the interface and every variant.
func SynthesizeUnion(rec *model.RecordDescriptor, groups []model.GroupDescriptor) (*Union, error) {
	union := &Union{
		Name:       rec.UnionName(),
		Marker:     "is" + rec.UnionName(),
		TypeParams: rec.TypeParamsDecl(),
		TypeArgs:   rec.TypeArgs(),
		Forwarded:  rec.Forwarded,
	}

	seen := make(map[string]string, len(groups))

	for i := range groups {
		g := &groups[i]

		name := g.VariantName()
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("%s: groups %q and %q both produce %s: %w",
				rec.Name, prev, g.Name, union.Name+name, ErrVariantCollision)
		}

		seen[name] = g.Name

		variant := Variant{Name: union.Name + name, Group: g.Name, Pointer: g.HasExclusiveMember()}
		for _, m := range g.Members {
			variant.Fields = append(variant.Fields, VariantField{
				Name:      m.Field,
				Type:      m.Type.Expr,
				Exclusive: m.Type.IsExclusive(),
			})
		}

		union.Variants = append(union.Variants, variant)
	}

	return union, nil
}

// SynthesizeApply builds the Apply method: one arm per variant assigning its
// fields in member order. Lock fields are never assigned. runtime qualifies
// the enumupdate package; empty omits the Applier assertion.
func SynthesizeApply(rec *model.RecordDescriptor, union *Union, receiver, runtime string) *Apply {
	apply := &Apply{
		Receiver: receiver,
		Record:   rec.Name + union.TypeArgs,
		Union:    union.Name + union.TypeArgs,
	}

	for _, v := range union.Variants {
		arm := Arm{Variant: v.Name + union.TypeArgs}
		if v.Pointer {
			arm.Variant = "*" + arm.Variant
		}

		for _, f := range v.Fields {
			if !f.Exclusive {
				arm.Fields = append(arm.Fields, f.Name)
			}
		}

		apply.Arms = append(apply.Arms, arm)
	}

	if runtime != "" {
		apply.Assertion = fmt.Sprintf("var _ %s.Applier[%s] = (*%s)(nil)", runtime, union.Name, rec.Name)
	}

	return apply
}

// SynthesizeSetters builds one Modify method per group. Groups holding a
// member that cannot be duplicated get none; an info diagnostic records it.
// qualify returns the name a package is imported under.
func SynthesizeSetters(
	rec *model.RecordDescriptor,
	union *Union,
	groups []model.GroupDescriptor,
	receiver string,
	qualify func(model.Import) string,
	diags *diagnostic.Diagnostics,
) []Setter {
	var setters []Setter

	for i := range groups {
		g := &groups[i]

		if g.HasExclusiveMember() {
			diags.AddInfo(diagnostic.CodeSetterOmitted,
				fmt.Sprintf("no %s%s: group holds a value that cannot be duplicated", SetterPrefix, g.VariantName()),
				rec.Name, g.Name)

			continue
		}

		variant := union.Variants[i]
		setter := Setter{
			Name:     SetterPrefix + g.VariantName(),
			Receiver: receiver,
			Record:   rec.Name + union.TypeArgs,
			Union:    union.Name + union.TypeArgs,
			Variant:  variant.Name + union.TypeArgs,
		}

		pkgs := make([]string, len(g.Members))
		for j, m := range g.Members {
			if pkg := m.Type.Copy.CopyImport(); pkg != "" && m.Type.Shape == model.ShapeOwned {
				pkgs[j] = qualify(model.Import{Path: pkg, Name: pkg})
			}
		}

		names := paramNames(rec, union, g, receiver, pkgs)
		for j, m := range g.Members {
			setter.Params = append(setter.Params, Param{
				Name:  names[j],
				Type:  m.Type.Expr,
				Field: m.Field,
				Dup:   dupExpr(m.Type, names[j], pkgs[j]),
			})
		}

		setters = append(setters, setter)
	}

	return setters
}

// dupExpr returns the expression storing param into the record. pkg is the
// name of the copy package.
func dupExpr(t model.TypeRef, param, pkg string) string {
	if t.Shape == model.ShapeShared {
		return param
	}

	return t.Copy.CopyExpr(param, pkg)
}

// checkMethodNames rejects records whose fields collide with generated methods.
func checkMethodNames(rec *model.RecordDescriptor, union *Union) error {
	methods := map[string]bool{ApplyMethod: true}
	for _, v := range union.Variants {
		if !rec.SkipSetters {
			methods[SetterPrefix+v.Name[len(union.Name):]] = true
		}
	}

	for i := range rec.Fields {
		if methods[rec.Fields[i].Name] {
			return fmt.Errorf("%s.%s: %w", rec.Name, rec.Fields[i].Name, ErrNameConflict)
		}
	}

	return nil
}
