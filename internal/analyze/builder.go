package analyze

import (
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"slices"
	"strconv"

	"enum-update-generator/internal/model"
)

// Builder turns struct declarations of one type-checked package into raw
// records. It is shared by the package loader and the analysis pass.
type Builder struct {
	fset *token.FileSet
	pkg  *types.Package
	info *types.Info
}

// NewBuilder creates a Builder for a type-checked package.
func NewBuilder(fset *token.FileSet, pkg *types.Package, info *types.Info) *Builder {
	return &Builder{fset: fset, pkg: pkg, info: info}
}

// File returns the struct records declared in file, in declaration order.
func (b *Builder) File(file *ast.File) []*RawRecord {
	var records []*RawRecord

	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			if record, ok := b.Record(genDecl, typeSpec); ok {
				records = append(records, record)
			}
		}
	}

	return records
}

// Record builds the raw record for a struct type declaration. It reports
// false for non-struct types and aliases.
func (b *Builder) Record(decl *ast.GenDecl, spec *ast.TypeSpec) (*RawRecord, bool) {
	astStruct, ok := spec.Type.(*ast.StructType)
	if !ok || spec.Assign.IsValid() {
		return nil, false
	}

	obj, ok := b.info.Defs[spec.Name].(*types.TypeName)
	if !ok {
		return nil, false
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, false
	}

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, false
	}

	record := &RawRecord{
		Name:     obj.Name(),
		PkgPath:  b.pkg.Path(),
		PkgName:  b.pkg.Name(),
		Exported: obj.Exported(),
		Pos:      b.fset.Position(spec.Name.Pos()),
	}

	record.Doc = b.comments(declDoc(decl, spec))

	names := newImportNames()

	tparams := named.TypeParams()
	for i := range tparams.Len() {
		tp := tparams.At(i)
		expr, imports := b.typeString(tp.Constraint(), names)
		record.TypeParams = append(record.TypeParams, model.TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: expr,
			Imports:    imports,
		})
	}

	positions := b.fieldPositions(astStruct)
	for i := range st.NumFields() {
		field := st.Field(i)

		raw := RawField{
			Name: field.Name(),
			Type: b.typeRef(field.Type(), names),
			Tag:  reflect.StructTag(st.Tag(i)),
			Pos:  b.fset.Position(field.Pos()),
		}

		if i < len(positions) {
			raw.Pos = positions[i].field
			raw.TagPos = positions[i].tag
		}

		record.Fields = append(record.Fields, raw)
	}

	return record, true
}

// typeRef renders t relative to the builder's package and classifies it.
func (b *Builder) typeRef(t types.Type, names *importNames) model.TypeRef {
	expr, imports := b.typeString(t, names)
	shape, copyKind := Classify(t)

	return model.TypeRef{
		Expr:    expr,
		Imports: imports,
		Shape:   shape,
		Copy:    copyKind,
	}
}

// typeString renders t with package qualifiers and returns the packages it
// references, in first-use order. Qualifiers come from names, so packages
// sharing a name get distinct ones across every type of a record.
func (b *Builder) typeString(t types.Type, names *importNames) (string, []model.Import) {
	var imports []model.Import

	qualifier := func(p *types.Package) string {
		if p == b.pkg || p.Path() == b.pkg.Path() {
			return ""
		}

		imp := model.Import{Path: p.Path(), Name: names.name(p)}
		if !slices.Contains(imports, imp) {
			imports = append(imports, imp)
		}

		return imp.Name
	}

	return types.TypeString(t, qualifier), imports
}

// importNames assigns every imported package a qualifier: its own name, or
// the name followed by a counter when another path already holds it, e.g.
// "template" for text/template and "template2" for html/template.
type importNames struct {
	byPath map[string]string
	taken  map[string]bool
}

func newImportNames() *importNames {
	return &importNames{byPath: make(map[string]string), taken: make(map[string]bool)}
}

func (n *importNames) name(p *types.Package) string {
	if name, ok := n.byPath[p.Path()]; ok {
		return name
	}

	name := p.Name()
	for i := 2; n.taken[name]; i++ {
		name = p.Name() + strconv.Itoa(i)
	}

	n.byPath[p.Path()] = name
	n.taken[name] = true

	return name
}

type fieldPosition struct {
	field token.Position
	tag   token.Position
}

// fieldPositions lists one position pair per declared field, expanding
// multi-name fields such as "a, b int".
func (b *Builder) fieldPositions(st *ast.StructType) []fieldPosition {
	var positions []fieldPosition

	for _, field := range st.Fields.List {
		var tagPos token.Position
		if field.Tag != nil {
			tagPos = b.fset.Position(field.Tag.Pos())
		}

		if len(field.Names) == 0 {
			positions = append(positions, fieldPosition{field: b.fset.Position(field.Type.Pos()), tag: tagPos})
			continue
		}

		for _, name := range field.Names {
			positions = append(positions, fieldPosition{field: b.fset.Position(name.Pos()), tag: tagPos})
		}
	}

	return positions
}

func (b *Builder) comments(group *ast.CommentGroup) []Comment {
	if group == nil {
		return nil
	}

	comments := make([]Comment, 0, len(group.List))
	for _, c := range group.List {
		comments = append(comments, Comment{Text: c.Text, Pos: b.fset.Position(c.Pos())})
	}

	return comments
}

// declDoc returns the doc comment of a type spec. For an unparenthesized
// declaration the comment is attached to the GenDecl.
func declDoc(decl *ast.GenDecl, spec *ast.TypeSpec) *ast.CommentGroup {
	if spec.Doc != nil {
		return spec.Doc
	}

	if !decl.Lparen.IsValid() {
		return decl.Doc
	}

	return nil
}
