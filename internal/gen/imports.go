package gen

import (
	"path"
	"sort"
	"strconv"
	"strings"

	"enum-update-generator/internal/model"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
	Std   bool // Rendered in the standard library group
}

// importSet collects the packages referenced by one generated file and the
// name each one is used under.
type importSet struct {
	self    string // Record package, never imported
	runtime string
	byPath  map[string]importSpec
	names   map[string]string // Name in use -> path
}

func newImportSet(rec *model.RecordDescriptor, opts Options) *importSet {
	return &importSet{
		self:    rec.PkgPath,
		runtime: opts.Runtime,
		byPath:  make(map[string]importSpec),
		names:   make(map[string]string),
	}
}

// add records imp under its own name. Type expressions of the record already
// use that name, so it is never changed.
func (s *importSet) add(imp model.Import) {
	if imp.Path == s.self {
		return
	}

	if _, ok := s.byPath[imp.Path]; ok {
		return
	}

	s.store(imp.Path, imp.Name)
}

// use records imp and returns the name to qualify it with: its own name, or
// the name followed by a counter when another package holds it.
func (s *importSet) use(imp model.Import) string {
	if imp.Path == s.self {
		return ""
	}

	if spec, ok := s.byPath[imp.Path]; ok {
		return spec.name()
	}

	name := imp.Name
	for i := 2; s.names[name] != ""; i++ {
		name = imp.Name + strconv.Itoa(i)
	}

	s.store(imp.Path, name)

	return name
}

func (s *importSet) store(importPath, name string) {
	spec := importSpec{Path: importPath, Std: s.isStd(importPath)}
	if name != path.Base(importPath) {
		spec.Alias = name
	}

	s.byPath[importPath] = spec
	s.names[name] = importPath
}

// isStd guesses like goimports: a path whose first element has no dot is
// the standard library, unless it is the runtime or shares its first
// element with the record's own package.
func (s *importSet) isStd(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	if strings.Contains(first, ".") || importPath == s.runtime {
		return false
	}

	own, _, _ := strings.Cut(s.self, "/")

	return first != own
}

// specs returns the imports sorted by path.
func (s *importSet) specs() []importSpec {
	specs := make([]importSpec, 0, len(s.byPath))
	for _, spec := range s.byPath {
		specs = append(specs, spec)
	}

	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Path < specs[j].Path
	})

	return specs
}

func (spec importSpec) name() string {
	if spec.Alias != "" {
		return spec.Alias
	}

	return path.Base(spec.Path)
}

// addRecordImports records the packages named by the type parameters and the
// grouped fields of rec.
func (s *importSet) addRecordImports(rec *model.RecordDescriptor) {
	for _, tp := range rec.TypeParams {
		for _, imp := range tp.Imports {
			s.add(imp)
		}
	}

	for i := range rec.Fields {
		field := &rec.Fields[i]
		if len(field.Groups()) == 0 {
			continue
		}

		for _, imp := range field.Type.Imports {
			s.add(imp)
		}
	}
}

func stdImports(specs []importSpec) []importSpec {
	var out []importSpec

	for _, spec := range specs {
		if spec.Std {
			out = append(out, spec)
		}
	}

	return out
}

func otherImports(specs []importSpec) []importSpec {
	var out []importSpec

	for _, spec := range specs {
		if !spec.Std {
			out = append(out, spec)
		}
	}

	return out
}
