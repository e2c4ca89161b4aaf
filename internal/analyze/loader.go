package analyze

import (
	"context"
	"fmt"
	"go/ast"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Loader loads Go packages and collects their struct records.
type Loader struct {
	dir string
}

// NewLoader creates a Loader resolving patterns relative to dir. An empty dir
// means the current working directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadPackages loads the packages matching patterns (e.g., "./store",
// "enum-update-generator/examples/basic") and returns them sorted by import path.
// Files carrying a "Code generated ... DO NOT EDIT." header are skipped.
func (l *Loader) LoadPackages(ctx context.Context, patterns ...string) ([]*Package, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     l.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	result := make([]*Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		result = append(result, processPackage(pkg))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})

	return result, nil
}

// processPackage extracts struct records from a loaded package.
func processPackage(pkg *packages.Package) *Package {
	info := &Package{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		info.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	builder := NewBuilder(pkg.Fset, pkg.Types, pkg.TypesInfo)
	for _, file := range pkg.Syntax {
		if ast.IsGenerated(file) {
			continue
		}

		info.Records = append(info.Records, builder.File(file)...)
	}

	return info
}
