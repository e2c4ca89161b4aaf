package gen

import (
	"go/token"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"

	"enum-update-generator/internal/common"
	"enum-update-generator/internal/model"
)

// FileSuffix is appended to the snake-cased record name to form the output file.
const FileSuffix = "_update.go"

// blankName is the identifier of fields that cannot be referenced.
const blankName = "_"

// fallbackReceiver replaces a receiver name that would shadow the Apply locals.
const fallbackReceiver = "rec"

// applyLocals are identifiers declared inside the generated Apply body.
var applyLocals = map[string]bool{"update": true, "u": true}

// Filename returns the default output file name of rec, e.g. "test_struct_update.go".
func Filename(rec *model.RecordDescriptor) string {
	return model.SnakeCase(rec.Name) + FileSuffix
}

// receiverName returns the lower-cased first letter of the record name.
func receiverName(rec *model.RecordDescriptor) string {
	first, _ := utf8.DecodeRuneInString(rec.Name)
	name := string(unicode.ToLower(first))

	taken := typeParamNames(rec)
	if applyLocals[name] || taken[name] || !isIdent(name) {
		return uniqueName(fallbackReceiver, taken)
	}

	return name
}

// paramNames returns one parameter name per member of g: the field name,
// lower-camelled when exported, made unique against the other parameters,
// the receiver and every package name the setter may reference. pkgs holds
// the copy package name of each member, empty when none is needed.
func paramNames(rec *model.RecordDescriptor, union *Union, g *model.GroupDescriptor, receiver string, pkgs []string) []string {
	taken := typeParamNames(rec)
	taken[receiver] = true
	taken[union.Name] = true

	for _, v := range union.Variants {
		taken[v.Name] = true
	}

	for _, pkg := range pkgs {
		if pkg != "" {
			taken[pkg] = true
		}
	}

	for _, m := range g.Members {
		for _, imp := range m.Type.Imports {
			taken[imp.Name] = true
		}
	}

	names := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		name := uniqueName(paramBase(m.Field), taken)
		taken[name] = true
		names = append(names, name)
	}

	return names
}

// paramBase converts a field name to a parameter name.
func paramBase(field string) string {
	if token.IsExported(field) {
		return strcase.ToLowerCamel(field)
	}

	return field
}

// uniqueName returns base, or base followed by the smallest counter from 2
// that is neither taken nor a keyword.
func uniqueName(base string, taken map[string]bool) string {
	name := base
	for i := 2; taken[name] || token.IsKeyword(name) || name == "_"; i++ {
		name = base + strconv.Itoa(i)
	}

	return name
}

func typeParamNames(rec *model.RecordDescriptor) map[string]bool {
	names := make(map[string]bool, len(rec.TypeParams))
	for _, tp := range rec.TypeParams {
		names[tp.Name] = true
	}

	return names
}

// runtimeName returns the package name of the runtime import path.
func runtimeName(importPath string) string {
	return common.PkgAlias(importPath)
}

func isIdent(name string) bool {
	return token.IsIdentifier(name)
}
