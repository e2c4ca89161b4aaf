package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"strings"
	"text/template"
)

// Header is the first line of every generated file.
const Header = "// Code generated by enum-update-generator. DO NOT EDIT."

// ErrFormat: the rendered source is not valid Go. The unformatted source is
// returned alongside it.
var ErrFormat = errors.New("formatting generated code")

// templateData holds all data needed for the update template.
type templateData struct {
	Header       string
	PackageName  string
	RecordName   string
	StdImports   []importSpec
	OtherImports []importSpec
	*Artifacts
}

// Render renders the artifacts as a formatted Go file of package pkgName.
// On format failure it returns the unformatted source and an error wrapping
// ErrFormat.
func Render(a *Artifacts, pkgName string) ([]byte, error) {
	data := &templateData{
		Header:       Header,
		PackageName:  pkgName,
		RecordName:   a.Record.Name,
		StdImports:   stdImports(a.Imports),
		OtherImports: otherImports(a.Imports),
		Artifacts:    a,
	}

	var buf bytes.Buffer
	if err := updateTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), fmt.Errorf("%w: %w (unformatted code returned)", ErrFormat, err)
	}

	return formatted, nil
}

// describe joins field names for doc comments: "a", "a and b", "a, b and c".
func describe(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// variantDoc completes the doc comment of a variant after its name.
func variantDoc(v Variant) string {
	var assigned, locks []string

	for _, f := range v.Fields {
		if f.Exclusive {
			locks = append(locks, f.Name)
		} else {
			assigned = append(assigned, f.Name)
		}
	}

	doc := "sets " + describe(assigned) + "."
	if len(assigned) == 0 {
		doc = "carries " + describe(locks) + "."
	}

	switch len(locks) {
	case 0:
		return doc
	case 1:
		return doc + " Use it by pointer: " + locks[0] + " holds a lock and stays with the record."
	default:
		return doc + " Use it by pointer: " + describe(locks) + " hold locks and stay with the record."
	}
}

func paramFields(s Setter) []string {
	names := make([]string, 0, len(s.Params))
	for _, p := range s.Params {
		names = append(names, p.Field)
	}

	return names
}

// assigns reports whether any arm assigns a field.
func assigns(arms []Arm) bool {
	for _, arm := range arms {
		if len(arm.Fields) > 0 {
			return true
		}
	}

	return false
}

var funcs = template.FuncMap{
	"assigns":     assigns,
	"describe":    describe,
	"variantDoc":  variantDoc,
	"paramFields": paramFields,
}

var updateTemplate = template.Must(template.New("update").Funcs(funcs).Parse(`{{.Header}}

package {{.PackageName}}
{{if .Imports}}
import (
{{range .StdImports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}
{{- if and .StdImports .OtherImports}}
{{end}}
{{- range .OtherImports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
// {{.Union.Name}} is an atomic update of {{.RecordName}}.
{{- if .Union.Forwarded}}
//
{{- range .Union.Forwarded}}
{{.}}
{{- end}}
{{- end}}
type {{.Union.Name}}{{.Union.TypeParams}} interface {
	{{.Union.Marker}}()
}
{{range .Union.Variants}}
// {{.Name}} {{variantDoc .}}
type {{.Name}}{{$.Union.TypeParams}} struct {
{{range .Fields}}	{{.Name}} {{.Type}}
{{end}}}

func ({{if .Pointer}}*{{end}}{{.Name}}{{$.Union.TypeArgs}}) {{$.Union.Marker}}() {}
{{end}}
{{- with .Apply}}
{{if .Assertion}}
{{.Assertion}}
{{end}}
// Apply applies update to {{.Receiver}}.
func ({{.Receiver}} *{{.Record}}) Apply(update {{.Union}}) {
{{- if .Arms}}
	switch {{if assigns .Arms}}u := {{end}}update.(type) {
{{- range .Arms}}
	case {{.Variant}}:
{{- $recv := $.Apply.Receiver}}
{{- range .Fields}}
		{{$recv}}.{{.}} = u.{{.}}
{{- end}}
{{- end}}
	}
{{- end}}
}
{{- end}}
{{range .Setters}}
// {{.Name}} sets {{describe (paramFields .)}} and returns the update describing the change.
func ({{.Receiver}} *{{.Record}}) {{.Name}}({{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Name}} {{$p.Type}}{{end}}) {{.Union}} {
{{- $recv := .Receiver}}
{{- range .Params}}
	{{$recv}}.{{.Field}} = {{.Dup}}
{{- end}}

	return {{.Variant}}{ {{- range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Field}}: {{$p.Name}}{{end -}} }
}
{{end}}`))
