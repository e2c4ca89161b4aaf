package config

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"enum-update-generator/internal/annotate"
	"enum-update-generator/internal/common"
)

// DefaultRuntime is the import path of the runtime package asserted by
// generated code.
const DefaultRuntime = "enum-update-generator/enumupdate"

// File is the root of a configuration file.
type File struct {
	Version string `yaml:"version"`
	// Tag is the struct tag key and doc directive prefix.
	Tag string `yaml:"tag,omitempty"`
	// Runtime overrides DefaultRuntime. An explicit empty string disables
	// the Applier assertion.
	Runtime *string  `yaml:"runtime,omitempty"`
	Records []Record `yaml:"records,omitempty"`
}

// Record configures one struct.
type Record struct {
	// Type is the struct name.
	Type string `yaml:"type"`
	// Package restricts the entry to one package path. Empty matches any.
	Package string `yaml:"package,omitempty"`
	// Output overrides the generated file name.
	Output string `yaml:"output,omitempty"`
	// Forward lists directives attached to the union, without "//".
	Forward StringOrArray `yaml:"forward,omitempty"`
	// Fields maps field names to directive lists merged after the tag.
	Fields map[string]string `yaml:"fields,omitempty"`
	// Setters set to false skips the Modify methods.
	Setters *bool `yaml:"setters,omitempty"`
}

// StringOrArray is a YAML value that may be a single string or a list.
type StringOrArray []string

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %v", node.Kind)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// RuntimePath returns the effective runtime import path.
func (f *File) RuntimePath() string {
	if f.Runtime == nil {
		return DefaultRuntime
	}

	return *f.Runtime
}

// Lookup returns the entry configuring the named struct of pkgPath, or nil.
// An entry bound to the package wins over an unbound one.
func (f *File) Lookup(pkgPath, name string) *Record {
	var match *Record

	for i := range f.Records {
		r := &f.Records[i]
		if r.Type != name {
			continue
		}

		if r.Package == pkgPath {
			return r
		}

		if r.Package == "" && match == nil {
			match = r
		}
	}

	return match
}

// Names returns the configured struct names in file order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Records))
	for _, r := range f.Records {
		names = append(names, r.Type)
	}

	return names
}

// Ensure appends an entry for every name not configured yet and returns the
// number of entries added.
func (f *File) Ensure(names ...string) int {
	added := 0

	for _, name := range names {
		if slices.Contains(f.Names(), name) {
			continue
		}

		f.Records = append(f.Records, Record{Type: name})
		added++
	}

	return added
}

// Options returns the extraction options for the record.
func (r *Record) Options(tag string) annotate.Options {
	opts := annotate.Options{TagKey: tag}
	if r == nil {
		return opts
	}

	opts.FieldDirectives = r.Fields
	opts.Forward = r.Forward
	opts.NoSetters = r.Setters != nil && !*r.Setters

	return opts
}
