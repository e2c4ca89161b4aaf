package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"enum-update-generator/internal/annotate"
)

// CurrentVersion is the only supported configuration version.
const CurrentVersion = "1"

// ErrInvalidConfig reports a configuration that parses but cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// LoadOrDefault loads path like LoadFile, but returns the default
// configuration when the file does not exist.
func LoadOrDefault(path string) (*File, error) {
	f, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		f = &File{}
		applyDefaults(f)

		return f, nil
	}

	return f, err
}

// Parse parses YAML data into a File and validates it.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&f)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&f)

	if err := Validate(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	if f.Tag == "" {
		f.Tag = annotate.DefaultTagKey
	}
}

// Validate checks version, record names and output file names.
func Validate(f *File) error {
	if f.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %q", ErrInvalidConfig, f.Version)
	}

	seen := make(map[string]bool, len(f.Records))

	for i, r := range f.Records {
		if r.Type == "" {
			return fmt.Errorf("%w: records[%d]: missing type", ErrInvalidConfig, i)
		}

		key := r.Package + "." + r.Type
		if seen[key] {
			return fmt.Errorf("%w: records[%d]: %s configured twice", ErrInvalidConfig, i, r.Type)
		}

		seen[key] = true

		if r.Output != "" && (filepath.Base(r.Output) != r.Output || filepath.Ext(r.Output) != ".go") {
			return fmt.Errorf("%w: records[%d]: output %q must be a .go file name", ErrInvalidConfig, i, r.Output)
		}
	}

	return nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}
