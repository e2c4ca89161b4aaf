package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the record's package.
	Dir string
	// Filename is the name of the file (e.g., "test_struct_update.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the full output path.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// WriteFiles writes all generated files next to their records.
// It creates missing directories.
func WriteFiles(files []GeneratedFile) error {
	for _, file := range files {
		err := os.MkdirAll(file.Dir, dirPerm)
		if err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}

		err = os.WriteFile(file.Path(), file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
