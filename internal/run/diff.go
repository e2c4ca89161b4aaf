package run

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff returns a unified diff turning current into generated, or "" when
// they are equal.
func Diff(path string, current, generated []byte) (string, error) {
	if string(current) == string(generated) {
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(generated)),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diffing %s: %w", path, err)
	}

	return diff, nil
}
