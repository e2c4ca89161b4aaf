package common

import (
	"path"
	"strings"
)

// PkgAlias returns the package name conventionally used for an import path:
// its last element with dashes and dots turned into underscores, e.g.
// "example.com/enum-update" becomes "enum_update". It is empty for an empty path.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return strings.NewReplacer("-", "_", ".", "_").Replace(path.Base(pkgPath))
}
