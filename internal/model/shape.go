package model

import "enum-update-generator/internal/common"

//go:generate go tool stringer -type=CopyKind -output=copykind_string.go

// Shape classifies a field type by how its values may be duplicated.
type Shape int

const (
	// ShapeOwned values are duplicated before being stored in the record.
	ShapeOwned Shape = iota
	// ShapeShared values are references that may be held by the record and
	// the update at the same time.
	ShapeShared
	// ShapeExclusive values must not be copied (they hold a lock by value).
	ShapeExclusive
)

// String returns a human-readable shape name.
func (s Shape) String() string {
	switch s {
	case ShapeOwned:
		return "owned"
	case ShapeShared:
		return "shared"
	case ShapeExclusive:
		return "exclusive"
	default:
		return common.UnknownStr
	}
}

// CopyKind selects the expression used to duplicate an owned value.
type CopyKind int

const (
	CopyNone   CopyKind = iota // shared and exclusive values are never duplicated
	CopyAssign                 // plain assignment already copies the value
	CopySlice                  // slices.Clone
	CopyMap                    // maps.Clone
	CopyMethod                 // the type's own Clone method
)

// CopyImport returns the standard library package the copy expression needs.
func (k CopyKind) CopyImport() string {
	switch k {
	case CopySlice:
		return "slices"
	case CopyMap:
		return "maps"
	default:
		return ""
	}
}

// CopyExpr returns the expression duplicating the value named by ident. pkg
// is the name the CopyImport package is imported under.
func (k CopyKind) CopyExpr(ident, pkg string) string {
	switch k {
	case CopySlice, CopyMap:
		return pkg + ".Clone(" + ident + ")"
	case CopyMethod:
		return ident + ".Clone()"
	default:
		return ident
	}
}
