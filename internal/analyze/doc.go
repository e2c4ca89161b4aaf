// Package analyze loads Go packages and describes their struct types as raw
// records for annotation extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types so that every
// field carries its rendered type, struct tag, source position and a shape
// classification that drives the setter copy policy.
//
// Key types:
//   - RawRecord: one struct declaration with its doc directives and type parameters
//   - RawField: one field with its tag and model.TypeRef
//   - Package: records found in one loaded package
package analyze
