/*
Package analyzer reports malformed update annotations at the place they are
written, without running the generator.

It checks the structs that carry an update record directive or a field with
the update tag key:
  - field directives in the update struct tag
  - record directives in the doc comment, such as //update:forward(nolint:revive)
  - group names that collide once converted to variant names
  - fields that clash with the generated Apply and Modify methods

# Usage

	go run enum-update-generator/cmd/enum-update-lint ./...
*/
package analyzer
