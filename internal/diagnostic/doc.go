// Package diagnostic provides structured warnings and notes emitted while
// deriving update unions.
//
// Key capabilities:
//   - Setter omission notes for groups that cannot be duplicated
//   - Warnings for fields that belong to no group
//   - Combined error rendering for fatal findings
package diagnostic
