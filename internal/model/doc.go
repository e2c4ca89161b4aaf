// Package model holds the descriptors shared by the extraction, grouping and
// synthesis stages of the generator.
//
// Key types:
//   - TypeRef: opaque field type plus its shape classification
//   - FieldDescriptor: one struct field and the groups it belongs to
//   - RecordDescriptor: the annotated struct being turned into an update union
//   - GroupDescriptor: one named set of fields that change together
package model
