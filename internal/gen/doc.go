// Package gen derives and renders the update union of a record.
//
// Generation approach uses text/template + go/format for readable,
// deterministic Go code.
//
// Generated declarations:
//   - Sealed union interface with one variant struct per group
//   - Apply method dispatching on the variant with a type switch
//   - Modify<Group> setters that mutate the record and return the update
//   - Compile-time assertion against the enumupdate runtime
package gen
