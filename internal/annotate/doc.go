// Package annotate extracts group memberships from field tags and forwarded
// directives from record doc comments.
//
// Field directives live under one struct tag key (default "update") and are
// separated by semicolons:
//
//	field string `update:"group(UpdateBoth, Other);rename_default(Value)"`
//
// Record directives are doc comment lines using the same key as prefix:
//
//	//update:generate
//	//update:forward(nolint:revive)
package annotate
