// Package config handles the YAML configuration of the generator.
//
// A configuration file selects records, overrides their output file names,
// adds forwarded directives and attaches field directives without touching
// struct tags:
//
//	version: "1"
//	tag: update
//	records:
//	  - type: TestStruct
//	    forward: nolint:revive
//	    fields:
//	      test: "group(Extra)"
package config
