/*
Package gclplugin provides golangci-lint plugin integration for the enumupdate analyzer.

# Usage

1. Add a file `.custom-gcl.yaml` to your source with:

	---
	version: v2.7.0

	name: golangci-lint
	destination: .

	plugins:
	  - module: enum-update-generator
	    import: enum-update-generator/gclplugin

2. Run `golangci-lint custom` from your project root.

3. Configure the linter in `.golangci.yaml`:

	---
	version: "2"
	linters:
	  enable:
	    - enumupdate
	  settings:
	    custom:
	      enumupdate:
	        type: module
	        description: "enumupdate checks update annotations."
	        settings:
	          tag: update
*/
package gclplugin
