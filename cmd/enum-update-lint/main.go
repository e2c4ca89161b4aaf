// Command enum-update-lint reports malformed update annotations.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"enum-update-generator/analyzer"
)

func main() { singlechecker.Main(analyzer.Analyzer) }
