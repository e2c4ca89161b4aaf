package analyzer

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"

	"enum-update-generator/internal/annotate"
)

const (
	name = "enumupdate"
	doc  = `enumupdate checks update annotations on structs`
)

// Option configures a [New] analyzer.
type Option func(o *options)

type options struct {
	tag       string
	generated bool
}

// WithTag sets the struct tag key and directive prefix.
func WithTag(tag string) Option {
	return func(o *options) { o.tag = tag }
}

// WithGenerated enables checks in generated files.
func WithGenerated(generated bool) Option {
	return func(o *options) { o.generated = generated }
}

// New creates a new instance of the enumupdate analyzer.
func New(opts ...Option) *analysis.Analyzer {
	o := &options{tag: annotate.DefaultTagKey}
	for _, opt := range opts {
		opt(o)
	}

	a := &analysis.Analyzer{
		Name:     name,
		Doc:      doc,
		Run:      o.run,
		Requires: []*analysis.Analyzer{inspect.Analyzer},
	}

	a.Flags.StringVar(&o.tag, "tag", o.tag, "struct tag key and directive prefix")
	a.Flags.BoolVar(&o.generated, "generated", o.generated, "check generated files")

	return a
}

// Analyzer is a pre-configured *[analysis.Analyzer] using the "update" tag key.
var Analyzer = New()
