package gclplugin

import "enum-update-generator/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Tag is the struct tag key and directive prefix.
	Tag string `json:"tag,omitzero"`
	// Generated enables checks in generated files.
	Generated *bool `json:"generated,omitzero"`
}

// Options converts [Settings] into analyzer options, applying only what is set.
func (s Settings) Options() []analyzer.Option {
	var opts []analyzer.Option

	if s.Tag != "" {
		opts = append(opts, analyzer.WithTag(s.Tag))
	}

	if s.Generated != nil {
		opts = append(opts, analyzer.WithGenerated(*s.Generated))
	}

	return opts
}
