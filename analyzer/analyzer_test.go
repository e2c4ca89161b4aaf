package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis/analysistest"

	. "enum-update-generator/analyzer"
)

func TestAnalyzer(t *testing.T) {
	testdata := analysistest.TestData()

	tests := []struct {
		name string
		dir  string
		opts []Option
	}{
		{name: "Default", dir: "./a"},
		{name: "CustomTag", dir: "./custom", opts: []Option{WithTag("enum")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysistest.Run(t, testdata, New(tt.opts...), tt.dir)
		})
	}
}

func TestAnalyzer_Flags(t *testing.T) {
	a := New()

	assert.Equal(t, "enumupdate", a.Name)

	f := a.Flags.Lookup("tag")
	require.NotNil(t, f)
	assert.Equal(t, "update", f.DefValue)

	assert.Equal(t, "enum", New(WithTag("enum")).Flags.Lookup("tag").DefValue)
}
