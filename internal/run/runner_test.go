package run

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/tools/go/analysis/analysistest"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/packages"

	"enum-update-generator/internal/annotate"
	"enum-update-generator/internal/config"
	"enum-update-generator/internal/diagnostic"
)

const basicSource = `package basic

//update:generate
//update:forward(nolint:revive)
type TestStruct struct {
	test  string ` + "`update:\"group(UpdateBoth)\"`" + `
	test2 int    ` + "`update:\"group(UpdateBoth)\"`" + `
}

type Single struct {
	value string
}
`

// fixture writes a throwaway module holding one package and returns its root.
func fixture(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module fixture\n\ngo 1.24\n"), 0o644))

	pkgDir := filepath.Join(root, "basic")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(pkgDir, name), []byte(content), 0o644))
	}

	return root
}

// typeCheck loads every package of the fixture, generated files included,
// and fails on any error.
func typeCheck(t *testing.T, root string) {
	t.Helper()

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:  root,
	}

	pkgs, err := packages.Load(cfg, "./...")
	require.NoError(t, err)
	require.NotEmpty(t, pkgs)

	for _, pkg := range pkgs {
		assert.Empty(t, pkg.Errors, pkg.PkgPath)
	}
}

func noRuntime() *string {
	empty := ""

	return &empty
}

func newRunner(root string, opts Options) *Runner {
	opts.Dir = root
	opts.Patterns = []string{"./..."}
	opts.Runtime = noRuntime()

	return NewRunner(zap.NewNop(), opts)
}

func TestRunner_MarkedRecords(t *testing.T) {
	root := fixture(t, map[string]string{"basic.go": basicSource})

	result, err := newRunner(root, Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	file := result.Files[0]
	assert.Equal(t, "test_struct_update.go", file.Filename)
	assert.Equal(t, filepath.Join(root, "basic"), file.Dir)

	written, err := os.ReadFile(file.Path())
	require.NoError(t, err)
	assert.Equal(t, file.Content, written)
	assert.Contains(t, string(written), "//nolint:revive\ntype TestStructUpdate interface {")
	assert.Contains(t, string(written), "func (t *TestStruct) ModifyUpdateBoth(test string, test2 int) TestStructUpdate {")
	assert.NotContains(t, string(written), "Single")
}

func TestRunner_CheckMode(t *testing.T) {
	root := fixture(t, map[string]string{"basic.go": basicSource})

	_, err := newRunner(root, Options{}).Run(context.Background())
	require.NoError(t, err)

	result, err := newRunner(root, Options{Check: true}).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Diffs)

	path := filepath.Join(root, "basic", "test_struct_update.go")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, bytes.Replace(content, []byte("t.test = test\n"), []byte("t.test = \"\"\n"), 1), 0o644))

	result, err = newRunner(root, Options{Check: true}).Run(context.Background())
	require.ErrorIs(t, err, ErrStale)
	require.Len(t, result.Diffs, 1)
	assert.Contains(t, result.Diffs[0], "--- "+path)
	assert.Contains(t, result.Diffs[0], "+++ "+path+" (generated)")
	assert.Contains(t, result.Diffs[0], "-\tt.test = \"\"")
	assert.Contains(t, result.Diffs[0], "+\tt.test = test")
}

func TestRunner_TypesAndOutput(t *testing.T) {
	root := fixture(t, map[string]string{"basic.go": basicSource})

	result, err := newRunner(root, Options{Types: []string{"Single"}, Output: "single_gen.go"}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "single_gen.go", result.Files[0].Filename)
	assert.FileExists(t, filepath.Join(root, "basic", "single_gen.go"))

	_, err = newRunner(root, Options{Types: []string{"Single", "TestStruct"}, Output: "x.go"}).Run(context.Background())
	require.ErrorIs(t, err, ErrOutputAmbiguous)

	_, err = newRunner(root, Options{Types: []string{"Missing"}}).Run(context.Background())
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRunner_ConfiguredRecords(t *testing.T) {
	root := fixture(t, map[string]string{"basic.go": basicSource})

	cfg, err := config.Parse([]byte(`
records:
  - type: Single
    output: single.go
    forward: lint:ignore U1000
    fields:
      value: "group(Everything); suppress_default"
`))
	require.NoError(t, err)

	result, err := newRunner(root, Options{Config: cfg}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	content := string(result.Files[0].Content)
	assert.Equal(t, "single.go", result.Files[0].Filename)
	assert.Contains(t, content, "//lint:ignore U1000\ntype SingleUpdate interface {")
	assert.Contains(t, content, "func (s *Single) ModifyEverything(value string) SingleUpdate {")
	assert.NotContains(t, content, "ModifyValue")
}

func TestRunner_RecordErrorKeepsOthers(t *testing.T) {
	bad := `package basic

//update:generate
type Broken struct {
	value string ` + "`update:\"group(\"`" + `
}
`
	root := fixture(t, map[string]string{"basic.go": basicSource, "broken.go": bad})

	result, err := newRunner(root, Options{}).Run(context.Background())
	require.ErrorIs(t, err, annotate.ErrMalformedDirective)
	assert.Contains(t, err.Error(), "Broken.value")

	require.Len(t, result.Files, 1)
	assert.Equal(t, "test_struct_update.go", result.Files[0].Filename)
	assert.NoFileExists(t, filepath.Join(root, "basic", "broken_update.go"))

	require.Len(t, result.Diagnostics.Errors, 1)
	failed := result.Diagnostics.Errors[0]
	assert.Equal(t, diagnostic.CodeRecordFailed, failed.Code)
	assert.Equal(t, "Broken.value", failed.Subject())
	assert.Equal(t, 5, failed.Pos.Line)
	require.ErrorIs(t, failed.Err, annotate.ErrMalformedDirective)
}

func TestRunner_StaleDiagnostic(t *testing.T) {
	root := fixture(t, map[string]string{"basic.go": basicSource})

	result, err := newRunner(root, Options{Check: true}).Run(context.Background())
	require.ErrorIs(t, err, ErrStale)
	require.True(t, result.Diagnostics.HasErrors())

	require.Len(t, result.Diagnostics.Errors, 1)
	stale := result.Diagnostics.Errors[0]
	assert.Equal(t, diagnostic.CodeStaleFile, stale.Code)
	assert.Equal(t, filepath.Join(root, "basic", "test_struct_update.go")+" is out of date", stale.Message)
	assert.NoFileExists(t, filepath.Join(root, "basic", "test_struct_update.go"))
}

func TestRunner_DebugAndDiagnostics(t *testing.T) {
	src := `package basic

//update:generate
type State struct {
	hidden string ` + "`update:\"suppress_default\"`" + `
	shown  int
}
`
	root := fixture(t, map[string]string{"state.go": src})

	var debug bytes.Buffer

	result, err := newRunner(root, Options{Debug: &debug}).Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, debug.String(), `(string) (len=5) "State"`)
	assert.Contains(t, debug.String(), `Name: (string) (len=5) "shown"`)

	require.Len(t, result.Diagnostics.Infos, 1)
	assert.Equal(t, diagnostic.CodeUngroupedField, result.Diagnostics.Infos[0].Code)
	assert.Equal(t, "State.hidden", result.Diagnostics.Infos[0].Subject())
}

func TestRunner_DebugKeepsRecordOrder(t *testing.T) {
	var src strings.Builder

	src.WriteString("package basic\n")

	for i := range 8 {
		fmt.Fprintf(&src, "\n//update:generate\ntype Rec%d struct {\n\tvalue%d int\n}\n", i, i)
	}

	root := fixture(t, map[string]string{"recs.go": src.String()})

	var debug bytes.Buffer

	result, err := newRunner(root, Options{Debug: &debug, Concurrency: 8}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Files, 8)

	dump := debug.String()
	last := -1

	for i := range 8 {
		at := strings.Index(dump, fmt.Sprintf(`(string) (len=4) "Rec%d"`, i))
		require.Greater(t, at, last, "Rec%d", i)

		last = at
	}
}

func TestRunner_BlankFieldCompiles(t *testing.T) {
	src := `package basic

//update:generate
type Padded struct {
	value int
	_     [8]byte
}
`
	root := fixture(t, map[string]string{"padded.go": src})

	result, err := newRunner(root, Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.NotContains(t, string(result.Files[0].Content), "_ [8]byte")

	require.Len(t, result.Diagnostics.Infos, 1)
	assert.Equal(t, diagnostic.CodeBlankField, result.Diagnostics.Infos[0].Code)

	typeCheck(t, root)
}

func TestRunner_SamePackageNameCompiles(t *testing.T) {
	src := `package basic

import (
	htmltemplate "html/template"
	"text/template"
)

//update:generate
type Page struct {
	text *template.Template
	html *htmltemplate.Template
	ids  []int
}
`
	root := fixture(t, map[string]string{"page.go": src})

	result, err := newRunner(root, Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	content := string(result.Files[0].Content)
	assert.Contains(t, content, "import (\n\ttemplate2 \"html/template\"\n\t\"slices\"\n\t\"text/template\"\n)\n")
	assert.Contains(t, content, "\thtml *template2.Template\n")
	assert.Contains(t, content, "\ttext *template.Template\n")

	typeCheck(t, root)
}

func TestRunner_LockVariantPassesCopylock(t *testing.T) {
	src := `package basic

import "sync"

//update:generate
type Counter struct {
	mu    sync.Mutex ` + "`update:\"group(Locked); suppress_default\"`" + `
	count int        ` + "`update:\"group(Locked)\"`" + `
}

func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.count
}
`
	root := fixture(t, map[string]string{"counter.go": src})

	result, err := newRunner(root, Options{}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Contains(t, string(result.Files[0].Content), "func (*CounterUpdateLocked) isCounterUpdate() {}")

	typeCheck(t, root)
	analysistest.Run(t, root, copylock.Analyzer, "./...")
}

func TestRunner_NoSettersConfig(t *testing.T) {
	root := fixture(t, map[string]string{"basic.go": basicSource})

	cfg, err := config.Parse([]byte(`
records:
  - type: TestStruct
    setters: false
`))
	require.NoError(t, err)

	result, err := newRunner(root, Options{Config: cfg}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	content := string(result.Files[0].Content)
	assert.Contains(t, content, "func (t *TestStruct) Apply(update TestStructUpdate) {")
	assert.NotContains(t, content, "Modify")

	typeCheck(t, root)
}

func TestRunner_TagKeyOverride(t *testing.T) {
	src := `package basic

//enum:generate
type State struct {
	a int ` + "`enum:\"group(Both)\"`" + `
	b int ` + "`enum:\"group(Both)\"`" + `
}
`
	root := fixture(t, map[string]string{"state.go": src})

	result, err := newRunner(root, Options{TagKey: "enum"}).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Contains(t, string(result.Files[0].Content), "func (s *State) ModifyBoth(a int, b int) StateUpdate {")
}

func TestDiff(t *testing.T) {
	diff, err := Diff("a.go", []byte("same\n"), []byte("same\n"))
	require.NoError(t, err)
	assert.Empty(t, diff)

	diff, err = Diff("a.go", nil, []byte("package a\n"))
	require.NoError(t, err)
	assert.Contains(t, diff, "+package a")
}
