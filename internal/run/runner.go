package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"enum-update-generator/internal/analyze"
	"enum-update-generator/internal/annotate"
	"enum-update-generator/internal/config"
	"enum-update-generator/internal/diagnostic"
	"enum-update-generator/internal/gen"
	"enum-update-generator/internal/group"
	"enum-update-generator/internal/model"
)

var (
	// ErrRecordNotFound: a requested struct exists in none of the loaded packages.
	ErrRecordNotFound = errors.New("record not found")
	// ErrOutputAmbiguous: an output file name was given for several records.
	ErrOutputAmbiguous = errors.New("output name needs exactly one record")
	// ErrStale: check mode found generated files that differ from disk.
	ErrStale = errors.New("generated files are out of date")
)

// Options configures a Runner.
type Options struct {
	// Dir is the directory patterns are resolved from.
	Dir string
	// Patterns select the packages to load.
	Patterns []string
	// Types names the records to generate. When empty, the configured
	// records are used, then records marked with the generate directive.
	Types []string
	// Config is the parsed configuration file, nil for defaults.
	Config *config.File
	// TagKey overrides the configured tag key when set.
	TagKey string
	// Runtime overrides the configured runtime import path when non-nil.
	Runtime *string
	// Output overrides the generated file name of the single selected record.
	Output string
	// Check compares instead of writing.
	Check bool
	// Debug receives a dump of every record's groups when non-nil.
	Debug io.Writer
	// Concurrency bounds parallel synthesis. Zero means GOMAXPROCS.
	Concurrency int
}

// Result is the outcome of a run.
type Result struct {
	Files       []gen.GeneratedFile
	Diagnostics diagnostic.Diagnostics
	// Diffs holds one unified diff per stale file in check mode.
	Diffs []string
}

// Runner executes the generation pipeline.
type Runner struct {
	log    *zap.Logger
	opts   Options
	cfg    *config.File
	loader *analyze.Loader
}

// NewRunner creates a Runner. A nil logger disables logging.
func NewRunner(log *zap.Logger, opts Options) *Runner {
	if log == nil {
		log = zap.NewNop()
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = &config.File{Version: config.CurrentVersion, Tag: annotate.DefaultTagKey}
	}

	return &Runner{
		log:    log,
		opts:   opts,
		cfg:    cfg,
		loader: analyze.NewLoader(opts.Dir),
	}
}

// job is one record scheduled for generation.
type job struct {
	pkg    *analyze.Package
	record *analyze.RawRecord
	entry  *config.Record
}

// outcome is the result of one job.
type outcome struct {
	file  *gen.GeneratedFile
	diags diagnostic.Diagnostics
	dump  string
	err   error
}

// Run loads the packages, generates every selected record and writes or
// checks the output. Records that fail do not stop the others: each failure
// becomes an error diagnostic, and the returned error joins them in record
// order.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	pkgs, err := r.loader.LoadPackages(ctx, r.opts.Patterns...)
	if err != nil {
		return nil, err
	}

	jobs, err := r.selectRecords(pkgs)
	if err != nil {
		return nil, err
	}

	r.log.Debug("selected records", zap.Int("packages", len(pkgs)), zap.Int("records", len(jobs)))

	outcomes, err := r.generate(ctx, jobs)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	for i, o := range outcomes {
		if r.opts.Debug != nil {
			_, _ = io.WriteString(r.opts.Debug, o.dump)
		}

		result.Diagnostics.Merge(o.diags)

		if o.err != nil {
			result.Diagnostics.Add(failure(jobs[i].record, o.err))

			continue
		}

		result.Files = append(result.Files, *o.file)
	}

	var fatal error

	if r.opts.Check {
		fatal = r.check(result)
	} else if fatal = gen.WriteFiles(result.Files); fatal == nil {
		for _, f := range result.Files {
			r.log.Info("generated", zap.String("file", f.Path()))
		}
	}

	r.logDiagnostics(&result.Diagnostics)

	return result, errors.Join(result.Diagnostics.Error(), fatal)
}

// failure turns the error of one record into an error diagnostic placed at
// the offending annotation when known.
func failure(rec *analyze.RawRecord, err error) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     diagnostic.CodeRecordFailed,
		Message:  err.Error(),
		Pos:      rec.Pos,
		Err:      err,
	}

	var extractErr *annotate.Error
	if errors.As(err, &extractErr) {
		d.Message = extractErr.Reason()
		d.Record = extractErr.Record
		d.Field = extractErr.Field

		if extractErr.Pos.IsValid() {
			d.Pos = extractErr.Pos
		}
	}

	return d
}

// selectRecords picks the records to generate from every package, in
// package then declaration order.
func (r *Runner) selectRecords(pkgs []*analyze.Package) ([]job, error) {
	names := r.opts.Types
	if len(names) == 0 {
		names = r.cfg.Names()
	}

	var jobs []job

	found := make(map[string]bool, len(names))

	for _, pkg := range pkgs {
		for _, rec := range pkg.Records {
			entry := r.cfg.Lookup(pkg.Path, rec.Name)

			var selected bool
			if len(names) > 0 {
				selected = slices.Contains(names, rec.Name) && (entry != nil || len(r.opts.Types) > 0)
			} else {
				selected = annotate.Marked(rec.Doc, annotate.Options{TagKey: r.tagKey()})
			}

			if !selected {
				continue
			}

			found[rec.Name] = true
			jobs = append(jobs, job{pkg: pkg, record: rec, entry: entry})
		}
	}

	for _, name := range names {
		if !found[name] {
			return nil, fmt.Errorf("%s: %w", name, ErrRecordNotFound)
		}
	}

	if r.opts.Output != "" && len(jobs) != 1 {
		return nil, fmt.Errorf("%w: %d selected", ErrOutputAmbiguous, len(jobs))
	}

	return jobs, nil
}

// generate runs every job with bounded parallelism. Outcomes keep job order.
func (r *Runner) generate(ctx context.Context, jobs []job) ([]outcome, error) {
	limit := r.opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]outcome, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			outcomes[i] = r.generateRecord(jobs[i])

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

// generateRecord extracts, aggregates, synthesizes and renders one record.
func (r *Runner) generateRecord(j job) outcome {
	var o outcome

	desc, err := annotate.Record(j.record, j.entry.Options(r.tagKey()))
	if err != nil {
		o.err = err

		return o
	}

	groups := group.Aggregate(desc.Fields)

	if r.opts.Debug != nil {
		o.dump = spew.Sdump(desc.Name, groups)
	}

	artifacts, diags, err := gen.Synthesize(desc, groups, gen.Options{Runtime: r.runtime()})
	o.diags = diags

	if err != nil {
		o.err = err

		return o
	}

	filename := r.filename(j)

	content, err := gen.Render(artifacts, j.pkg.Name)
	if err != nil {
		if errors.Is(err, gen.ErrFormat) {
			_ = gen.WriteDebugUnformatted(j.pkg.Dir, filename, content)
		}

		o.err = fmt.Errorf("%s: %w", desc.Name, err)

		return o
	}

	o.file = &gen.GeneratedFile{Dir: j.pkg.Dir, Filename: filename, Content: content}

	return o
}

// check compares generated files with disk and records a diff and an error
// diagnostic per stale file.
func (r *Runner) check(result *Result) error {
	for _, f := range result.Files {
		current, err := os.ReadFile(f.Path())
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", f.Path(), err)
		}

		diff, err := Diff(f.Path(), current, f.Content)
		if err != nil {
			return err
		}

		if diff == "" {
			r.log.Debug("up to date", zap.String("file", f.Path()))

			continue
		}

		result.Diffs = append(result.Diffs, diff)
		result.Diagnostics.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticError,
			Code:     diagnostic.CodeStaleFile,
			Message:  f.Path() + " is out of date",
			Err:      fmt.Errorf("%s: %w", f.Path(), ErrStale),
		})
	}

	return nil
}

func (r *Runner) logDiagnostics(d *diagnostic.Diagnostics) {
	for _, diag := range d.All() {
		fields := []zap.Field{zap.String("code", diag.Code)}
		if subject := diag.Subject(); subject != "" {
			fields = append(fields, zap.String("subject", subject))
		}

		if diag.Pos.IsValid() {
			fields = append(fields, zap.Stringer("pos", diag.Pos))
		}

		switch diag.Severity {
		case diagnostic.DiagnosticError:
			r.log.Error(diag.Message, fields...)
		case diagnostic.DiagnosticWarning:
			r.log.Warn(diag.Message, fields...)
		default:
			r.log.Info(diag.Message, fields...)
		}
	}
}

func (r *Runner) tagKey() string {
	if r.opts.TagKey != "" {
		return r.opts.TagKey
	}

	return r.cfg.Tag
}

func (r *Runner) runtime() string {
	if r.opts.Runtime != nil {
		return *r.opts.Runtime
	}

	return r.cfg.RuntimePath()
}

func (r *Runner) filename(j job) string {
	switch {
	case r.opts.Output != "":
		return r.opts.Output
	case j.entry != nil && j.entry.Output != "":
		return j.entry.Output
	default:
		return model.SnakeCase(j.record.Name) + gen.FileSuffix
	}
}
