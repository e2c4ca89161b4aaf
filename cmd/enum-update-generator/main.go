// Package main provides the CLI entrypoint for enum-update-generator.
//
// enum-update-generator reads Go structs whose fields carry group
// annotations and writes, next to each struct:
//   - a sealed <Record>Update union with one variant per group
//   - an Apply method applying any variant to the struct
//   - Modify<Group> setters returning the update they performed
//
// Usage:
//
//	//go:generate go run enum-update-generator/cmd/enum-update-generator -type=TestStruct
//
// Start a configuration file with:
//
//	enum-update-generator -init -config enumupdate.yaml -type=TestStruct,Inventory
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"enum-update-generator/internal/config"
	"enum-update-generator/internal/run"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("enum-update-generator", flag.ContinueOnError)
	fs.SetOutput(stderr)

	pkg := fs.String("pkg", ".", "comma-separated package patterns to load")
	types := fs.String("type", "", "comma-separated struct names (default: configured or //update:generate records)")
	configPath := fs.String("config", "", "path to a YAML configuration file")
	tag := fs.String("tag", "", "struct tag key and directive prefix (default \"update\")")
	output := fs.String("output", "", "output file name for a single struct")
	check := fs.Bool("check", false, "report stale files as unified diffs instead of writing them")
	debug := fs.Bool("debug", false, "dump the computed groups of every struct")
	runtimePath := fs.String("runtime", config.DefaultRuntime, "import path of the runtime package; empty disables the Applier assertion")
	verbose := fs.Bool("v", false, "verbose logging")
	initConfig := fs.Bool("init", false, "write -config with an entry per -type and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := newLogger(*verbose, stderr)
	defer func() { _ = log.Sync() }()

	var runtimeOverride *string

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "runtime" {
			runtimeOverride = runtimePath
		}
	})

	if *initConfig {
		return writeConfig(log, *configPath, splitList(*types), *tag, runtimeOverride)
	}

	opts := run.Options{
		Patterns: splitList(*pkg),
		Types:    splitList(*types),
		TagKey:   *tag,
		Runtime:  runtimeOverride,
		Output:   *output,
		Check:    *check,
	}

	if *configPath != "" {
		cfg, err := config.LoadFile(*configPath)
		if err != nil {
			log.Error("config", zap.Error(err))

			return 1
		}

		opts.Config = cfg
	}

	if *debug {
		opts.Debug = stdout
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := run.NewRunner(log, opts).Run(ctx)
	if result == nil {
		log.Error("generation failed", zap.Error(err))

		return 1
	}

	for _, d := range result.Diffs {
		fmt.Fprint(stdout, d)
	}

	// Record failures were logged one by one by the runner.
	if result.Diagnostics.HasErrors() {
		msg := "generation failed"
		if errors.Is(err, run.ErrStale) {
			msg = "check failed"
		}

		log.Error(msg, zap.Int("errors", len(result.Diagnostics.Errors)))

		return 1
	}

	if err != nil {
		log.Error("generation failed", zap.Error(err))

		return 1
	}

	return 0
}

// writeConfig creates or extends the configuration file at path with an
// entry per type name.
func writeConfig(log *zap.Logger, path string, types []string, tag string, runtime *string) int {
	if path == "" {
		log.Error("-init needs -config")

		return 2
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		log.Error("config", zap.Error(err))

		return 1
	}

	added := cfg.Ensure(types...)

	if tag != "" {
		cfg.Tag = tag
	}

	if runtime != nil {
		cfg.Runtime = runtime
	}

	if err := config.WriteFile(cfg, path); err != nil {
		log.Error("config", zap.Error(err))

		return 1
	}

	log.Info("wrote config", zap.String("path", path), zap.Int("added", added))

	return 0
}

// newLogger builds a console logger writing to w.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = ""
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	if verbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}

	enc := zapcore.NewConsoleEncoder(cfg.EncoderConfig)
	core := zapcore.NewCore(enc, zapcore.AddSync(w), cfg.Level)

	return zap.New(core)
}

func splitList(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
