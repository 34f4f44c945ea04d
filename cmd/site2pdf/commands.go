package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	site2pdf "github.com/alnah/go-site2pdf"
	"github.com/alnah/go-site2pdf/internal/config"
)

// cliFlags holds flag values shared by the render-like subcommands.
type cliFlags struct {
	root        string
	configName  string
	format      string
	orientation string
	margin      float64
	debug       bool
	concurrency int
	logLevel    string
	logJSON     bool
}

// newFlagSet declares the shared flags on a fresh pflag set.
func newFlagSet(name string, env *Environment, f *cliFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(env.Stderr)

	fs.StringVarP(&f.root, "root", "r", ".", "project root shared with the site generator")
	fs.StringVarP(&f.configName, "config", "c", "", "config file name or path")
	fs.StringVar(&f.format, "format", site2pdf.FormatA4, "page format: a3, a4, a5, letter, legal")
	fs.StringVar(&f.orientation, "orientation", site2pdf.OrientationPortrait, "orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", site2pdf.DefaultMargin, "page margin in inches, all sides")
	fs.BoolVar(&f.debug, "debug", false, "capture a debug screenshot per render")
	fs.IntVarP(&f.concurrency, "concurrency", "n", 0, "renders per batch chunk (0 = default)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVar(&f.logJSON, "log-json", false, "emit JSON logs")

	return fs
}

// buildService assembles a Service from flags and the optional config file.
// Flags win over the config file; the config file wins over defaults.
func buildService(fs *pflag.FlagSet, f *cliFlags, env *Environment) (*site2pdf.Service, error) {
	cfg := config.DefaultConfig()
	if f.configName != "" {
		loaded, err := config.Load(f.configName)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	root := cfg.Root
	if fs.Changed("root") || root == "" {
		root = f.root
	}

	logCfg := cfg.Log
	if f.logLevel != "" {
		logCfg.Level = f.logLevel
	}
	if f.logJSON {
		logCfg.Format = "json"
	}
	logger := newLogger(env.Stderr, logCfg)

	opts := []site2pdf.Option{
		site2pdf.WithRoot(root),
		site2pdf.WithLogger(logger),
		site2pdf.WithTimeouts(timeoutsFromConfig(cfg.Waits)),
	}

	concurrency := cfg.Concurrency
	if f.concurrency > 0 {
		concurrency = f.concurrency
	}
	if concurrency > 0 {
		opts = append(opts, site2pdf.WithConcurrency(concurrency))
	}

	return site2pdf.NewService(opts...), nil
}

// timeoutsFromConfig maps configured wait overrides onto the library
// timeouts; zero values keep the library defaults.
func timeoutsFromConfig(w config.WaitConfig) site2pdf.Timeouts {
	return site2pdf.Timeouts{
		ContentLoad:       w.ContentLoad.Std(),
		ImageWait:         w.ImageWait.Std(),
		FontWait:          w.FontWait.Std(),
		CDNDetect:         w.CDNDetect.Std(),
		StyleProbe:        w.StyleProbe.Std(),
		PrecompiledSettle: w.PrecompiledSettle.Std(),
		CDNSettle:         w.CDNSettle.Std(),
		Scroll:            w.Scroll.Std(),
		ScrollStepDelay:   w.ScrollStepDelay.Std(),
	}
}

// renderOptions builds RenderOptions from the shared flags.
func (f *cliFlags) renderOptions() *site2pdf.RenderOptions {
	opts := site2pdf.DefaultRenderOptions()
	opts.PageFormat = f.format
	opts.Orientation = f.orientation
	opts.Margins = site2pdf.UniformMargins(f.margin)
	opts.Debug = f.debug
	return opts
}

// runRenderCmd renders a single subject end to end.
func runRenderCmd(args []string, env *Environment) int {
	var f cliFlags
	fs := newFlagSet("render", env, &f)
	fs.Usage = func() {
		fmt.Fprintln(env.Stderr, "Usage: site2pdf render <subject> [flags]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return ExitUsage
	}

	svc, err := buildService(fs, &f, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	defer svc.Close()

	job := svc.RenderSubject(context.Background(), fs.Arg(0), f.renderOptions())
	if job.Err != nil {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", job.SubjectID, job.Err)
		return exitCodeFor(job.Err)
	}

	fmt.Fprintf(env.Stdout, "Created %s (%d bytes, %s, %v)\n",
		job.Artifact.Path, job.Result.SizeBytes, job.Result.StyleMethod,
		job.Result.Duration.Round(time.Millisecond))
	return ExitSuccess
}

// runBatchCmd renders many subjects with chunked concurrency.
func runBatchCmd(args []string, env *Environment) int {
	var f cliFlags
	fs := newFlagSet("batch", env, &f)
	fs.Usage = func() {
		fmt.Fprintln(env.Stderr, "Usage: site2pdf batch <subject>... [flags]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return ExitUsage
	}

	svc, err := buildService(fs, &f, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	defer svc.Close()

	results := svc.RenderBatch(context.Background(), fs.Args(), f.renderOptions())

	succeeded, failed := 0, 0
	for _, job := range results {
		if job.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", job.SubjectID, job.Err)
			continue
		}
		succeeded++
		fmt.Fprintf(env.Stdout, "Created %s (%d bytes)\n", job.Artifact.Path, job.Result.SizeBytes)
	}

	if len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}
	if failed > 0 {
		return ExitGeneral
	}
	return ExitSuccess
}

// runStatusCmd prints the latest artifact of a subject.
func runStatusCmd(args []string, env *Environment) int {
	var f cliFlags
	fs := newFlagSet("status", env, &f)
	fs.Usage = func() {
		fmt.Fprintln(env.Stderr, "Usage: site2pdf status <subject> [flags]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return ExitUsage
	}

	svc, err := buildService(fs, &f, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	defer svc.Close()

	record, err := svc.Status(fs.Arg(0))
	if err != nil {
		if errors.Is(err, site2pdf.ErrNoArtifacts) {
			fmt.Fprintf(env.Stdout, "%s: no artifacts\n", fs.Arg(0))
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	fmt.Fprintf(env.Stdout, "%s: %s (%d bytes, modified %s, %d versions)\n",
		record.SubjectID, record.Filename, record.SizeBytes,
		record.ModifiedAt.Format(time.RFC3339), record.TotalVersions)
	for _, v := range record.AllVersions {
		fmt.Fprintf(env.Stdout, "  %s\n", v)
	}
	return ExitSuccess
}
