package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	flag "github.com/spf13/pflag"

	p2p2p "github.com/alnah/go-p2p2p"
	"github.com/alnah/go-p2p2p/internal/config"
	"github.com/alnah/go-p2p2p/internal/fileutil"
	"github.com/alnah/go-p2p2p/internal/hints"
	"github.com/alnah/go-p2p2p/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrNoDiagrams         = fmt.Errorf("%w: no .puml files found", ErrNoInput)
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrLogoNotFound       = errors.New("logo image not found")
	ErrReadStdin          = errors.New("failed to read document from stdin")
)

// MaxStdinSize bounds unsaved content read with --stdin.
const MaxStdinSize = 10 << 20

// maxAutoWorkers caps the automatic worker count; each export runs a JVM.
const maxAutoWorkers = 8

// DocumentExporter is the interface for the export pipeline.
type DocumentExporter interface {
	Export(ctx context.Context, req p2p2p.Request) (*p2p2p.Result, error)
}

// Compile-time interface implementation check.
var _ DocumentExporter = (*p2p2p.Exporter)(nil)

// exporterFactory creates the exporter a worker uses for all its jobs.
type exporterFactory func(worker int) (DocumentExporter, error)

// ExportResult holds the outcome of a single export.
type ExportResult struct {
	Source   string
	PDFPath  string
	Err      error
	Duration time.Duration
}

// batchError reports failed exports that were already printed per file.
// Unwrap exposes each cause so exit codes still follow the failure kind.
type batchError struct {
	failed int
	total  int
	errs   []error
}

func (e *batchError) Error() string {
	if e.total == 1 {
		return "export failed"
	}
	return fmt.Sprintf("%d of %d export(s) failed", e.failed, e.total)
}

func (e *batchError) Unwrap() []error { return e.errs }

// runExport orchestrates the export command.
func runExport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: pass a .puml file or directory", ErrNoInput)
	}
	if flags.stdin && len(positional) != 1 {
		return fmt.Errorf("%w: --stdin needs exactly one file", ErrUsage)
	}

	cfg, err := loadSettings(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	mergeExportFlags(flags, cfg)
	cfg.Logo = strings.TrimSpace(cfg.Logo)
	if err := cfg.Validate(); err != nil {
		return err
	}

	tools := toolsFrom(cfg)
	layout := layoutFrom(cfg)
	if err := layout.Validate(); err != nil {
		return err
	}
	if cfg.Logo != "" && !fileutil.FileExists(cfg.Logo) {
		return fmt.Errorf("%w: %s%s", ErrLogoNotFound, cfg.Logo, hints.ForLogo())
	}

	docs, err := discoverDocuments(positional, flags.languageID, flags.stdin)
	if err != nil {
		return err
	}
	if flags.stdin {
		content, err := readStdin(env.Stdin)
		if err != nil {
			return err
		}
		docs[0].Dirty = true
		docs[0].Content = content
	}

	logger := logging.NewLogrusAdapter(resolveLogLevel(flags.common, cfg), resolveLogFormat(cfg), env.Stderr)
	workers := resolveWorkers(cfg.Workers, len(docs))

	opts := []p2p2p.Option{
		p2p2p.WithTools(tools),
		p2p2p.WithLayout(layout),
		p2p2p.WithTempRoot(env.TempDir),
	}
	if env.Runner != nil {
		opts = append(opts, p2p2p.WithRunner(env.Runner))
	}
	newExporter := func(worker int) (DocumentExporter, error) {
		log := logger
		if workers > 1 {
			log = logger.WithField(logging.FieldWorker, worker)
		}
		return p2p2p.NewExporter(append(slices.Clone(opts), p2p2p.WithLogger(log))...)
	}

	start := env.Now()
	logger.Debug("Starting export",
		logging.F("files", len(docs)),
		logging.F("workers", workers),
	)
	results := exportBatch(ctx, newExporter, docs, cfg.Logo, workers)
	logger.Debug("Export finished", logging.F(logging.FieldDuration, env.Now().Sub(start)))

	failed := printResults(results, flags.common, tools, env)

	if flags.open {
		openResults(ctx, results, env)
	}

	if failed > 0 {
		errs := make([]error, 0, failed)
		for _, r := range results {
			if r.Err != nil {
				errs = append(errs, r.Err)
			}
		}
		return &batchError{failed: failed, total: len(results), errs: errs}
	}
	return nil
}

// discoverDocuments expands the arguments into documents to export.
// Files are taken as given; directories contribute every .puml file below them.
func discoverDocuments(args []string, languageID string, unsaved bool) ([]*p2p2p.Document, error) {
	var docs []*p2p2p.Document

	for _, arg := range args {
		if unsaved {
			// The saver creates the file, so it may not exist yet.
			docs = append(docs, &p2p2p.Document{Path: arg, LanguageID: languageID})
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}

		if !info.IsDir() {
			docs = append(docs, &p2p2p.Document{Path: arg, LanguageID: languageID})
			continue
		}

		found := 0
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), p2p2p.PlantUMLExtension) {
				return nil
			}
			docs = append(docs, p2p2p.DocumentFromPath(path))
			found++
			return nil
		})
		if err != nil {
			return nil, err
		}
		if found == 0 {
			return nil, fmt.Errorf("%w in %s", ErrNoDiagrams, arg)
		}
	}

	return docs, nil
}

// readStdin reads unsaved document content.
func readStdin(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no stdin", ErrReadStdin)
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxStdinSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadStdin, err)
	}
	if len(data) > MaxStdinSize {
		return nil, fmt.Errorf("%w: input exceeds %d bytes", ErrReadStdin, MaxStdinSize)
	}
	return data, nil
}

// exportBatch processes documents concurrently, one exporter per worker.
// Results keep the order of docs.
func exportBatch(ctx context.Context, newExporter exporterFactory, docs []*p2p2p.Document, logo string, workers int) []ExportResult {
	if len(docs) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(docs) {
		concurrency = len(docs)
	}

	results := make([]ExportResult, len(docs))
	var wg sync.WaitGroup
	jobs := make(chan int, len(docs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			exp, err := newExporter(worker)
			if err != nil {
				// Exporter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ExportResult{Source: docs[idx].Path, Err: err}
				}
				return
			}

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ExportResult{Source: docs[idx].Path, Err: ctx.Err()}
					continue
				}
				results[idx] = exportDocument(ctx, exp, docs[idx], logo)
			}
		}(w + 1)
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// exportDocument runs a single export and returns the result.
func exportDocument(ctx context.Context, exp DocumentExporter, doc *p2p2p.Document, logo string) ExportResult {
	start := time.Now()
	result := ExportResult{Source: doc.Path}

	res, err := exp.Export(ctx, p2p2p.Request{Document: doc, Logo: logo})
	result.Duration = time.Since(start)
	if err != nil {
		result.Err = err
		return result
	}

	result.PDFPath = res.PDFPath
	return result
}

// ResultSummary holds the count of succeeded and failed exports.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed exports.
func countResults(results []ExportResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs export results and returns the failure count.
// Successes go to stdout, failures (with hints) to stderr.
func printResults(results []ExportResult, f commonFlags, tools p2p2p.Tools, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.Source, r.Err, hintFor(r.Err, tools))
			continue
		}

		if f.quiet {
			continue
		}

		if f.verbose {
			fmt.Fprintf(env.Stdout, "Exported PDF: %s (%v)\n", r.PDFPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Exported PDF: %s\n", r.PDFPath)
		}
	}

	if !f.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// hintFor picks the actionable hint matching an export error.
func hintFor(err error, tools p2p2p.Tools) string {
	var terr *p2p2p.ToolError
	isTool := errors.As(err, &terr)

	switch {
	case isTool && (errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)):
		if terr.Tool == p2p2p.ToolPDFLatex {
			return hints.ForToolNotFound("pdflatex", "pdflatex")
		}
		if tools.UsesJar() {
			return hints.ForToolNotFound("java", "java")
		}
		return hints.ForToolNotFound("plantuml", "plantuml")
	case errors.Is(err, p2p2p.ErrInvalidInput):
		return hints.ForInvalidInput()
	case errors.Is(err, p2p2p.ErrRenderFailure):
		return hints.ForRenderFailure(tools.PlantUML, tools.GraphvizDot, tools.UsesJar())
	case isTool && errors.Is(err, p2p2p.ErrCompileFailure):
		return hints.ForCompileFailure(terr.Dir)
	case errors.Is(err, p2p2p.ErrMissingOutput):
		return hints.ForCompileFailure("")
	}
	return ""
}

// openResults hands each exported PDF to the default viewer.
// Failures are reported but do not fail the command.
func openResults(ctx context.Context, results []ExportResult, env *Environment) {
	if env.Opener == nil {
		return
	}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if err := env.Opener.Open(ctx, r.PDFPath); err != nil {
			fmt.Fprintf(env.Stderr, "warning: %v\n", err)
		}
	}
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolveWorkers determines how many exports run at once.
// Priority: explicit setting > GOMAXPROCS-based calculation, never more than jobs.
func resolveWorkers(configured, jobs int) int {
	n := configured
	if n <= 0 {
		// GOMAXPROCS is adjusted by automaxprocs for containers
		n = runtime.GOMAXPROCS(0) / 2
		if n > maxAutoWorkers {
			n = maxAutoWorkers
		}
	}
	if n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}
