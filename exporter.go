package p2p2p

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-p2p2p/internal/fileutil"
	"github.com/alnah/go-p2p2p/internal/logging"
)

// Tool names used in logs and ToolError.
const (
	ToolPlantUML = "plantuml"
	ToolPDFLatex = "pdflatex"
)

// scratchPattern names the per-export temp directory.
const scratchPattern = "p2p2p-*"

// compilerLogTail is how many trailing stdout lines stand in for an empty stderr.
const compilerLogTail = 20

// Request describes one export.
type Request struct {
	Document *Document
	Logo     string // optional image placed above the diagram
}

// Result describes a finished export.
type Result struct {
	PDFPath    string // published PDF next to the source
	PNGPath    string // rendered diagram inside ScratchDir
	ScratchDir string // left in place for inspection
	Duration   time.Duration
}

// Exporter runs the PlantUML → PNG → LaTeX → PDF pipeline.
// An Exporter holds no per-export state and is safe for concurrent use.
type Exporter struct {
	tools    Tools
	layout   Layout
	runner   CommandRunner
	saver    Saver
	log      logging.Logger
	tempRoot string
	now      func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithTools sets the external tool locations. Blank fields use DefaultTools.
func WithTools(t Tools) Option {
	return func(e *Exporter) { e.tools = t.WithDefaults() }
}

// WithLayout sets page layout. Zero fields use DefaultLayout.
func WithLayout(l Layout) Option {
	return func(e *Exporter) { e.layout = l.WithDefaults() }
}

// WithRunner replaces the process runner, typically with a fake in tests.
func WithRunner(r CommandRunner) Option {
	return func(e *Exporter) { e.runner = r }
}

// WithSaver sets how dirty documents are persisted before export.
func WithSaver(s Saver) Option {
	return func(e *Exporter) { e.saver = s }
}

// WithLogger sets the progress log.
func WithLogger(l logging.Logger) Option {
	return func(e *Exporter) { e.log = l }
}

// WithTempRoot sets the directory scratch workspaces are created in.
// Empty means os.TempDir().
func WithTempRoot(dir string) Option {
	return func(e *Exporter) { e.tempRoot = dir }
}

// NewExporter creates an Exporter with default tools, layout and an os/exec runner.
// Returns ErrInvalidLayout if the configured layout cannot be typeset.
func NewExporter(opts ...Option) (*Exporter, error) {
	e := &Exporter{
		tools:  DefaultTools(),
		layout: DefaultLayout(),
		runner: &ExecRunner{},
		saver:  FileSaver{},
		log:    logging.NewNopLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.layout.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Tools returns the resolved tool locations.
func (e *Exporter) Tools() Tools { return e.tools }

// Export renders req.Document to PDF and copies it next to the source.
// Any failure aborts the remaining steps; nothing is retried and the
// scratch directory is never removed.
func (e *Exporter) Export(ctx context.Context, req Request) (*Result, error) {
	start := e.now()

	src, err := e.prepareSource(ctx, req.Document)
	if err != nil {
		return nil, err
	}
	log := e.log.WithField(logging.FieldSource, src)

	logo, err := resolveLogo(req.Logo)
	if err != nil {
		return nil, err
	}

	scratch, err := e.createScratch()
	if err != nil {
		return nil, err
	}
	log.Info("Using temporary directory", logging.F(logging.FieldScratch, scratch))

	png, err := e.render(ctx, log, scratch, src)
	if err != nil {
		return nil, err
	}

	if err := e.writeDocument(log, scratch, logo, png); err != nil {
		return nil, err
	}

	pdf, err := e.compile(ctx, log, scratch)
	if err != nil {
		return nil, err
	}

	final := fileutil.ReplaceExt(src, ".pdf")
	if err := fileutil.CopyFile(pdf, final); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPublish, err)
	}
	log.Info("PDF saved", logging.F(logging.FieldOutput, final))

	return &Result{
		PDFPath:    final,
		PNGPath:    png,
		ScratchDir: scratch,
		Duration:   e.now().Sub(start),
	}, nil
}

// prepareSource validates doc, saves pending edits and returns its absolute path.
func (e *Exporter) prepareSource(ctx context.Context, doc *Document) (string, error) {
	if err := ValidateDocument(doc); err != nil {
		return "", err
	}
	if doc.Dirty {
		if err := e.saver.Save(ctx, doc); err != nil {
			return "", err
		}
	}

	src, err := filepath.Abs(doc.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !fileutil.FileExists(src) {
		return "", fmt.Errorf("%w: %s", ErrSourceMissing, src)
	}
	return src, nil
}

// resolveLogo makes the logo path absolute since pdflatex runs inside the scratch dir.
func resolveLogo(logo string) (string, error) {
	logo = strings.TrimSpace(logo)
	if logo == "" {
		return "", nil
	}
	abs, err := filepath.Abs(logo)
	if err != nil {
		return "", fmt.Errorf("%w: logo path: %v", ErrInvalidInput, err)
	}
	return abs, nil
}

func (e *Exporter) createScratch() (string, error) {
	dir, err := os.MkdirTemp(e.tempRoot, scratchPattern)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrScratchDir, err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrScratchDir, err)
	}
	return abs, nil
}

// render runs PlantUML and returns the PNG it produced.
func (e *Exporter) render(ctx context.Context, log logging.Logger, scratch, src string) (string, error) {
	cmd := e.tools.rendererCommand(scratch, src)
	log.Info("Generating PNG with PlantUML...", logging.F(logging.FieldCommand, cmd.String()))

	res, err := e.runner.Run(ctx, cmd)
	if err != nil {
		terr := &ToolError{Kind: ErrRenderFailure, Tool: ToolPlantUML, Output: stderrOf(res), Dir: scratch, Err: err}
		logToolError(log, terr)
		return "", terr
	}

	png, err := fileutil.FindByExt(scratch, ".png")
	if err != nil {
		return "", fmt.Errorf("%w: reading scratch directory: %v", ErrRenderFailure, err)
	}
	if png == "" {
		log.Error("PlantUML did not generate a PNG file")
		return "", fmt.Errorf("%w: PlantUML did not generate a PNG file", ErrRenderFailure)
	}
	log.Info("PNG generated", logging.F(logging.FieldOutput, png))
	return png, nil
}

// writeDocument references the PNG by base name; pdflatex runs inside
// scratch, whose path may contain TeX special characters.
func (e *Exporter) writeDocument(log logging.Logger, scratch, logo, png string) error {
	content, err := BuildDocument(e.layout, logo, filepath.Base(png))
	if err != nil {
		return err
	}
	texPath := filepath.Join(scratch, TexFileName)
	if err := os.WriteFile(texPath, []byte(content), fileutil.FilePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDocument, err)
	}
	log.Info("LaTeX file created", logging.F(logging.FieldOutput, texPath))
	return nil
}

// compile runs pdflatex in scratch and returns the compiled PDF path.
func (e *Exporter) compile(ctx context.Context, log logging.Logger, scratch string) (string, error) {
	cmd := e.tools.compilerCommand(scratch, TexFileName)
	log.Info("Compiling PDF with pdflatex...", logging.F(logging.FieldCommand, cmd.String()))

	res, err := e.runner.Run(ctx, cmd)
	if err != nil {
		output := stderrOf(res)
		if output == "" && res != nil {
			// pdflatex reports TeX errors on stdout.
			output = tailLines(res.Stdout, compilerLogTail)
		}
		terr := &ToolError{Kind: ErrCompileFailure, Tool: ToolPDFLatex, Output: output, Dir: scratch, Err: err}
		logToolError(log, terr)
		return "", terr
	}

	pdf := filepath.Join(scratch, PDFFileName)
	if !fileutil.FileExists(pdf) {
		log.Error("Expected PDF was not generated", logging.F(logging.FieldOutput, pdf))
		return "", fmt.Errorf("%w: %s", ErrMissingOutput, pdf)
	}
	return pdf, nil
}

func logToolError(log logging.Logger, terr *ToolError) {
	output := terr.Output
	if strings.TrimSpace(output) == "" && terr.Err != nil {
		output = terr.Err.Error()
	}
	log.WithError(terr.Err).Error(fmt.Sprintf("%s error", terr.Tool),
		logging.F(logging.FieldTool, terr.Tool),
		logging.F(logging.FieldStderr, output),
	)
}

func stderrOf(res *CommandResult) string {
	if res == nil {
		return ""
	}
	return strings.TrimSpace(res.Stderr)
}

func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
