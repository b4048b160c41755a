package p2p2p

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidLayout is returned when a layout setting cannot be typeset.
var ErrInvalidLayout = errors.New("invalid layout")

// Tools locates the external programs the export shells out to.
// Blank fields fall back to the platform defaults; paths are not checked
// up front, a wrong one surfaces as a render or compile failure.
type Tools struct {
	Java        string // java launcher, used when PlantUML is a .jar
	PlantUML    string // plantuml.jar or a plantuml executable
	GraphvizDot string // Graphviz dot binary passed to PlantUML
	PDFLatex    string // pdflatex executable
}

// DefaultTools returns the built-in tool locations for this platform.
func DefaultTools() Tools {
	return Tools{
		Java:        DefaultJava,
		PlantUML:    DefaultPlantUMLPath,
		GraphvizDot: DefaultGraphvizDotPath,
		PDFLatex:    DefaultPDFLatex,
	}
}

// WithDefaults returns a copy of t where blank fields use DefaultTools.
func (t Tools) WithDefaults() Tools {
	d := DefaultTools()
	return Tools{
		Java:        orDefault(t.Java, d.Java),
		PlantUML:    orDefault(t.PlantUML, d.PlantUML),
		GraphvizDot: orDefault(t.GraphvizDot, d.GraphvizDot),
		PDFLatex:    orDefault(t.PDFLatex, d.PDFLatex),
	}
}

// UsesJar reports whether PlantUML must be launched through java -jar.
func (t Tools) UsesJar() bool {
	return strings.EqualFold(filepath.Ext(t.PlantUML), ".jar")
}

// rendererCommand builds the PlantUML invocation that writes a PNG of src into outDir.
func (t Tools) rendererCommand(outDir, src string) Command {
	args := []string{"-tpng", "-graphvizdot", t.GraphvizDot, "-o", outDir, src}
	if t.UsesJar() {
		return Command{Name: t.Java, Args: append([]string{"-jar", t.PlantUML}, args...)}
	}
	return Command{Name: t.PlantUML, Args: args}
}

// compilerCommand builds the pdflatex invocation for texFile inside dir.
func (t Tools) compilerCommand(dir, texFile string) Command {
	return Command{
		Name:      t.PDFLatex,
		Args:      []string{"-interaction=nonstopmode", "-halt-on-error", texFile},
		Dir:       dir,
		MaxOutput: DefaultMaxOutput,
	}
}

// Layout defaults.
const (
	DefaultLogoWidth    = "4cm"
	DefaultDiagramWidth = 0.6
	DefaultMargin       = "1in"
	DefaultLogoGap      = "1em"
)

// Layout controls how the diagram and logo are placed on the page.
type Layout struct {
	LogoWidth    string  // TeX dimension, e.g. "4cm"
	DiagramWidth float64 // fraction of \linewidth, in (0, 1]
	Margin       string  // page margin for the geometry package
	LogoGap      string  // vertical space between logo and diagram
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() Layout {
	return Layout{
		LogoWidth:    DefaultLogoWidth,
		DiagramWidth: DefaultDiagramWidth,
		Margin:       DefaultMargin,
		LogoGap:      DefaultLogoGap,
	}
}

// WithDefaults returns a copy of l where zero fields use DefaultLayout.
func (l Layout) WithDefaults() Layout {
	d := DefaultLayout()
	out := Layout{
		LogoWidth:    orDefault(l.LogoWidth, d.LogoWidth),
		DiagramWidth: l.DiagramWidth,
		Margin:       orDefault(l.Margin, d.Margin),
		LogoGap:      orDefault(l.LogoGap, d.LogoGap),
	}
	if out.DiagramWidth == 0 {
		out.DiagramWidth = d.DiagramWidth
	}
	return out
}

var texDimension = regexp.MustCompile(`^\d+(\.\d+)?(pt|mm|cm|in|em|ex|bp|pc|dd|cc|sp)$`)

// Validate checks that every field is something pdflatex accepts.
func (l Layout) Validate() error {
	if l.DiagramWidth <= 0 || l.DiagramWidth > 1 {
		return fmt.Errorf("%w: diagram width must be in (0, 1], got %g", ErrInvalidLayout, l.DiagramWidth)
	}
	for _, f := range []struct{ name, value string }{
		{"logo width", l.LogoWidth},
		{"margin", l.Margin},
		{"logo gap", l.LogoGap},
	} {
		if !texDimension.MatchString(f.value) {
			return fmt.Errorf("%w: %s %q is not a TeX dimension (e.g. 4cm, 1in)", ErrInvalidLayout, f.name, f.value)
		}
	}
	return nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
