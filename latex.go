package p2p2p

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"

	"github.com/alnah/go-p2p2p/internal/fileutil"
)

// File names inside the scratch directory.
const (
	TexFileName = "document.tex"
	PDFFileName = "document.pdf"
)

// LaTeX braces collide with the default {{ }} delimiters.
var documentTemplate = template.Must(template.New("document").Delims("<<", ">>").Parse(`\documentclass{article}
\usepackage{graphicx}
\usepackage[margin=<<.Margin>>]{geometry}
\begin{document}

\begin{center}
<<- if .Logo>>
\includegraphics[width=<<.LogoWidth>>]{<<.Logo>>}\\[<<.LogoGap>>]
<<- end>>
\includegraphics[width=<<.DiagramWidth>>\linewidth]{<<.Diagram>>}
\end{center}

\end{document}
`))

type documentData struct {
	Margin       string
	Logo         string
	LogoWidth    string
	LogoGap      string
	Diagram      string
	DiagramWidth string
}

// BuildDocument returns a LaTeX document centering the diagram image, with
// the logo above it when logo is non-empty. diagram is resolved against the
// directory pdflatex runs in. Paths are written with forward slashes, which
// pdflatex requires on every platform.
func BuildDocument(layout Layout, logo, diagram string) (string, error) {
	layout = layout.WithDefaults()
	if err := layout.Validate(); err != nil {
		return "", err
	}

	data := documentData{
		Margin:       layout.Margin,
		Logo:         fileutil.ToSlash(logo),
		LogoWidth:    layout.LogoWidth,
		LogoGap:      layout.LogoGap,
		Diagram:      fileutil.ToSlash(diagram),
		DiagramWidth: strconv.FormatFloat(layout.DiagramWidth, 'f', -1, 64),
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering LaTeX template: %w", err)
	}
	return buf.String(), nil
}
