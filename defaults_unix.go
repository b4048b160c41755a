//go:build !windows

package p2p2p

// Platform tool defaults.
const (
	DefaultJava            = "java"
	DefaultPlantUMLPath    = "/usr/share/plantuml/plantuml.jar"
	DefaultGraphvizDotPath = "/usr/bin/dot"
	DefaultPDFLatex        = "pdflatex"
)
