//go:build windows

package p2p2p

// Platform tool defaults.
const (
	DefaultJava            = "java"
	DefaultPlantUMLPath    = `C:\Tools\plantuml.jar`
	DefaultGraphvizDotPath = `C:\Program Files\Graphviz\bin\dot.exe`
	DefaultPDFLatex        = "pdflatex"
)
