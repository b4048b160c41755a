package p2p2p_test

import (
	"fmt"
	"strings"

	p2p2p "github.com/alnah/go-p2p2p"
)

// ExampleShowExportAction shows which documents offer the export action.
func ExampleShowExportAction() {
	fmt.Println(p2p2p.ShowExportAction(p2p2p.DocumentFromPath("diagrams/login.puml")))
	fmt.Println(p2p2p.ShowExportAction(&p2p2p.Document{Path: "notes.txt", LanguageID: "plantuml"}))
	fmt.Println(p2p2p.ShowExportAction(&p2p2p.Document{Path: "notes.txt"}))
	fmt.Println(p2p2p.ShowExportAction(&p2p2p.Document{Path: "login.puml", Untitled: true}))
	fmt.Println(p2p2p.ShowExportAction(nil))
	// Output:
	// true
	// true
	// false
	// false
	// false
}

// ExampleBuildDocument prints the image lines of the generated LaTeX page.
func ExampleBuildDocument() {
	tex, err := p2p2p.BuildDocument(p2p2p.DefaultLayout(), "/brand/logo.png", "login.png")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, line := range strings.Split(tex, "\n") {
		if strings.Contains(line, "includegraphics") {
			fmt.Println(line)
		}
	}
	// Output:
	// \includegraphics[width=4cm]{/brand/logo.png}\\[1em]
	// \includegraphics[width=0.6\linewidth]{login.png}
}

// ExampleNewExporter shows how blank tool settings fall back to defaults.
func ExampleNewExporter() {
	exp, err := p2p2p.NewExporter(
		p2p2p.WithTools(p2p2p.Tools{PlantUML: "/opt/plantuml/plantuml.jar"}),
		p2p2p.WithLayout(p2p2p.Layout{DiagramWidth: 0.8}),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	tools := exp.Tools()
	fmt.Println(tools.PlantUML, tools.UsesJar())
	fmt.Println(tools.PDFLatex)
	// Output:
	// /opt/plantuml/plantuml.jar true
	// pdflatex
}
