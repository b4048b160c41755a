// Package p2p2p exports PlantUML diagrams to PDF through PlantUML, Graphviz and pdflatex.
//
// # Quick Start
//
//	exp, err := p2p2p.NewExporter(
//	    p2p2p.WithTools(p2p2p.Tools{PlantUML: "/opt/plantuml.jar"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := exp.Export(ctx, p2p2p.Request{
//	    Document: p2p2p.DocumentFromPath("docs/login.puml"),
//	    Logo:     "assets/logo.png",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.PDFPath) // absolute path of docs/login.pdf
//
// # Export Pipeline
//
// Each export runs these steps in order and stops at the first failure:
//
//  1. Validate the document (saved, .puml or plantuml language) and save pending edits
//  2. Create a fresh scratch directory under the temp root
//  3. Render a PNG: java -jar plantuml.jar -tpng -graphvizdot <dot> -o <scratch> <source>
//  4. Write document.tex embedding the optional logo and the PNG
//  5. Compile: pdflatex -interaction=nonstopmode -halt-on-error document.tex
//  6. Copy document.pdf next to the source as <stem>.pdf
//
// Failures are reported as ErrInvalidInput, ErrRenderFailure, ErrCompileFailure
// or ErrMissingOutput (check with errors.Is). Tool failures are *ToolError values
// carrying the captured standard error.
//
// # Testing
//
// Supply a fake CommandRunner with WithRunner to exercise the pipeline without
// spawning processes.
package p2p2p
