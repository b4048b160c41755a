package p2p2p

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for export operations.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrRenderFailure  = errors.New("failed to generate PNG with PlantUML")
	ErrCompileFailure = errors.New("failed to compile PDF with LaTeX")
	ErrMissingOutput  = errors.New("expected PDF was not generated")

	// I/O errors around the scratch workspace and the published result.
	ErrScratchDir    = errors.New("failed to create scratch directory")
	ErrWriteDocument = errors.New("failed to write LaTeX document")
	ErrPublish       = errors.New("failed to copy PDF next to source file")
	ErrSaveDocument  = errors.New("failed to save document")
)

// Input validation errors. Each wraps ErrInvalidInput.
var (
	ErrNoDocument    = fmt.Errorf("%w: no active document, open a .puml file first", ErrInvalidInput)
	ErrUntitled      = fmt.Errorf("%w: please save the .puml file before exporting", ErrInvalidInput)
	ErrNotDiagram    = fmt.Errorf("%w: this is not a PlantUML (.puml) file", ErrInvalidInput)
	ErrSourceMissing = fmt.Errorf("%w: source file does not exist", ErrInvalidInput)
)

// ToolError reports a failed external tool invocation.
// Kind is one of ErrRenderFailure or ErrCompileFailure.
type ToolError struct {
	Kind   error
	Tool   string
	Output string // captured standard error, or standard output when stderr was empty
	Dir    string // scratch directory the tool ran against
	Err    error
}

func (e *ToolError) Error() string {
	detail := strings.TrimSpace(e.Output)
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	if detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, detail)
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is.
func (e *ToolError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
