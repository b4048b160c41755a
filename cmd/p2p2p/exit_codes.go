package main

import (
	"errors"
	"os"

	p2p2p "github.com/alnah/go-p2p2p"
	"github.com/alnah/go-p2p2p/internal/config"
)

// Exit codes for p2p2p CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful export
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input document
	ExitIO      = 3 // File not found, permission denied
	ExitRender  = 4 // PlantUML failed to produce a PNG
	ExitCompile = 5 // pdflatex failed or produced no PDF
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Tool errors first: a missing executable is a render/compile failure, not I/O
	if errors.Is(err, p2p2p.ErrRenderFailure) {
		return ExitRender
	}
	if errors.Is(err, p2p2p.ErrCompileFailure) ||
		errors.Is(err, p2p2p.ErrMissingOutput) {
		return ExitCompile
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, p2p2p.ErrInvalidInput) ||
		errors.Is(err, p2p2p.ErrInvalidLayout) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrLogoNotFound) ||
		errors.Is(err, ErrReadStdin) ||
		errors.Is(err, p2p2p.ErrScratchDir) ||
		errors.Is(err, p2p2p.ErrWriteDocument) ||
		errors.Is(err, p2p2p.ErrPublish) ||
		errors.Is(err, p2p2p.ErrSaveDocument) {
		return ExitIO
	}

	return ExitGeneral
}
