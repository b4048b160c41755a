package main

// Notes:
// - exitCodeFor: we test sentinel errors from p2p2p and config packages,
//   plus wrapped errors to verify errors.Is() chain works correctly.

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"

	p2p2p "github.com/alnah/go-p2p2p"
	"github.com/alnah/go-p2p2p/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Tool errors (exit 4, 5)
		{"render failure", p2p2p.ErrRenderFailure, ExitRender},
		{"render tool missing", &p2p2p.ToolError{Kind: p2p2p.ErrRenderFailure, Err: &exec.Error{Name: "java", Err: exec.ErrNotFound}}, ExitRender},
		{"render binary path missing", &p2p2p.ToolError{Kind: p2p2p.ErrRenderFailure, Err: os.ErrNotExist}, ExitRender},
		{"compile failure", &p2p2p.ToolError{Kind: p2p2p.ErrCompileFailure}, ExitCompile},
		{"missing output", fmt.Errorf("%w: /tmp/x/document.pdf", p2p2p.ErrMissingOutput), ExitCompile},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"no diagrams", ErrNoDiagrams, ExitUsage},
		{"worker count", ErrInvalidWorkerCount, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"untitled", p2p2p.ErrUntitled, ExitUsage},
		{"not diagram", p2p2p.ErrNotDiagram, ExitUsage},
		{"source missing", p2p2p.ErrSourceMissing, ExitUsage},
		{"layout", p2p2p.ErrInvalidLayout, ExitUsage},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"logo", ErrLogoNotFound, ExitIO},
		{"stdin", ErrReadStdin, ExitIO},
		{"scratch", p2p2p.ErrScratchDir, ExitIO},
		{"write tex", p2p2p.ErrWriteDocument, ExitIO},
		{"publish", p2p2p.ErrPublish, ExitIO},
		{"save", p2p2p.ErrSaveDocument, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading input: %w", os.ErrNotExist), ExitIO},

		// General
		{"unknown", errors.New("boom"), ExitGeneral},
		{"batch of failures", &batchError{failed: 1, total: 2, errs: []error{p2p2p.ErrRenderFailure}}, ExitRender},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, exitCodeFor(tt.err))
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitGeneral)
	assert.Equal(t, 2, ExitUsage)
	for _, code := range []int{ExitIO, ExitRender, ExitCompile} {
		assert.Less(t, code, 126, "custom codes must stay below shell-reserved range")
	}
}

func TestBatchError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "export failed", (&batchError{failed: 1, total: 1}).Error())
	assert.Equal(t, "2 of 5 export(s) failed", (&batchError{failed: 2, total: 5}).Error())
}
