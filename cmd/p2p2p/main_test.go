package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// TestRun - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"p2p2p"}, ExitUsage, "", "Usage: p2p2p"},
		{"unknown command", []string{"p2p2p", "render"}, ExitUsage, "", "Unknown command: render"},
		{"version", []string{"p2p2p", "version"}, ExitSuccess, "p2p2p " + Version, ""},
		{"version flag", []string{"p2p2p", "--version"}, ExitSuccess, "p2p2p " + Version, ""},
		{"help", []string{"p2p2p", "help"}, ExitSuccess, "Commands:", ""},
		{"help flag", []string{"p2p2p", "-h"}, ExitSuccess, "Commands:", ""},
		{"check", []string{"p2p2p", "check", "a.puml"}, ExitSuccess, "visible", ""},
		{"export help", []string{"p2p2p", "export", "--help"}, ExitSuccess, "", ""},
		{"completion", []string{"p2p2p", "completion", "bash"}, ExitSuccess, "complete -F _p2p2p_completions p2p2p", ""},
		{"completion unknown shell", []string{"p2p2p", "completion", "tcsh"}, ExitUsage, "", "unsupported shell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t)

			code := run(context.Background(), tt.args, env.Environment)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantStdout != "" {
				assert.Contains(t, env.stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" {
				assert.Contains(t, env.stderr.String(), tt.wantStderr)
			}
		})
	}
}
