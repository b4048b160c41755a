package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// TestRunCheckCmd - Export action visibility
// ---------------------------------------------------------------------------

func TestRunCheckCmd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"puml file", []string{"diagrams/login.puml"}, ExitSuccess, "visible\n"},
		{"upper-case extension", []string{"LOGIN.PUML"}, ExitSuccess, "visible\n"},
		{"declared language", []string{"--language-id", "plantuml", "notes.txt"}, ExitSuccess, "visible\n"},
		{"other file", []string{"notes.txt"}, ExitGeneral, "hidden\n"},
		{"untitled", []string{"--untitled", "login.puml"}, ExitGeneral, "hidden\n"},
		{"no document", nil, ExitGeneral, "hidden\n"},
		{"quiet", []string{"-q", "login.puml"}, ExitSuccess, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stdout, stderr bytes.Buffer
			env := &Environment{Stdout: &stdout, Stderr: &stderr}

			code := runCheckCmd(tt.args, env)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantOut, stdout.String())
		})
	}
}

func TestRunCheckCmd_UsageErrors(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &stderr}

	assert.Equal(t, ExitUsage, runCheckCmd([]string{"a.puml", "b.puml"}, env))
	assert.Equal(t, ExitUsage, runCheckCmd([]string{"--bogus"}, env))
	assert.Empty(t, stdout.String())
}
