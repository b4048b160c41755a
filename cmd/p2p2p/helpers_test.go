package main

// Notes:
// - This file contains test doubles shared across command tests.
// - fakeRunner plays PlantUML and pdflatex by writing the files they would
//   produce, so the real exporter runs end to end without external tools.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	p2p2p "github.com/alnah/go-p2p2p"
	"github.com/alnah/go-p2p2p/internal/fileutil"
)

// ---------------------------------------------------------------------------
// fakeRunner - Stand-in for external tools
// ---------------------------------------------------------------------------

type fakeRunner struct {
	mu    sync.Mutex
	calls []p2p2p.Command

	failRender  map[string]bool // source stems whose rendering exits non-zero
	failCompile bool
	startErr    error // returned for every call, as if the binary were missing
	version     string
}

func (f *fakeRunner) Run(_ context.Context, cmd p2p2p.Command) (*p2p2p.CommandResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if f.startErr != nil {
		return nil, f.startErr
	}

	if outDir := argAfter(cmd.Args, "-o"); outDir != "" {
		src := cmd.Args[len(cmd.Args)-1]
		if f.failRender[fileutil.Stem(src)] {
			return &p2p2p.CommandResult{ExitCode: 1, Stderr: "Syntax Error? (line 2)"}, errors.New("exit status 1")
		}
		png := filepath.Join(outDir, fileutil.Stem(src)+".png")
		return &p2p2p.CommandResult{}, os.WriteFile(png, []byte("\x89PNG"), 0o600)
	}

	if cmd.Dir != "" {
		if f.failCompile {
			return &p2p2p.CommandResult{ExitCode: 1, Stdout: "! LaTeX Error: File `logo' not found."}, errors.New("exit status 1")
		}
		return &p2p2p.CommandResult{}, os.WriteFile(filepath.Join(cmd.Dir, p2p2p.PDFFileName), []byte("%PDF-1.5"), 0o600)
	}

	// Version probes from doctor
	return &p2p2p.CommandResult{Stdout: f.version}, nil
}

func (f *fakeRunner) Calls() []p2p2p.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]p2p2p.Command, len(f.calls))
	copy(out, f.calls)
	return out
}

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// fakeOpener - Records opened files
// ---------------------------------------------------------------------------

type fakeOpener struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (o *fakeOpener) Open(_ context.Context, path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, path)
	return o.err
}

// ---------------------------------------------------------------------------
// Environment helpers
// ---------------------------------------------------------------------------

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	runner *fakeRunner
	opener *fakeOpener
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	var stdout, stderr bytes.Buffer
	runner := &fakeRunner{}
	opener := &fakeOpener{}
	return &testEnv{
		Environment: &Environment{
			Now:      time.Now,
			Stdout:   &stdout,
			Stderr:   &stderr,
			Stdin:    strings.NewReader(""),
			Runner:   runner,
			Opener:   opener,
			LookPath: func(file string) (string, error) { return file, nil },
			TempDir:  t.TempDir(),
		},
		stdout: &stdout,
		stderr: &stderr,
		runner: runner,
		opener: opener,
	}
}

// writeDiagram creates a PlantUML source file and returns its path.
func writeDiagram(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("@startuml\nA -> B\n@enduml\n"), 0o600))
	return path
}

// toolArgs pins tool locations so host P2P2P_* variables do not leak in.
func toolArgs() []string {
	return []string{"--java", "java", "--plantuml", "plantuml.jar", "--dot", "dot", "--pdflatex", "pdflatex"}
}
