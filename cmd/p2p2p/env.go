package main

import (
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	p2p2p "github.com/alnah/go-p2p2p"
)

// Opener launches the default viewer for an exported PDF.
type Opener interface {
	Open(ctx context.Context, path string) error
}

// Compile-time interface implementation check.
var _ Opener = (*p2p2p.Opener)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process execution, and tool lookup.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Stdin    io.Reader
	Runner   p2p2p.CommandRunner
	Opener   Opener
	LookPath func(file string) (string, error)
	TempDir  string // root for scratch directories, "" = os.TempDir()
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Runner:   &p2p2p.ExecRunner{},
		Opener:   p2p2p.NewOpener(),
		LookPath: exec.LookPath,
	}
}
