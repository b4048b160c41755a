package p2p2p

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alnah/go-p2p2p/internal/process"
)

// DefaultMaxOutput caps the captured output of each stream (10 MiB).
const DefaultMaxOutput = 10 << 20

// Command describes one external tool invocation.
type Command struct {
	Name      string
	Args      []string
	Dir       string // working directory; empty means the current one
	MaxOutput int    // per-stream capture limit in bytes; 0 means DefaultMaxOutput
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// CommandResult holds what a finished process reported.
type CommandResult struct {
	ExitCode  int
	Stdout    string
	Stderr    string
	Truncated bool // output exceeded MaxOutput and was cut
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
// Run returns a non-nil error when the process cannot be started or exits
// non-zero; in the latter case the result is returned alongside the error.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (*CommandResult, error)
}

// Compile-time interface implementation check.
var _ CommandRunner = (*ExecRunner)(nil)

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Run executes cmd, capturing stdout and stderr up to cmd.MaxOutput bytes each.
func (r *ExecRunner) Run(ctx context.Context, c Command) (*CommandResult, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...) // #nosec G204 -- tool paths come from user settings
	cmd.Dir = c.Dir
	process.Isolate(cmd)

	limit := c.MaxOutput
	if limit <= 0 {
		limit = DefaultMaxOutput
	}
	stdout := &cappedBuffer{limit: limit}
	stderr := &cappedBuffer{limit: limit}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()

	result := &CommandResult{
		ExitCode:  -1,
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		Truncated: stdout.truncated || stderr.truncated,
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return result, fmt.Errorf("%s exited with status %d: %w", c.Name, result.ExitCode, err)
		}
		return nil, fmt.Errorf("starting %s: %w", c.Name, err)
	}
	return result, nil
}

// cappedBuffer keeps the first limit bytes written and discards the rest.
// It always reports a full write so the child never sees a broken pipe.
type cappedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - b.buf.Len()
	if remaining <= 0 {
		b.truncated = b.truncated || len(p) > 0
		return len(p), nil
	}
	if len(p) > remaining {
		b.buf.Write(p[:remaining])
		b.truncated = true
		return len(p), nil
	}
	b.buf.Write(p)
	return len(p), nil
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}
