package p2p2p

import (
	"context"
	"fmt"
	"runtime"
)

// Opener hands a file to the desktop's default application.
type Opener struct {
	Runner CommandRunner
	GOOS   string
}

// NewOpener creates an Opener for the current platform with a real command runner.
func NewOpener() *Opener {
	return &Opener{Runner: &ExecRunner{}, GOOS: runtime.GOOS}
}

// Open launches the default viewer for path.
func (o *Opener) Open(ctx context.Context, path string) error {
	if _, err := o.Runner.Run(ctx, openCommand(o.GOOS, path)); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return nil
}

func openCommand(goos, path string) Command {
	switch goos {
	case "darwin":
		return Command{Name: "open", Args: []string{path}}
	case "windows":
		// The empty argument is start's window title.
		return Command{Name: "cmd", Args: []string{"/c", "start", "", path}}
	default:
		return Command{Name: "xdg-open", Args: []string{path}}
	}
}
