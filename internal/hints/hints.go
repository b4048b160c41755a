// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-p2p2p/internal/fileutil"
)

// DetectContainer reports whether the process runs in a container and
// names the signal that gave it away.
func DetectContainer() (bool, string) {
	if os.Getenv("P2P2P_CONTAINER") == "1" {
		return true, "P2P2P_CONTAINER=1"
	}
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	// Podman, systemd-nspawn
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// IsInContainer is the detector used by ForToolNotFound. Tests replace it.
var IsInContainer = func() bool {
	ok, _ := DetectContainer()
	return ok
}

// ForRenderFailure returns hints for a failed PlantUML invocation.
// usesJar selects between java -jar and a directly executed plantuml.
func ForRenderFailure(plantuml, dot string, usesJar bool) string {
	var hints []string

	if usesJar {
		hints = append(hints, "check Java is installed and --plantuml points to plantuml.jar ("+plantuml+")")
	} else {
		hints = append(hints, "check --plantuml points to an executable ("+plantuml+")")
	}
	hints = append(hints, "check Graphviz dot exists at "+dot)
	hints = append(hints, "run 'p2p2p doctor'")

	return formatHints(hints)
}

// ForCompileFailure returns hints for a failed pdflatex run.
// The scratch directory holds document.log with the full TeX transcript.
func ForCompileFailure(scratchDir string) string {
	if scratchDir == "" {
		return format("see document.log in the temporary directory printed above")
	}
	return format("see " + filepath.Join(scratchDir, "document.log"))
}

// ForToolNotFound returns hints when an external program is not on PATH.
func ForToolNotFound(tool, flag string) string {
	hints := []string{"install " + tool + " or set --" + flag + " to its full path"}

	if IsInContainer() {
		hints = append(hints, "in a container, add plantuml graphviz texlive-latex-extra to the image")
	} else if tool == "pdflatex" {
		if runtime.GOOS == "windows" {
			hints = append(hints, "MiKTeX provides pdflatex on Windows")
		} else {
			hints = append(hints, "TeX Live provides pdflatex")
		}
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (lives under a p2p2p directory) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/p2p2p/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForInvalidInput returns hints for documents that cannot be exported.
func ForInvalidInput() string {
	return format("pass a saved .puml file, or use --language-id plantuml for other extensions")
}

// ForLogo returns hints for logo images pdflatex cannot include.
func ForLogo() string {
	return format("supported formats: PNG, JPG, PDF; use absolute path")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
