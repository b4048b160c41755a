package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	p2p2p "github.com/alnah/go-p2p2p"
	"github.com/alnah/go-p2p2p/internal/fileutil"
	"github.com/alnah/go-p2p2p/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Tools    []toolInfo `json:"tools"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo holds detection results for one external program.
type toolInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Found   bool   `json:"found"`
	Version string `json:"version,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempDir      string `json:"temp_dir"`
	TempWritable bool   `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags or config.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	cfg, err := loadSettings(flags.config, loadEnvConfig())
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	mergeToolFlags(&flags.tools, cfg)

	result := runDoctor(ctx, toolsFrom(cfg), env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, tools p2p2p.Tools, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkTools(ctx, result, tools, env)
	result.Env.Container, result.Env.ContainerHint = hints.DetectContainer()
	checkSystem(result, env.TempDir)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkTools locates every program the export shells out to.
func checkTools(ctx context.Context, result *doctorResult, tools p2p2p.Tools, env *Environment) {
	lookPath := env.LookPath
	if lookPath == nil {
		lookPath = func(string) (string, error) { return "", errors.New("lookup unavailable") }
	}

	if tools.UsesJar() {
		java := lookupTool(ctx, result, env, lookPath, "java", tools.Java, "-version")
		result.Tools = append(result.Tools, java)

		jar := toolInfo{Name: "plantuml", Path: tools.PlantUML, Found: fileutil.FileExists(tools.PlantUML)}
		if !jar.Found {
			result.Errors = append(result.Errors,
				fmt.Sprintf("PlantUML archive not found at %s. Set --plantuml or P2P2P_PLANTUML", tools.PlantUML))
		}
		result.Tools = append(result.Tools, jar)
	} else {
		result.Tools = append(result.Tools,
			lookupTool(ctx, result, env, lookPath, "plantuml", tools.PlantUML, "-version"))
	}

	result.Tools = append(result.Tools,
		lookupTool(ctx, result, env, lookPath, "dot", tools.GraphvizDot, "-V"),
		lookupTool(ctx, result, env, lookPath, "pdflatex", tools.PDFLatex, "--version"),
	)
}

// lookupTool resolves one executable and asks it for its version.
func lookupTool(ctx context.Context, result *doctorResult, env *Environment, lookPath func(string) (string, error), name, path, versionFlag string) toolInfo {
	info := toolInfo{Name: name, Path: path}

	resolved, err := lookPath(path)
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found (%s). Install it or set --%s", name, path, name))
		return info
	}
	info.Found = true
	info.Path = resolved

	if env.Runner == nil {
		return info
	}
	res, err := env.Runner.Run(ctx, p2p2p.Command{Name: resolved, Args: []string{versionFlag}, MaxOutput: 64 << 10})
	if err != nil || res == nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get %s version: %v", name, err))
		return info
	}
	// java and dot print their version on stderr
	info.Version = firstLine(res.Stdout)
	if info.Version == "" {
		info.Version = firstLine(res.Stderr)
	}
	return info
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// checkSystem verifies the scratch root is writable.
func checkSystem(result *doctorResult, tempRoot string) {
	if tempRoot == "" {
		tempRoot = os.TempDir()
	}
	result.System.TempDir = tempRoot

	dir, err := os.MkdirTemp(tempRoot, "p2p2p-doctor-*")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tempRoot))
		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	if err := os.WriteFile(filepath.Join(dir, "probe"), []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tempRoot))
		return
	}
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "p2p2p doctor")
	fmt.Fprintln(w)

	// Tools section
	fmt.Fprintln(w, "Tools")
	for _, t := range r.Tools {
		if !t.Found {
			fmt.Fprintf(w, "  [ERROR] %s: not found (%s)\n", t.Name, t.Path)
			continue
		}
		if t.Version != "" {
			fmt.Fprintf(w, "  [OK] %s: %s (%s)\n", t.Name, t.Path, t.Version)
		} else {
			fmt.Fprintf(w, "  [OK] %s: %s\n", t.Name, t.Path)
		}
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  [OK] Temp directory: writable (%s)\n", r.System.TempDir)
	} else {
		fmt.Fprintf(w, "  [ERROR] Temp directory: not writable (%s)\n", r.System.TempDir)
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to export")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
