package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-p2p2p/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // P2P2P_CONFIG: config file name or path

	// Tools
	Java     string // P2P2P_JAVA
	PlantUML string // P2P2P_PLANTUML
	Dot      string // P2P2P_DOT
	PDFLatex string // P2P2P_PDFLATEX

	Logo      string // P2P2P_LOGO
	LogLevel  string // P2P2P_LOG_LEVEL
	LogFormat string // P2P2P_LOG_FORMAT
	Workers   int    // P2P2P_WORKERS
}

// knownEnvVars lists valid P2P2P_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"P2P2P_CONFIG":     true,
	"P2P2P_JAVA":       true,
	"P2P2P_PLANTUML":   true,
	"P2P2P_DOT":        true,
	"P2P2P_PDFLATEX":   true,
	"P2P2P_LOGO":       true,
	"P2P2P_LOG_LEVEL":  true,
	"P2P2P_LOG_FORMAT": true,
	"P2P2P_WORKERS":    true,
	"P2P2P_CONTAINER":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized P2P2P_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("P2P2P_CONFIG"),
		Java:       os.Getenv("P2P2P_JAVA"),
		PlantUML:   os.Getenv("P2P2P_PLANTUML"),
		Dot:        os.Getenv("P2P2P_DOT"),
		PDFLatex:   os.Getenv("P2P2P_PDFLATEX"),
		Logo:       os.Getenv("P2P2P_LOGO"),
		LogLevel:   os.Getenv("P2P2P_LOG_LEVEL"),
		LogFormat:  os.Getenv("P2P2P_LOG_FORMAT"),
	}

	// Parse int for workers; invalid values are ignored
	if workers := os.Getenv("P2P2P_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized P2P2P_* variables.
// Helps catch typos like P2P2P_PLANTUMl instead of P2P2P_PLANTUML.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "P2P2P_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A set variable overrides the config file; CLI flags are applied later
// via mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setIfNotEmpty(&cfg.Tools.Java, env.Java)
	setIfNotEmpty(&cfg.Tools.PlantUML, env.PlantUML)
	setIfNotEmpty(&cfg.Tools.GraphvizDot, env.Dot)
	setIfNotEmpty(&cfg.Tools.PDFLatex, env.PDFLatex)
	setIfNotEmpty(&cfg.Logo, env.Logo)
	setIfNotEmpty(&cfg.Log.Level, env.LogLevel)
	setIfNotEmpty(&cfg.Log.Format, env.LogFormat)
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}

// setIfNotEmpty overwrites *dst when value is non-blank.
func setIfNotEmpty(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = value
	}
}
