package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-p2p2p/internal/fileutil"
	"github.com/alnah/go-p2p2p/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Limits.
const (
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxDimensionLength = 20   // "4cm", "1in", "12.5pt"
	MaxWorkers         = 32
)

// AppDirName is the directory searched under the user config dir.
const AppDirName = "p2p2p"

// Config holds user settings for exports.
// Every field is optional; blank values mean "use the built-in default".
type Config struct {
	Tools   ToolsConfig  `yaml:"tools"`
	Logo    string       `yaml:"logo"` // image placed above the diagram
	Layout  LayoutConfig `yaml:"layout"`
	Log     LogConfig    `yaml:"log"`
	Workers int          `yaml:"workers"` // parallel exports, 0 = auto
}

// ToolsConfig locates the external programs.
type ToolsConfig struct {
	Java        string `yaml:"java"`
	PlantUML    string `yaml:"plantuml"`    // plantuml.jar or plantuml executable
	GraphvizDot string `yaml:"graphvizDot"` // dot binary
	PDFLatex    string `yaml:"pdflatex"`
}

// LayoutConfig controls the generated LaTeX page.
type LayoutConfig struct {
	LogoWidth    string  `yaml:"logoWidth"`    // TeX dimension (default: 4cm)
	DiagramWidth float64 `yaml:"diagramWidth"` // fraction of line width (default: 0.6)
	Margin       string  `yaml:"margin"`       // page margin (default: 1in)
	LogoGap      string  `yaml:"logoGap"`      // space below logo (default: 1em)
}

// LogConfig controls progress logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: info)
	Format string `yaml:"format"` // text, json (default: text)
}

// Validate checks lengths and enumerations. Tool paths are not checked for
// existence; a wrong path surfaces when the tool is invoked.
func (c *Config) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"tools.java", c.Tools.Java},
		{"tools.plantuml", c.Tools.PlantUML},
		{"tools.graphvizDot", c.Tools.GraphvizDot},
		{"tools.pdflatex", c.Tools.PDFLatex},
		{"logo", c.Logo},
	} {
		if err := validateFieldLength(f.name, f.value, MaxPathLength); err != nil {
			return err
		}
	}

	for _, f := range []struct{ name, value string }{
		{"layout.logoWidth", c.Layout.LogoWidth},
		{"layout.margin", c.Layout.Margin},
		{"layout.logoGap", c.Layout.LogoGap},
	} {
		if err := validateFieldLength(f.name, f.value, MaxDimensionLength); err != nil {
			return err
		}
	}

	if c.Layout.DiagramWidth < 0 || c.Layout.DiagramWidth > 1 {
		return fmt.Errorf("%w: layout.diagramWidth must be between 0 and 1, got %g", ErrInvalidValue, c.Layout.DiagramWidth)
	}

	if c.Log.Level != "" {
		switch strings.ToLower(c.Log.Level) {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
		}
	}
	if c.Log.Format != "" {
		switch strings.ToLower(c.Log.Format) {
		case "text", "json":
		default:
			return fmt.Errorf("%w: log.format %q (must be text or json)", ErrInvalidValue, c.Log.Format)
		}
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration; every tool and layout
// setting falls back to the exporter's built-in defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order:
// current directory first, then the user config directory (.yaml before .yml).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
