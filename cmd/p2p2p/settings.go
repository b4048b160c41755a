package main

import (
	"errors"
	"fmt"
	"strings"

	p2p2p "github.com/alnah/go-p2p2p"
	"github.com/alnah/go-p2p2p/internal/config"
	"github.com/alnah/go-p2p2p/internal/fileutil"
	"github.com/alnah/go-p2p2p/internal/hints"
	"github.com/alnah/go-p2p2p/internal/logging"
)

// loadSettings loads the config file named by the flag (or P2P2P_CONFIG)
// and layers environment variables on top. Without a name, the built-in
// defaults are used and no file is searched.
func loadSettings(configFlag string, env *envConfig) (*config.Config, error) {
	name := configFlag
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			hint := ""
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				hint = hints.ForConfigNotFound(config.SearchPaths(name))
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hint)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeToolFlags merges tool location flags into config. CLI values override config values.
func mergeToolFlags(f *toolFlags, cfg *config.Config) {
	setIfNotEmpty(&cfg.Tools.Java, f.java)
	setIfNotEmpty(&cfg.Tools.PlantUML, f.plantuml)
	setIfNotEmpty(&cfg.Tools.GraphvizDot, f.dot)
	setIfNotEmpty(&cfg.Tools.PDFLatex, f.pdflatex)
}

// mergeExportFlags merges export flags into config. CLI values override config values.
func mergeExportFlags(f *exportFlags, cfg *config.Config) {
	mergeToolFlags(&f.tools, cfg)
	setIfNotEmpty(&cfg.Logo, f.logo)
	setIfNotEmpty(&cfg.Log.Format, f.common.logFormat)
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
}

// toolsFrom converts config tool settings, filling platform defaults.
func toolsFrom(cfg *config.Config) p2p2p.Tools {
	return p2p2p.Tools{
		Java:        cfg.Tools.Java,
		PlantUML:    cfg.Tools.PlantUML,
		GraphvizDot: cfg.Tools.GraphvizDot,
		PDFLatex:    cfg.Tools.PDFLatex,
	}.WithDefaults()
}

// layoutFrom converts config layout settings, filling built-in defaults.
func layoutFrom(cfg *config.Config) p2p2p.Layout {
	return p2p2p.Layout{
		LogoWidth:    cfg.Layout.LogoWidth,
		DiagramWidth: cfg.Layout.DiagramWidth,
		Margin:       cfg.Layout.Margin,
		LogoGap:      cfg.Layout.LogoGap,
	}.WithDefaults()
}

// resolveLogLevel picks the log level: --verbose and --quiet win over config.
func resolveLogLevel(f commonFlags, cfg *config.Config) string {
	switch {
	case f.verbose:
		return "debug"
	case f.quiet:
		return "error"
	case cfg.Log.Level != "":
		return strings.ToLower(cfg.Log.Level)
	default:
		return "info"
	}
}

// resolveLogFormat returns the configured log format, defaulting to text.
func resolveLogFormat(cfg *config.Config) string {
	if strings.EqualFold(cfg.Log.Format, logging.FormatJSON) {
		return logging.FormatJSON
	}
	return logging.FormatText
}
