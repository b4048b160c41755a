package main

import (
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-p2p2p/internal/config"
	"github.com/alnah/go-p2p2p/internal/yamlutil"
)

// runConfigCmd prints the effective settings as YAML, after config file,
// environment and flags are layered and defaults filled in. The output is
// itself a valid config file.
func runConfigCmd(args []string, env *Environment) int {
	flags, err := parseConfigFlags(args)
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
	setIfNotEmpty(&cfg.Logo, flags.logo)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	out, err := yamlutil.Marshal(effectiveConfig(cfg))
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitGeneral
	}
	fmt.Fprint(env.Stdout, string(out))
	return ExitSuccess
}

// effectiveConfig returns cfg with every blank setting replaced by the value
// an export would actually use.
func effectiveConfig(cfg *config.Config) *config.Config {
	tools := toolsFrom(cfg)
	layout := layoutFrom(cfg)

	level := cfg.Log.Level
	if level == "" {
		level = "info"
	}

	return &config.Config{
		Tools: config.ToolsConfig{
			Java:        tools.Java,
			PlantUML:    tools.PlantUML,
			GraphvizDot: tools.GraphvizDot,
			PDFLatex:    tools.PDFLatex,
		},
		Logo: cfg.Logo,
		Layout: config.LayoutConfig{
			LogoWidth:    layout.LogoWidth,
			DiagramWidth: layout.DiagramWidth,
			Margin:       layout.Margin,
			LogoGap:      layout.LogoGap,
		},
		Log: config.LogConfig{
			Level:  strings.ToLower(level),
			Format: resolveLogFormat(cfg),
		},
		Workers: cfg.Workers,
	}
}
