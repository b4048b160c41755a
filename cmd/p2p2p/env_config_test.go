package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel().

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alnah/go-p2p2p/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("P2P2P_CONFIG", "work")
	t.Setenv("P2P2P_JAVA", "/jdk/bin/java")
	t.Setenv("P2P2P_PLANTUML", "/opt/plantuml.jar")
	t.Setenv("P2P2P_DOT", "/opt/dot")
	t.Setenv("P2P2P_PDFLATEX", "/texbin/pdflatex")
	t.Setenv("P2P2P_LOGO", "/brand/logo.png")
	t.Setenv("P2P2P_LOG_LEVEL", "debug")
	t.Setenv("P2P2P_LOG_FORMAT", "json")
	t.Setenv("P2P2P_WORKERS", "3")

	got := loadEnvConfig()

	assert.Equal(t, &envConfig{
		ConfigPath: "work",
		Java:       "/jdk/bin/java",
		PlantUML:   "/opt/plantuml.jar",
		Dot:        "/opt/dot",
		PDFLatex:   "/texbin/pdflatex",
		Logo:       "/brand/logo.png",
		LogLevel:   "debug",
		LogFormat:  "json",
		Workers:    3,
	}, got)
}

func TestLoadEnvConfig_InvalidWorkersIgnored(t *testing.T) {
	for _, v := range []string{"abc", "-2", "0"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("P2P2P_WORKERS", v)
			assert.Zero(t, loadEnvConfig().Workers)
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("P2P2P_PLANTUML", "/opt/plantuml.jar")
	t.Setenv("P2P2P_LOGOO", "x")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	assert.Contains(t, buf.String(), "P2P2P_LOGOO")
	assert.NotContains(t, buf.String(), "P2P2P_PLANTUML ")
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env overrides config file values
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Tools:   config.ToolsConfig{PlantUML: "/cfg/plantuml.jar", PDFLatex: "/cfg/pdflatex"},
		Logo:    "/cfg/logo.png",
		Workers: 2,
	}
	env := &envConfig{PlantUML: "/env/plantuml.jar", Dot: "/env/dot", LogLevel: "warn", Workers: 5}

	applyEnvConfig(env, cfg)

	assert.Equal(t, "/env/plantuml.jar", cfg.Tools.PlantUML)
	assert.Equal(t, "/env/dot", cfg.Tools.GraphvizDot)
	assert.Equal(t, "/cfg/pdflatex", cfg.Tools.PDFLatex, "unset env keeps config")
	assert.Equal(t, "/cfg/logo.png", cfg.Logo)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Workers)
}

func TestResolveLogLevel(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Log: config.LogConfig{Level: "WARN"}}

	assert.Equal(t, "debug", resolveLogLevel(commonFlags{verbose: true}, cfg))
	assert.Equal(t, "error", resolveLogLevel(commonFlags{quiet: true}, cfg))
	assert.Equal(t, "warn", resolveLogLevel(commonFlags{}, cfg))
	assert.Equal(t, "info", resolveLogLevel(commonFlags{}, config.DefaultConfig()))
}
