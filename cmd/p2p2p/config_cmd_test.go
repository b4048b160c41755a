package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-p2p2p/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunConfigCmd - Effective settings as YAML
// ---------------------------------------------------------------------------

func TestRunConfigCmd(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "work.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("layout:\n  diagramWidth: 0.8\nlog:\n  format: JSON\n"), 0o600))

	code := runConfigCmd(append([]string{"-c", cfgPath}, toolArgs()...), env.Environment)
	require.Equal(t, ExitSuccess, code, "stderr: %s", env.stderr.String())

	// The output is a loadable config file.
	outPath := filepath.Join(t.TempDir(), "effective.yaml")
	require.NoError(t, os.WriteFile(outPath, env.stdout.Bytes(), 0o600))
	cfg, err := config.LoadConfig(outPath)
	require.NoError(t, err, "output: %s", env.stdout.String())

	assert.Equal(t, "plantuml.jar", cfg.Tools.PlantUML)
	assert.Equal(t, 0.8, cfg.Layout.DiagramWidth)
	assert.Equal(t, "4cm", cfg.Layout.LogoWidth)
	assert.Equal(t, "1in", cfg.Layout.Margin)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestRunConfigCmd_Errors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	assert.Equal(t, ExitUsage, runConfigCmd([]string{"-c", filepath.Join(t.TempDir(), "none.yaml")}, env.Environment))
	assert.Contains(t, env.stderr.String(), "config file not found")

	env = newTestEnv(t)
	assert.Equal(t, ExitUsage, runConfigCmd([]string{"--bogus"}, env.Environment))
}

func TestEffectiveConfig_FillsDefaults(t *testing.T) {
	t.Parallel()

	got := effectiveConfig(config.DefaultConfig())

	assert.NotEmpty(t, got.Tools.Java)
	assert.NotEmpty(t, got.Tools.PlantUML)
	assert.NotEmpty(t, got.Tools.GraphvizDot)
	assert.NotEmpty(t, got.Tools.PDFLatex)
	assert.Equal(t, 0.6, got.Layout.DiagramWidth)
	assert.Equal(t, "1em", got.Layout.LogoGap)
	assert.Equal(t, "text", got.Log.Format)
	assert.NoError(t, got.Validate())
}
