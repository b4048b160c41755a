package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// TestLogrusAdapter - Output format and level filtering
// ---------------------------------------------------------------------------

func TestLogrusAdapter_JSONFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewLogrusAdapter("info", FormatJSON, &buf)

	log.WithField(FieldSource, "seq.puml").Info("Generating PNG with PlantUML...", F(FieldTool, "plantuml"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Generating PNG with PlantUML...", entry["msg"])
	assert.Equal(t, "seq.puml", entry[FieldSource])
	assert.Equal(t, "plantuml", entry[FieldTool])
	assert.Equal(t, "info", entry["level"])
}

func TestLogrusAdapter_LevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewLogrusAdapter("error", FormatText, &buf)

	log.Info("hidden")
	log.Debug("hidden too")
	log.WithError(errors.New("boom")).Error("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "boom")
}

func TestLogrusAdapter_InvalidLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := NewLogrusAdapter("loud", FormatText, &buf)
	log.Info("visible")
	log.Debug("invisible")

	out := buf.String()
	assert.Contains(t, out, "Invalid log level 'loud'")
	assert.Contains(t, out, "visible")
	assert.False(t, strings.Contains(out, "invisible"))
}

func TestNewNopLogger(t *testing.T) {
	t.Parallel()

	log := NewNopLogger()
	log.WithFields(F("a", 1)).Error("nothing happens")
}

// ---------------------------------------------------------------------------
// TestMockLogger - Entry capture shared across derived loggers
// ---------------------------------------------------------------------------

func TestMockLogger_SharedSink(t *testing.T) {
	t.Parallel()

	mock := NewMockLogger()
	child := mock.WithField(FieldSource, "a.puml")
	child.Info("step")
	child.WithError(errors.New("bad")).Error("failed", F(FieldTool, "pdflatex"))

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, []Field{{Key: FieldSource, Value: "a.puml"}}, entries[0].Fields)
	assert.EqualError(t, entries[1].Error, "bad")
	assert.Len(t, entries[1].Fields, 2)
	assert.True(t, mock.HasEntry("ERROR", "failed"))
	assert.Len(t, mock.GetEntriesByLevel("INFO"), 1)
	assert.Equal(t, []string{"step", "failed"}, mock.Messages())
}

func TestMockLogger_WithFieldsDoesNotAlias(t *testing.T) {
	t.Parallel()

	mock := NewMockLogger()
	base := mock.WithField("k", "v")
	a := base.WithField("a", 1)
	b := base.WithField("b", 2)
	a.Info("a")
	b.Info("b")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Fields[1].Key)
	assert.Equal(t, "b", entries[1].Fields[1].Key)
}
