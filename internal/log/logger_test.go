package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_LevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := build(Config{Level: "warn", Output: &buf, Service: "test-svc"})

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Warn().Str("component", "catalog").Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-svc", entry["service"])
	assert.Equal(t, "catalog", entry["component"])
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "warn", entry["level"])
}

func TestBuild_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := build(Config{Level: "loud", Output: &buf})

	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
	l.Info().Msg("shown")
	assert.Contains(t, buf.String(), `"service":"sessionbook"`)
}
