package common

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFormat(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Equal(t, "console", logFormat(cfg))

	cfg.Logging.Format = "JSON"
	assert.Equal(t, "json", logFormat(cfg))

	cfg = NewDefaultConfig()
	cfg.Environment = "production"
	assert.Equal(t, "json", logFormat(cfg), "production logs JSON even with the console default")
}

func TestNewLoggerWithOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("warn", &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("case", "Alpha").Msg("shown")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Alpha", entry["case"])
	assert.Equal(t, "shown", entry["message"])
}
