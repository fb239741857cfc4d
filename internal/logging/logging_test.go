package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(slog.LevelError, ParseLevel(" error "))
	assert.Equal(slog.LevelInfo, ParseLevel(""))
	assert.Equal(slog.LevelInfo, ParseLevel("loud"))
}

func TestNewWriter(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	logger := NewWriter(&buf, "warn", "json")
	logger.Info("dropped")
	logger.Warn("kept", "provider", "groq")

	var line map[string]any
	assert.NoError(json.Unmarshal(buf.Bytes(), &line))
	assert.Equal("kept", line["msg"])
	assert.Equal("groq", line["provider"])

	buf.Reset()
	NewWriter(&buf, "info", "text").Info("hello")
	assert.Contains(buf.String(), "msg=hello")
}
