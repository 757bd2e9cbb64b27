package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("msg", "key", "value")
	l.Info("msg")
	l.Warn("msg")
	l.Error("msg")
	_, ok := l.With("key", "value").(NopLogger)
	assert.True(t, ok, "With should return a NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlogAdapter(slog.New(handler)).With("component", "rename")

	logger.Debug("candidate registered", "source", "Pet", "target", "Animal")
	logger.Warn("schema missing", "name", "Ghost")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "component=rename")
	assert.Contains(t, out, "source=Pet")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "name=Ghost")
}

func TestNewSlogAdapter_NilUsesDefault(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	assert.NotNil(t, adapter.logger)
}

func TestLoggerOrNop(t *testing.T) {
	assert.Equal(t, NopLogger{}, loggerOrNop(nil))
	adapter := NewSlogAdapter(nil)
	assert.Same(t, adapter, loggerOrNop(adapter))
}
