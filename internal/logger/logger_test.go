package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testBuffer(level slog.Level) *bytes.Buffer {
	var buf bytes.Buffer
	log = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level}))
	return &buf
}

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, log)
}

func TestInfo(t *testing.T) {
	buf := testBuffer(slog.LevelInfo)

	Info("test message", "key", "value")

	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, "value")
}

func TestError(t *testing.T) {
	buf := testBuffer(slog.LevelInfo)

	Error("test error")

	assert.Contains(t, buf.String(), "test error")
}

func TestDebug(t *testing.T) {
	buf := testBuffer(slog.LevelDebug)

	Debug("test debug")

	assert.Contains(t, buf.String(), "test debug")
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	buf := testBuffer(slog.LevelInfo)

	Debug("hidden")

	assert.Empty(t, buf.String())
}

func TestInfof(t *testing.T) {
	buf := testBuffer(slog.LevelInfo)

	Infof("test %s", "formatted")

	assert.Contains(t, buf.String(), "formatted")
}

func TestErrorf(t *testing.T) {
	buf := testBuffer(slog.LevelInfo)

	Errorf("failed after %d tries", 3)

	assert.Contains(t, buf.String(), "failed after 3 tries")
}

func TestWithError(t *testing.T) {
	buf := testBuffer(slog.LevelInfo)

	WithError(assert.AnError).Info("test with error")

	output := buf.String()
	assert.Contains(t, output, "test with error")
	assert.Contains(t, output, "error")
}

func TestWithFields(t *testing.T) {
	buf := testBuffer(slog.LevelInfo)

	WithFields(map[string]interface{}{
		"key1": "value1",
		"key2": 123,
	}).Info("test with fields")

	output := buf.String()
	assert.Contains(t, output, "test with fields")
	assert.Contains(t, output, "key1")
	assert.Contains(t, output, "value1")
}
