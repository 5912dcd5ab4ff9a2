package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestLoggerFunctions_NoNilPointers(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logger function panicked: %v", r)
		}
	}()

	// Test logger functions (excluding Fatal which exits)
	Debug("test debug", "key", "value")
	Info("test info", "key", "value")
	Warn("test warn", "key", "value")
	Error("test error", "key", "value")

	Debug("message only")
	Info("message only")
	Warn("message only")
	Error("message only")
}

func TestLoggerWithDifferentTypes(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logger with different types panicked: %v", r)
		}
	}()

	Debug("test", "string", "value", "int", 123, "float", 45.67, "bool", true, "nil", nil)
	Info("test", "items", []string{"a", "b"})
	Warn("test", "map", map[string]string{"key": "value"})
}

func TestSetOutputRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, log.InfoLevel)
	t.Cleanup(func() { logger = nil })

	Debug("hidden view report", "key", "my-post")
	assert.Empty(t, buf.String())

	Info("view reported", "key", "my-post")
	assert.Contains(t, buf.String(), "view reported")
	assert.Contains(t, buf.String(), "my-post")
}
