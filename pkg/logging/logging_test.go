package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(999), "UNKNOWN"},
	}

	for _, test := range tests {
		result := test.level.String()
		if result != test.expected {
			t.Errorf("LogLevel(%d).String() = %s, expected %s", test.level, result, test.expected)
		}
	}
}

func TestLogLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{LogLevel(999), slog.LevelInfo},
	}

	for _, test := range tests {
		result := test.level.SlogLevel()
		if result != test.expected {
			t.Errorf("LogLevel(%d).SlogLevel() = %v, expected %v", test.level, result, test.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelDebug, ParseLevel(" DEBUG "))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestInitForCLI(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Info("test-subsystem", "test message %d", 42)

	output := buf.String()
	assert.Contains(t, output, "test message 42")
	assert.Contains(t, output, "test-subsystem")
}

func TestCLILevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelInfo, &buf)

	Debug("test", "debug message")
	Info("test", "info message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("Debug message should be filtered out at INFO level")
	}
	if !strings.Contains(output, "info message") {
		t.Error("Info message should appear at INFO level")
	}
}

func TestInit_JSONIncludesError(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelDebug, FormatJSON, &buf)

	Error("Bootstrap", errors.New("boom"), "phase failed")

	output := buf.String()
	assert.Contains(t, output, `"msg":"phase failed"`)
	assert.Contains(t, output, `"error":"boom"`)
	assert.Contains(t, output, `"subsystem":"Bootstrap"`)
}

func TestCategory_Level(t *testing.T) {
	tests := []struct {
		category Category
		want     LogLevel
		name     string
	}{
		{CategoryDebug, LevelDebug, "Debug"},
		{CategoryInfo, LevelInfo, "Info"},
		{CategoryWarn, LevelWarn, "Warn"},
		{CategoryException, LevelError, "Exception"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.Level())
			assert.Equal(t, tt.name, tt.category.String())
		})
	}
}

func TestSlogFacade_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	facade := NewSlogFacade(logger, "Bootstrap")

	facade.Log("Creating container.", CategoryDebug, PriorityLow)
	facade.Log("Module failed.", CategoryException, PriorityHigh)

	output := buf.String()
	assert.Contains(t, output, "level=DEBUG")
	assert.Contains(t, output, "Creating container.")
	assert.Contains(t, output, "priority=Low")
	assert.Contains(t, output, "level=ERROR")
	assert.Contains(t, output, "category=Exception")
	assert.Contains(t, output, "subsystem=Bootstrap")
}

func TestSlogFacade_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	facade := NewSlogFacade(logger, "Bootstrap")

	facade.Log("hidden", CategoryDebug, PriorityLow)

	assert.Empty(t, buf.String())
}

func TestRecorder(t *testing.T) {
	inner := NewRecorder(nil)
	rec := NewRecorder(inner)

	rec.Log("first", CategoryDebug, PriorityLow)
	rec.Log("second", CategoryWarn, PriorityMedium)

	require.Len(t, rec.Entries(), 2)
	assert.Equal(t, []string{"first", "second"}, rec.Messages())
	assert.Equal(t, CategoryWarn, rec.Entries()[1].Category)
	assert.Equal(t, []string{"first", "second"}, inner.Messages(), "recorder should forward to the next facade")
}
