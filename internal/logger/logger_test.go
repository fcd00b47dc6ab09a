package logger

import (
	"bytes"
	"strings"
	"testing"
)

// resetLogger resets the logger to default state for test isolation.
func resetLogger() {
	Init(Options{})
}

// --- Init Tests ---

func TestInit_DefaultLevel_Info(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	Info("test info")
	if !strings.Contains(buf.String(), "test info") {
		t.Error("Info message should be logged at default level")
	}

	buf.Reset()

	Debug("test debug")
	if strings.Contains(buf.String(), "test debug") {
		t.Error("Debug message should not be logged at default level")
	}
}

func TestInit_DebugLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Output: buf})
	defer resetLogger()

	Debug("test debug message")
	if !strings.Contains(buf.String(), "test debug message") {
		t.Error("Debug message should be logged when Debug=true")
	}
}

func TestInit_QuietLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Quiet: true, Output: buf})
	defer resetLogger()

	Info("test info")
	Warn("test warn")
	if buf.Len() != 0 {
		t.Error("Info and Warn should not be logged when Quiet=true")
	}

	Error("test error")
	if !strings.Contains(buf.String(), "test error") {
		t.Error("Error message should be logged when Quiet=true")
	}
}

func TestInit_QuietWinsOverDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Debug: true, Quiet: true, Output: buf})
	defer resetLogger()

	Debug("suppressed")
	Info("suppressed")
	if buf.Len() != 0 {
		t.Error("Quiet should win over Debug")
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("test message")

	out := buf.String()
	if !strings.HasPrefix(out, "{") {
		t.Errorf("JSON format should produce JSON output, got %q", out)
	}
	if !strings.Contains(out, "test message") {
		t.Error("JSON output should contain the message")
	}
}

// --- With Tests ---

func TestWith_CarriesAttributes(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	With("doc_id", "123456").Info("attached")

	out := buf.String()
	if !strings.Contains(out, "doc_id") || !strings.Contains(out, "123456") {
		t.Errorf("With() attributes missing from output: %q", out)
	}
}
