package bongo

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	tests := []struct {
		name string
		log  func()
		want []string
	}{
		{"debug", func() { adapter.Debug("debug message", "key", "value") }, []string{"level=DEBUG", "debug message", "key=value"}},
		{"info", func() { adapter.Info("info message", "count", 42) }, []string{"level=INFO", "count=42"}},
		{"warn", func() { adapter.Warn("warn message") }, []string{"level=WARN", "warn message"}},
		{"error", func() { adapter.Error("error message", "step", "set opacity") }, []string{"level=ERROR", `step="set opacity"`}},
		{"with", func() { adapter.With("window", 7).Info("decorated") }, []string{"window=7", "decorated"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("output %q missing %q", buf.String(), w)
				}
			}
		})
	}
}

func TestNewSlogAdapterNil(t *testing.T) {
	if a := NewSlogAdapter(nil); a.logger == nil {
		t.Error("nil logger should fall back to slog.Default()")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, true)
	logger.Debug("hidden")
	logger.Info("shown", "presses", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if rec["msg"] != "shown" || rec["presses"] != float64(3) {
		t.Errorf("record = %v", rec)
	}
	if _, ok := rec["source"]; ok {
		t.Error("source should only be added at debug level")
	}

	buf.Reset()
	NewLogger(&buf, slog.LevelDebug, false).Debug("trace")
	if !strings.Contains(buf.String(), "source=") {
		t.Errorf("debug logger should add source, got %q", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	l := NopLogger()
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
}

func TestJSONLoggerNilWriter(t *testing.T) {
	if JSONLogger(nil, slog.LevelInfo) == nil {
		t.Error("JSONLogger(nil) returned nil")
	}
}
