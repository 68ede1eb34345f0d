// ABOUTME: Tests for the logging package
// ABOUTME: Validates level parsing, filtering, and output redirection

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// These tests share package-level state, so they do not run in parallel.

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{"debug", LevelDebug, true},
		{" INFO ", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"error", LevelError, true},
		{"loud", LevelWarn, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	prevOut := SetOutput(&buf)
	prevLevel := GetLevel()
	defer func() {
		SetOutput(prevOut)
		SetLevel(prevLevel)
	}()

	SetLevel(LevelInfo)
	Debug("hidden %d", 1)
	Info("shown %d", 2)
	Warn("warned %s", "x")
	Error("failed")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug line emitted at info level:\n%s", got)
	}
	for _, want := range []string{"[INFO] shown 2", "[WARN] warned x", "[ERROR] failed"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestErrorAlwaysEmitted(t *testing.T) {
	var buf bytes.Buffer
	prevOut := SetOutput(&buf)
	prevLevel := GetLevel()
	defer func() {
		SetOutput(prevOut)
		SetLevel(prevLevel)
	}()

	SetLevel(LevelError + 4)
	Error("still here")
	if !strings.Contains(buf.String(), "still here") {
		t.Errorf("Error() suppressed: %q", buf.String())
	}
}
