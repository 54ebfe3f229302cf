package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"Warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf, Prefix: "caretjar:1", Now: fixedNow})

	l.WithField("plugin", "wordcount").WithComponent("dispatch").Warn("duplicate %q", "wordcount")

	want := `2024-03-01T12:30:45.000 [WARN] caretjar:1: duplicate "wordcount" {component=dispatch, plugin=wordcount}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("log line =\n%q\nwant\n%q", got, want)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf, Now: fixedNow})

	l.Debug("hidden")
	l.Info("hidden")
	l.Error("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("filtered message written: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[ERROR] shown") {
		t.Errorf("error message missing: %q", buf.String())
	}

	buf.Reset()
	l.SetLevel(LevelDebug)
	l.Debug("now shown")
	if !strings.Contains(buf.String(), "now shown") {
		t.Errorf("debug message missing after SetLevel: %q", buf.String())
	}
}

func TestLoggerDisable(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf})
	l.Disable()
	l.Error("nope")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
	if l.Enabled(LevelError) {
		t.Error("Enabled() = true while disabled")
	}
	l.Enable()
	l.Error("yes")
	if buf.Len() == 0 {
		t.Error("enabled logger wrote nothing")
	}
}

func TestWithPrefixKeepsParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Config{Output: &buf, Prefix: "caretjar", Now: fixedNow})
	child := parent.WithPrefix("caretjar:7")

	if parent.Prefix() != "caretjar" || child.Prefix() != "caretjar:7" {
		t.Errorf("prefixes = %q/%q", parent.Prefix(), child.Prefix())
	}
	child.Info("hi")
	if !strings.Contains(buf.String(), "caretjar:7: hi") {
		t.Errorf("child line = %q", buf.String())
	}
}

func TestNull(t *testing.T) {
	l := Null()
	l.Error("dropped")
	if l.Enabled(LevelError) {
		t.Error("Null().Enabled() = true")
	}
}
