package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/dshills/cursorkit/internal/dispatcher/execctx"
)

var _ execctx.Logger = (*Logger)(nil)

func fixedLogger(level LogLevel) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(&buf, level)
	l.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
	return l, &buf
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"Warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"loud", LogLevelInfo},
		{"", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := LogLevel(42).String(); got != "UNKNOWN" {
		t.Errorf("LogLevel(42) = %q", got)
	}
}

func TestLoggerLineFormat(t *testing.T) {
	l, buf := fixedLogger(LogLevelDebug)
	l.With("b", 2).With("a", "x").Info("ran %s in %d steps", "chain", 3)

	want := "2024-05-01T09:30:00.000 [INFO] cursorkit: ran chain in 3 steps {a=x, b=2}\n"
	if got := buf.String(); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	l, buf := fixedLogger(LogLevelWarn)
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	out := buf.String()
	for _, absent := range []string{"[DEBUG]", "[INFO]"} {
		if strings.Contains(out, absent) {
			t.Errorf("%s should be filtered: %q", absent, out)
		}
	}
	for _, present := range []string{"[WARN]", "[ERROR]"} {
		if !strings.Contains(out, present) {
			t.Errorf("%s missing: %q", present, out)
		}
	}

	buf.Reset()
	l.SetLevel(LogLevelDebug)
	l.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("SetLevel should lower the threshold")
	}
	if l.Level() != LogLevelDebug {
		t.Errorf("Level() = %v", l.Level())
	}
}

func TestLoggerComponentKeepsParent(t *testing.T) {
	l, buf := fixedLogger(LogLevelInfo)
	l.Component("script").Info("child")
	l.Info("parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasSuffix(lines[0], "{component=script}") {
		t.Errorf("child line = %q", lines[0])
	}
	if strings.Contains(lines[1], "component") {
		t.Errorf("parent should have no fields: %q", lines[1])
	}
}

func TestLoggerWithOverwritesKey(t *testing.T) {
	l, buf := fixedLogger(LogLevelInfo)
	l.With("k", 1).With("k", 2).Info("x")

	if !strings.HasSuffix(strings.TrimSpace(buf.String()), "{k=2}") {
		t.Errorf("line = %q", buf.String())
	}
}

func TestLoggerOutput(t *testing.T) {
	l, buf := fixedLogger(LogLevelInfo)

	var other bytes.Buffer
	l.SetOutput(&other)
	l.Info("moved")
	if buf.Len() != 0 || !strings.Contains(other.String(), "moved") {
		t.Errorf("output not redirected: %q / %q", buf.String(), other.String())
	}

	NullLogger.Error("discarded")
	NullLogger.With("k", "v").Error("still discarded")
}
