package app

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// LogLevel orders log lines by severity.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

var levelNames = map[LogLevel]string{
	LogLevelDebug: "DEBUG",
	LogLevelInfo:  "INFO",
	LogLevelWarn:  "WARN",
	LogLevelError: "ERROR",
}

func (l LogLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseLogLevel reads a level name, ignoring case. "warning" is
// accepted for warn; anything unrecognized is info.
func ParseLogLevel(s string) LogLevel {
	s = strings.ToUpper(s)
	if s == "WARNING" {
		return LogLevelWarn
	}
	for level, name := range levelNames {
		if name == s {
			return level
		}
	}
	return LogLevelInfo
}

const logPrefix = "cursorkit"

type logField struct {
	key   string
	value any
}

// Logger writes printf-style lines of the form
//
//	2006-01-02T15:04:05.000 [LEVEL] cursorkit: message {k=v, ...}
//
// It satisfies execctx.Logger, so handlers log through it too. Loggers
// derived with With share their parent's output but not its level.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  LogLevel
	fields []logField // sorted by key
	off    bool
	now    func() time.Time
}

// NewLogger logs at level and above to out, or to stderr if out is nil.
func NewLogger(out io.Writer, level LogLevel) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return &Logger{out: out, level: level, now: time.Now}
}

// With returns a child logger that appends key=value to every line.
// A key already present is overwritten in the child.
func (l *Logger) With(key string, value any) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	fields := slices.Clone(l.fields)
	i, found := slices.BinarySearchFunc(fields, key, func(f logField, k string) int {
		return strings.Compare(f.key, k)
	})
	if found {
		fields[i].value = value
	} else {
		fields = slices.Insert(fields, i, logField{key, value})
	}
	return &Logger{out: l.out, level: l.level, fields: fields, off: l.off, now: l.now}
}

// Component tags lines with the subsystem that wrote them.
func (l *Logger) Component(name string) *Logger {
	return l.With("component", name)
}

func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	l.out = w
	l.mu.Unlock()
}

func (l *Logger) Debug(msg string, args ...any) { l.write(LogLevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.write(LogLevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.write(LogLevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.write(LogLevelError, msg, args) }

func (l *Logger) write(level LogLevel, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.off || l.out == nil || level < l.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s: %s", l.now().Format("2006-01-02T15:04:05.000"), level, logPrefix, msg)
	for i, f := range l.fields {
		sep := ", "
		if i == 0 {
			sep = " {"
		}
		fmt.Fprintf(&b, "%s%s=%v", sep, f.key, f.value)
	}
	if len(l.fields) > 0 {
		b.WriteByte('}')
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(l.out, b.String())
}

// NullLogger drops everything.
var NullLogger = &Logger{off: true, now: time.Now}
