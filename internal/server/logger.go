package server

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Logger is what the server and its middleware log through
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
}

// Field is one key=value pair on a log line
type Field struct {
	Key   string
	Value interface{}
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLevel accepts debug, info, warn or error
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// DefaultLogger writes one "[time] LEVEL: msg | k=v ..." line per call.
// Lines below the minimum level are dropped.
type DefaultLogger struct {
	mu     *sync.Mutex
	out    io.Writer
	min    Level
	fields []Field
	now    func() time.Time
}

// NewDefaultLogger logs at info level to stdout
func NewDefaultLogger() *DefaultLogger {
	return NewLogger(os.Stdout, LevelInfo)
}

func NewLogger(w io.Writer, min Level) *DefaultLogger {
	return &DefaultLogger{
		mu:  &sync.Mutex{},
		out: w,
		min: min,
		now: time.Now,
	}
}

// With returns a logger that adds fields to every line
func (l *DefaultLogger) With(fields ...Field) *DefaultLogger {
	child := *l
	child.fields = append(append([]Field(nil), l.fields...), fields...)
	return &child
}

func (l *DefaultLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *DefaultLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *DefaultLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *DefaultLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *DefaultLogger) log(level Level, msg string, fields []Field) {
	if level < l.min {
		return
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(l.now().Format("2006-01-02 15:04:05.000"))
	b.WriteString("] ")
	b.WriteString(level.String())
	b.WriteString(": ")
	b.WriteString(msg)

	if len(l.fields)+len(fields) > 0 {
		b.WriteString(" |")
		for _, f := range append(l.fields[:len(l.fields):len(l.fields)], fields...) {
			b.WriteString(" ")
			b.WriteString(f.Key)
			b.WriteString("=")
			b.WriteString(formatValue(f.Value))
		}
	}
	b.WriteString("\n")

	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.out, b.String())
}

// formatValue truncates long strings and quotes ones that would break the line apart
func formatValue(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		if err, isErr := v.(error); isErr {
			s = err.Error()
		} else {
			return fmt.Sprint(v)
		}
	}
	if len(s) > 100 {
		s = s[:100] + "...[truncated]"
	}
	if s == "" || strings.ContainsAny(s, " \t\r\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// NullLogger discards all logs (for testing)
type NullLogger struct{}

func (n *NullLogger) Debug(msg string, fields ...Field) {}
func (n *NullLogger) Info(msg string, fields ...Field)  {}
func (n *NullLogger) Error(msg string, fields ...Field) {}
func (n *NullLogger) Warn(msg string, fields ...Field)  {}

// socketLogger feeds the listener's alternating key, value arguments into a Logger
type socketLogger struct {
	Logger
}

func (s socketLogger) Debug(msg string, kv ...any) { s.Logger.Debug(msg, pairs(kv)...) }
func (s socketLogger) Info(msg string, kv ...any)  { s.Logger.Info(msg, pairs(kv)...) }
func (s socketLogger) Error(msg string, kv ...any) { s.Logger.Error(msg, pairs(kv)...) }

func pairs(kv []any) []Field {
	fields := make([]Field, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		var value any
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		fields = append(fields, Field{key, value})
	}
	return fields
}
