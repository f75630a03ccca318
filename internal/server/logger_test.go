package server

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLogger(out *bytes.Buffer, min Level) *DefaultLogger {
	l := NewLogger(out, min)
	l.now = func() time.Time { return time.Date(2026, 10, 17, 9, 4, 5, 0, time.UTC) }
	return l
}

func TestLoggerLineFormat(t *testing.T) {
	var out bytes.Buffer
	fixedLogger(&out, LevelInfo).Info("serving", Field{"addr", "127.0.0.1:7777"}, Field{"port", 7777})

	assert.Equal(t, "[2026-10-17 09:04:05.000] INFO: serving | addr=127.0.0.1:7777 port=7777\n", out.String())
}

func TestLoggerDropsLinesBelowLevel(t *testing.T) {
	var out bytes.Buffer
	l := fixedLogger(&out, LevelWarn)

	l.Debug("d")
	l.Info("i")
	assert.Empty(t, out.String())

	l.Warn("w")
	l.Error("e")
	assert.Equal(t, "[2026-10-17 09:04:05.000] WARN: w\n[2026-10-17 09:04:05.000] ERROR: e\n", out.String())
}

func TestLoggerWithAddsFields(t *testing.T) {
	var out bytes.Buffer
	base := fixedLogger(&out, LevelDebug)
	child := base.With(Field{"app", "apps:hello"})

	child.Debug("request handled", Field{"status", 200})
	base.Debug("plain")

	assert.Equal(t,
		"[2026-10-17 09:04:05.000] DEBUG: request handled | app=apps:hello status=200\n"+
			"[2026-10-17 09:04:05.000] DEBUG: plain\n",
		out.String())
}

func TestLoggerQuotesValues(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{"plain", "plain"},
		{"", `""`},
		{"two words", `"two words"`},
		{"a=b", `"a=b"`},
		{"line\nbreak", `"line\nbreak"`},
		{errors.New("parse error: bad line"), `"parse error: bad line"`},
		{42, "42"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatValue(tt.value), "value %v", tt.value)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"debug": LevelDebug, "INFO": LevelInfo, "": LevelInfo, "warning": LevelWarn, "error": LevelError} {
		got, err := ParseLevel(in)
		require.NoError(t, err, "level %q", in)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSocketLoggerPairs(t *testing.T) {
	var out bytes.Buffer
	sl := socketLogger{fixedLogger(&out, LevelDebug)}

	sl.Info("listener started", "port", 7777, "backlog", 1)
	sl.Error("accept failed", "error")

	assert.Equal(t,
		"[2026-10-17 09:04:05.000] INFO: listener started | port=7777 backlog=1\n"+
			"[2026-10-17 09:04:05.000] ERROR: accept failed | error=<nil>\n",
		out.String())
}
