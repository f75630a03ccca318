package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleGETRequest(t *testing.T) {
	data := "GET /index.html HTTP/1.1\r\nHost: example.com\r\n\r\n"
	req, err := Parse([]byte(data))

	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method())
	assert.Equal(t, "/index.html", req.Path())
	assert.Equal(t, "HTTP/1.1", req.Version())
	assert.Equal(t, data, req.Raw)
}

func TestWellFormedRequestLines(t *testing.T) {
	tests := []struct {
		line string
		want RequestLine
	}{
		{"GET / HTTP/1.1\r\n", RequestLine{"GET", "/", "HTTP/1.1"}},
		{"POST /api/data HTTP/1.0\r\n", RequestLine{"POST", "/api/data", "HTTP/1.0"}},
		{"BREW /pot-0 HTCPCP/1.0", RequestLine{"BREW", "/pot-0", "HTCPCP/1.0"}},
		{"OPTIONS * HTTP/1.1\n", RequestLine{"OPTIONS", "*", "HTTP/1.1"}},
		{"GET\t/tabs   HTTP/1.1\r\n", RequestLine{"GET", "/tabs", "HTTP/1.1"}},
	}

	for _, tt := range tests {
		got, err := ParseRequestLine(tt.line)
		require.NoError(t, err, "line %q", tt.line)
		assert.Equal(t, tt.want, got)
	}
}

func TestMalformedRequestLine(t *testing.T) {
	lines := []string{
		"",
		"\r\n",
		"GET\r\n",
		"GET /path\r\n",
		"GET /path HTTP/1.1 extra\r\n",
		"GET /a /b /c HTTP/1.1\r\n",
	}

	for _, line := range lines {
		_, err := ParseRequestLine(line)
		require.Error(t, err, "line %q", line)
		assert.ErrorIs(t, err, ErrMalformedRequestLine)
	}
}

func TestParseOnlyLooksAtFirstLine(t *testing.T) {
	data := "GET /x HTTP/1.1\r\nthis line has way too many tokens in it\r\n\r\nbody"
	req, err := Parse([]byte(data))

	require.NoError(t, err)
	assert.Equal(t, "/x", req.Path())
}

func TestParseStopsAtAnyLineBoundary(t *testing.T) {
	for _, sep := range []string{"\v", "\f", "\x1c", "\x1d", "\x1e", "\u0085", "\u2028", "\u2029"} {
		data := "GET / HTTP/1.1" + sep + "X-Junk: a\r\n\r\n"
		req, err := Parse([]byte(data))

		require.NoError(t, err, "separator %q", sep)
		assert.Equal(t, "HTTP/1.1", req.Version())
		assert.Equal(t, data, req.Raw)
	}
}

func TestParseLineSeparatorInsidePath(t *testing.T) {
	_, err := Parse([]byte("GET /a\u2028b HTTP/1.1\r\n\r\n"))

	assert.ErrorIs(t, err, ErrMalformedRequestLine)
}

func TestParseEmptyRead(t *testing.T) {
	_, err := Parse(nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRequestLine)
}

func TestParseLeadingBlankLine(t *testing.T) {
	_, err := Parse([]byte("\r\nGET / HTTP/1.1\r\n\r\n"))

	assert.ErrorIs(t, err, ErrMalformedRequestLine)
}

func TestParseInvalidUTF8(t *testing.T) {
	data := []byte("GET /caf\xe9 HTTP/1.1\r\n\r\n")
	_, err := Parse(data)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestParseUTF8Path(t *testing.T) {
	req, err := Parse([]byte("GET /café HTTP/1.1\r\n\r\n"))

	require.NoError(t, err)
	assert.Equal(t, "/café", req.Path())
}
