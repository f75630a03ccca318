package request

import (
	"errors"
	"strings"
)

var ErrMalformedRequestLine = errors.New("malformed request line")

// RequestLine is the parsed first line of a request: METHOD PATH VERSION
type RequestLine struct {
	Method  string
	Path    string
	Version string
}

// ParseRequestLine splits a single request line on whitespace.
// Values are passed through verbatim; only the field count is checked.
func ParseRequestLine(line string) (RequestLine, error) {
	line = strings.TrimRight(line, "\r\n")

	parts := strings.Fields(line)
	if len(parts) != 3 {
		return RequestLine{}, ErrMalformedRequestLine
	}

	return RequestLine{
		Method:  parts[0],
		Path:    parts[1],
		Version: parts[2],
	}, nil
}

// firstLine returns the text up to the first line boundary. Besides \r and
// \n that includes the vertical tab, form feed, the file/group/record
// separators, NEL and the Unicode line and paragraph separators.
func firstLine(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	if idx := strings.IndexFunc(text, isLineBoundary); idx != -1 {
		return text[:idx], true
	}
	return text, true
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
