package headers

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"strings"
)

var ErrMalformedHeader = errors.New("malformed header")

// Field is a single header line. Name keeps the case it was given in.
type Field struct {
	Name  string
	Value string
}

// Headers is an ordered list of fields. Duplicates are kept and nothing is
// ever reordered, so what goes in is what gets written out.
type Headers struct {
	fields []Field
}

func NewHeaders(fields ...Field) *Headers {
	h := &Headers{
		fields: make([]Field, 0, len(fields)),
	}
	h.fields = append(h.fields, fields...)
	return h
}

// Get returns the first value for a header, matching the name case-insensitively
func (h *Headers) Get(name string) (string, bool) {
	for _, f := range h.fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Add appends a field to the end of the list
func (h *Headers) Add(name, value string) {
	h.fields = append(h.fields, Field{Name: name, Value: value})
}

// Len returns the number of fields, duplicates included
func (h *Headers) Len() int {
	return len(h.fields)
}

// Fields returns a copy of the fields in order
func (h *Headers) Fields() []Field {
	out := make([]Field, len(h.fields))
	copy(out, h.fields)
	return out
}

// All iterates over name/value pairs in order
func (h *Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, f := range h.fields {
			if !yield(f.Name, f.Value) {
				return
			}
		}
	}
}

// Parse parses "Name: value\r\n" lines from raw bytes until an empty line.
// Returns bytes consumed and whether the terminating empty line was seen.
func (h *Headers) Parse(data []byte) (int, bool, error) {
	read := 0
	done := false

	for {
		idx := bytes.Index(data[read:], []byte("\r\n"))
		if idx == -1 {
			// Need more data
			break
		}

		if idx == 0 {
			done = true
			read += 2
			break
		}

		line := data[read : read+idx]

		if line[0] == ' ' || line[0] == '\t' {
			return read, false, fmt.Errorf("%w: obsolete line folding", ErrMalformedHeader)
		}

		name, value, err := parseHeader(line)
		if err != nil {
			return read, done, err
		}

		h.Add(name, value)

		read += idx + 2
	}

	return read, done, nil
}

func parseHeader(line []byte) (string, string, error) {
	colonIdx := bytes.IndexByte(line, ':')
	if colonIdx == -1 {
		return "", "", fmt.Errorf("%w: no colon", ErrMalformedHeader)
	}

	name := line[:colonIdx]
	value := line[colonIdx+1:]

	if len(name) == 0 {
		return "", "", fmt.Errorf("%w: empty name", ErrMalformedHeader)
	}

	if bytes.ContainsAny(name, " \t") {
		return "", "", fmt.Errorf("%w: whitespace in name", ErrMalformedHeader)
	}

	for _, b := range name {
		if !isValidHeaderChar(b) {
			return "", "", fmt.Errorf("%w: invalid character in name: %c", ErrMalformedHeader, b)
		}
	}

	return string(name), string(bytes.TrimSpace(value)), nil
}

func isValidHeaderChar(b byte) bool {
	return (b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z') ||
		(b >= '0' && b <= '9') ||
		b == '!' || b == '#' || b == '$' || b == '%' || b == '&' ||
		b == '\'' || b == '*' || b == '+' || b == '-' || b == '.' ||
		b == '^' || b == '_' || b == '`' || b == '|' || b == '~'
}
