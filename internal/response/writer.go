package response

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/Brownie44l1/minipig/internal/headers"
)

const (
	// DefaultSeparator is what goes between header name and value on the wire.
	// Note the space before the colon; it is not standard HTTP.
	DefaultSeparator = " : "

	// StandardSeparator is the RFC 9112 form
	StandardSeparator = ": "
)

var ErrInvalidBodyEncoding = errors.New("response body chunk is not valid UTF-8")

// writerState tracks what's been written so far
type writerState int

const (
	stateStart writerState = iota
	stateStatusWritten
	stateHeadersWritten
)

// Writer assembles a complete response in memory so it can go out in one write
type Writer struct {
	buf       bytes.Buffer
	state     writerState
	separator string
}

// NewWriter creates a writer using sep between header names and values.
// An empty sep means DefaultSeparator.
func NewWriter(sep string) *Writer {
	if sep == "" {
		sep = DefaultSeparator
	}
	return &Writer{
		state:     stateStart,
		separator: sep,
	}
}

// WriteStatusLine writes "HTTP/1.1 <status>\r\n". The status is used verbatim.
func (w *Writer) WriteStatusLine(status string) error {
	if w.state != stateStart {
		return fmt.Errorf("status line already written")
	}

	w.buf.WriteString("HTTP/1.1 ")
	w.buf.WriteString(status)
	w.buf.WriteString("\r\n")

	w.state = stateStatusWritten
	return nil
}

// WriteHeaders writes every field in order followed by the blank line
func (w *Writer) WriteHeaders(h *headers.Headers) error {
	if w.state != stateStatusWritten {
		return fmt.Errorf("must write status line before headers")
	}

	for name, value := range h.All() {
		w.buf.WriteString(name)
		w.buf.WriteString(w.separator)
		w.buf.WriteString(value)
		w.buf.WriteString("\r\n")
	}
	w.buf.WriteString("\r\n")

	w.state = stateHeadersWritten
	return nil
}

// WriteBody appends one body chunk. Chunks must be valid UTF-8 text.
func (w *Writer) WriteBody(chunk []byte) error {
	if w.state != stateHeadersWritten {
		return fmt.Errorf("must write headers before body")
	}
	if !utf8.Valid(chunk) {
		return ErrInvalidBodyEncoding
	}

	w.buf.Write(chunk)
	return nil
}

// Bytes returns everything written so far
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Serialize renders the committed head from c followed by every chunk of body.
// The head must be committed before body is consumed.
func Serialize(c *Collector, body Body, sep string) ([]byte, error) {
	desc, err := c.Descriptor()
	if err != nil {
		return nil, err
	}

	w := NewWriter(sep)
	if err := w.WriteStatusLine(desc.Status); err != nil {
		return nil, err
	}
	if err := w.WriteHeaders(desc.Headers); err != nil {
		return nil, err
	}

	if body == nil {
		return w.Bytes(), nil
	}

	for chunk, err := range body {
		if err != nil {
			return nil, err
		}
		if err := w.WriteBody(chunk); err != nil {
			return nil, err
		}
	}

	return w.Bytes(), nil
}
