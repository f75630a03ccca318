package request

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var ErrInvalidEncoding = errors.New("request is not valid UTF-8")

// Request is what one receive call produced: the raw text and its parsed first line.
// Headers and body are not parsed; they stay inside Raw.
type Request struct {
	Raw  string
	Line RequestLine
}

// Method returns the request method
func (r *Request) Method() string {
	return r.Line.Method
}

// Path returns the request target as sent
func (r *Request) Path() string {
	return r.Line.Path
}

// Version returns the protocol version token
func (r *Request) Version() string {
	return r.Line.Version
}

// Parse decodes the bytes of a single read and parses the request line.
// It does not wait for more data: whatever arrived is the request.
func Parse(data []byte) (*Request, error) {
	if !utf8.Valid(data) {
		return nil, ErrInvalidEncoding
	}
	raw := string(data)

	line, ok := firstLine(raw)
	if !ok {
		return nil, fmt.Errorf("%w: empty request", ErrMalformedRequestLine)
	}

	rl, err := ParseRequestLine(line)
	if err != nil {
		return nil, err
	}

	return &Request{
		Raw:  raw,
		Line: rl,
	}, nil
}
