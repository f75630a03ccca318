// Package httpserver runs net/http handlers as gateway applications.
package httpserver

import (
	"bufio"
	"bytes"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/Brownie44l1/minipig/internal/environ"
	"github.com/Brownie44l1/minipig/internal/headers"
	"github.com/Brownie44l1/minipig/internal/response"
	"github.com/Brownie44l1/minipig/internal/server"
)

// ResponseWriter collects what an http.Handler writes so it can be replayed
// through a Responder
type ResponseWriter struct {
	header  http.Header
	status  int
	written bool
	body    bytes.Buffer
}

func NewResponseWriter() *ResponseWriter {
	return &ResponseWriter{
		header: make(http.Header),
		status: http.StatusOK,
	}
}

// Header returns the header map
func (rw *ResponseWriter) Header() http.Header {
	return rw.header
}

// Write buffers body bytes
func (rw *ResponseWriter) Write(data []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.body.Write(data)
}

// WriteHeader records the status code; later calls are ignored
func (rw *ResponseWriter) WriteHeader(statusCode int) {
	if rw.written {
		return
	}
	rw.status = statusCode
	rw.written = true
}

// Status returns the status line, e.g. "200 OK"
func (rw *ResponseWriter) Status() string {
	text := http.StatusText(rw.status)
	if text == "" {
		text = response.StatusText(response.StatusCode(rw.status))
	}
	return strconv.Itoa(rw.status) + " " + text
}

// Fields returns the headers sorted by name, values in the order they were added
func (rw *ResponseWriter) Fields() []headers.Field {
	names := make([]string, 0, len(rw.header))
	for name := range rw.header {
		names = append(names, name)
	}
	slices.Sort(names)

	var fields []headers.Field
	for _, name := range names {
		for _, value := range rw.header[name] {
			fields = append(fields, headers.Field{Name: name, Value: value})
		}
	}
	return fields
}

// Bytes returns the buffered body
func (rw *ResponseWriter) Bytes() []byte {
	return rw.body.Bytes()
}

// Request rebuilds an *http.Request from the environment. The input stream
// holds the raw request text, so its headers and body are parsed from there.
func Request(env *environ.Environment) (*http.Request, error) {
	input := env.Input()
	if input == nil {
		return nil, fmt.Errorf("environment has no input stream")
	}

	req, err := http.ReadRequest(bufio.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("read request from input: %w", err)
	}

	if req.Host == "" {
		req.Host = env.ServerName() + ":" + strconv.Itoa(env.ServerPort())
	}
	return req, nil
}

// Adapter wraps an http.Handler as a server.Application
type Adapter struct {
	handler http.Handler
}

// New creates a new handler adapter
func New(handler http.Handler) *Adapter {
	return &Adapter{handler: handler}
}

// Serve implements server.Application
func (a *Adapter) Serve(env *environ.Environment, respond response.Responder) (response.Body, error) {
	req, err := Request(env)
	if err != nil {
		return nil, err
	}

	rw := NewResponseWriter()
	a.handler.ServeHTTP(rw, req)

	if err := respond.Respond(rw.Status(), rw.Fields(), nil); err != nil {
		return nil, err
	}
	return response.Chunks(rw.Bytes()), nil
}

var _ server.Application = (*Adapter)(nil)
