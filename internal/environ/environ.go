// Package environ builds the per-request environment handed to an application.
package environ

import (
	"io"
	"iter"
)

// Keys set by Builder, in insertion order.
const (
	KeyVersion      = "gateway.version"
	KeyURLScheme    = "gateway.url_scheme"
	KeyInput        = "gateway.input"
	KeyErrors       = "gateway.errors"
	KeyMultithread  = "gateway.multithread"
	KeyMultiprocess = "gateway.multiprocess"
	KeyRunOnce      = "gateway.run_once"
	KeyMethod       = "REQUEST_METHOD"
	KeyPath         = "PATH_INFO"
	KeyServerName   = "SERVER_NAME"
	KeyServerPort   = "SERVER_PORT"
)

// Version is the gateway convention version advertised to applications
type Version struct {
	Major int
	Minor int
}

// Environment is an ordered string-keyed mapping describing one request.
// It is built fresh for every request and never shared.
type Environment struct {
	keys   []string
	values map[string]any
}

func New() *Environment {
	return &Environment{
		values: make(map[string]any),
	}
}

// Set stores a value. A new key goes to the end; an existing key keeps its position.
func (e *Environment) Set(key string, value any) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

func (e *Environment) Get(key string) (any, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Keys returns the keys in insertion order
func (e *Environment) Keys() []string {
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

func (e *Environment) Len() int {
	return len(e.keys)
}

// All iterates over key/value pairs in insertion order
func (e *Environment) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range e.keys {
			if !yield(k, e.values[k]) {
				return
			}
		}
	}
}

func (e *Environment) String(key string) string {
	s, _ := e.values[key].(string)
	return s
}

func (e *Environment) Bool(key string) bool {
	b, _ := e.values[key].(bool)
	return b
}

func (e *Environment) Int(key string) int {
	n, _ := e.values[key].(int)
	return n
}

func (e *Environment) Method() string {
	return e.String(KeyMethod)
}

func (e *Environment) Path() string {
	return e.String(KeyPath)
}

func (e *Environment) URLScheme() string {
	return e.String(KeyURLScheme)
}

func (e *Environment) ServerName() string {
	return e.String(KeyServerName)
}

func (e *Environment) ServerPort() int {
	return e.Int(KeyServerPort)
}

func (e *Environment) Version() Version {
	v, _ := e.values[KeyVersion].(Version)
	return v
}

// Input returns the request input stream, or nil if none was set
func (e *Environment) Input() io.Reader {
	r, _ := e.values[KeyInput].(io.Reader)
	return r
}

// Errors returns the error output stream, or nil if none was set
func (e *Environment) Errors() io.Writer {
	w, _ := e.values[KeyErrors].(io.Writer)
	return w
}
