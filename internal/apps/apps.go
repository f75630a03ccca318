// Package apps holds the applications cmd/minipig can serve, looked up by name.
package apps

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/Brownie44l1/minipig/internal/environ"
	"github.com/Brownie44l1/minipig/internal/headers"
	"github.com/Brownie44l1/minipig/internal/httpserver"
	"github.com/Brownie44l1/minipig/internal/response"
	"github.com/Brownie44l1/minipig/internal/router"
	"github.com/Brownie44l1/minipig/internal/server"
)

var ErrUnknownApplication = errors.New("unknown application")

var registry = map[string]server.Application{
	"hello":   server.ApplicationFunc(Hello),
	"echo":    server.ApplicationFunc(Echo),
	"environ": server.ApplicationFunc(Environ),
	"site":    Site(),
}

// Lookup resolves "package:name" (or just "name") to a registered application
func Lookup(ref string) (server.Application, error) {
	pkg, name, found := strings.Cut(ref, ":")
	if !found {
		name = pkg
	} else if pkg != "apps" {
		return nil, fmt.Errorf("%w: %q: no package %q", ErrUnknownApplication, ref, pkg)
	}

	app, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownApplication, ref)
	}
	return app, nil
}

// Names lists registered applications
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, "apps:"+name)
	}
	slices.Sort(names)
	return names
}

var plainText = []headers.Field{{Name: "Content-Type", Value: "text/plain"}}

// Hello answers every request with a greeting
func Hello(env *environ.Environment, respond response.Responder) (response.Body, error) {
	if err := respond.Respond(response.StatusLine(response.StatusOK), plainText, nil); err != nil {
		return nil, err
	}
	return response.Strings("Hello from minipig!\n"), nil
}

// Echo reads the raw request from the input stream and reports its headers and body
func Echo(env *environ.Environment, respond response.Responder) (response.Body, error) {
	raw, err := io.ReadAll(env.Input())
	if err != nil {
		return nil, err
	}

	// skip the request line
	if idx := bytes.Index(raw, []byte("\r\n")); idx != -1 {
		raw = raw[idx+2:]
	} else {
		raw = nil
	}

	h := headers.NewHeaders()
	n, done, err := h.Parse(raw)
	if err != nil {
		if err := respond.Respond(response.StatusLine(response.StatusBadRequest), plainText, nil); err != nil {
			return nil, err
		}
		return response.Strings(err.Error(), "\n"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", env.Method(), env.Path())
	for name, value := range h.All() {
		fmt.Fprintf(&b, "%s=%s\n", name, value)
	}
	if done && n < len(raw) {
		fmt.Fprintf(&b, "\n%s", raw[n:])
	}

	if err := respond.Respond(response.StatusLine(response.StatusOK), plainText, nil); err != nil {
		return nil, err
	}
	return response.Strings(b.String()), nil
}

// Environ lists the environment one key per line
func Environ(env *environ.Environment, respond response.Responder) (response.Body, error) {
	if err := respond.Respond(response.StatusLine(response.StatusOK), plainText, nil); err != nil {
		return nil, err
	}

	return func(yield func([]byte, error) bool) {
		for key, value := range env.All() {
			var line string
			switch v := value.(type) {
			case io.Reader, io.Writer:
				line = fmt.Sprintf("%s = <%T>\n", key, v)
			case environ.Version:
				line = fmt.Sprintf("%s = (%d, %d)\n", key, v.Major, v.Minor)
			default:
				line = fmt.Sprintf("%s = %v\n", key, v)
			}
			if !yield([]byte(line), nil) {
				return
			}
		}
	}, nil
}

// Site routes between the other applications and a net/http handler
func Site() *router.Router {
	r := router.New()
	r.GET("/", server.ApplicationFunc(Hello))
	r.GET("/environ", server.ApplicationFunc(Environ))
	r.GET("/echo", server.ApplicationFunc(Echo))
	r.POST("/echo", server.ApplicationFunc(Echo))
	r.GET("/greet/:name", server.ApplicationFunc(greet))

	mux := http.NewServeMux()
	mux.HandleFunc("/std/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(w, "net/http saw %s %s\n", r.Method, r.URL.Path)
	})
	r.GET("/std/*rest", httpserver.New(mux))

	r.NotFound(server.ApplicationFunc(missing))
	return r
}

// missing names the path nothing matched and points at the index
func missing(env *environ.Environment, respond response.Responder) (response.Body, error) {
	if err := respond.Respond(response.StatusLine(response.StatusNotFound), plainText, nil); err != nil {
		return nil, err
	}
	return response.Strings("no route for ", env.Method(), " ", env.Path(), ", try GET /\n"), nil
}

func greet(env *environ.Environment, respond response.Responder) (response.Body, error) {
	if err := respond.Respond(response.StatusLine(response.StatusOK), plainText, nil); err != nil {
		return nil, err
	}
	return response.Strings("Hello, ", router.Param(env, "name"), "!\n"), nil
}
