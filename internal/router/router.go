// Package router dispatches requests to applications by method and path.
package router

import (
	"strings"

	"github.com/Brownie44l1/minipig/internal/environ"
	"github.com/Brownie44l1/minipig/internal/headers"
	"github.com/Brownie44l1/minipig/internal/response"
	"github.com/Brownie44l1/minipig/internal/server"
)

// KeyParams is the environment key holding matched path parameters
const KeyParams = "router.params"

// Route represents a single route
type Route struct {
	Method string
	Path   string
	App    server.Application
}

// Router is itself an Application
type Router struct {
	routes   []*Route
	notFound server.Application
}

func New() *Router {
	return &Router{
		routes:   make([]*Route, 0),
		notFound: server.ApplicationFunc(notFound),
	}
}

// Handle registers a new route. Patterns may contain ":name" segments and
// may end in "/*name" to capture the rest of the path.
func (r *Router) Handle(method, path string, app server.Application) {
	r.routes = append(r.routes, &Route{
		Method: method,
		Path:   path,
		App:    app,
	})
}

// GET is a shortcut for Handle("GET", ...)
func (r *Router) GET(path string, app server.Application) {
	r.Handle("GET", path, app)
}

// POST is a shortcut for Handle("POST", ...)
func (r *Router) POST(path string, app server.Application) {
	r.Handle("POST", path, app)
}

// NotFound replaces the application used when nothing matches
func (r *Router) NotFound(app server.Application) {
	r.notFound = app
}

// Match finds a route that matches the given method and path
func (r *Router) Match(method, path string) (*Route, map[string]string) {
	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}

	for _, route := range r.routes {
		if route.Method != method {
			continue
		}
		if params := matchPath(route.Path, path); params != nil {
			return route, params
		}
	}

	return nil, nil
}

// Serve implements server.Application
func (r *Router) Serve(env *environ.Environment, respond response.Responder) (response.Body, error) {
	route, params := r.Match(env.Method(), env.Path())
	if route == nil {
		return r.notFound.Serve(env, respond)
	}

	env.Set(KeyParams, params)
	return route.App.Serve(env, respond)
}

// Params returns the path parameters the router matched, or nil
func Params(env *environ.Environment) map[string]string {
	v, _ := env.Get(KeyParams)
	params, _ := v.(map[string]string)
	return params
}

// Param returns one path parameter
func Param(env *environ.Environment, name string) string {
	return Params(env)[name]
}

func notFound(env *environ.Environment, respond response.Responder) (response.Body, error) {
	if err := respond.Respond(response.StatusLine(response.StatusNotFound), []headers.Field{
		{Name: "Content-Type", Value: "text/plain"},
	}, nil); err != nil {
		return nil, err
	}
	return response.Strings("Not Found\n"), nil
}

// matchPath checks if a request path matches a route pattern
// Returns parameter values if match, nil otherwise
func matchPath(pattern, path string) map[string]string {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	params := make(map[string]string)

	for i, patternPart := range patternParts {
		if strings.HasPrefix(patternPart, "*") {
			// Wildcard swallows the rest, must be last
			if i != len(patternParts)-1 || i > len(pathParts) {
				return nil
			}
			if name := patternPart[1:]; name != "" {
				params[name] = strings.Join(pathParts[min(i, len(pathParts)):], "/")
			}
			return params
		}

		if i >= len(pathParts) {
			return nil
		}
		pathPart := pathParts[i]

		if strings.HasPrefix(patternPart, ":") {
			if pathPart == "" {
				return nil
			}
			params[patternPart[1:]] = pathPart
		} else if patternPart != pathPart {
			return nil
		}
	}

	if len(patternParts) != len(pathParts) {
		return nil
	}
	return params
}
