package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/minipig/internal/environ"
	"github.com/Brownie44l1/minipig/internal/request"
	"github.com/Brownie44l1/minipig/internal/response"
	"github.com/Brownie44l1/minipig/internal/server"
)

func env(t *testing.T, method, path string) *environ.Environment {
	t.Helper()
	req, err := request.Parse([]byte(method + " " + path + " HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)
	return environ.NewBuilder(environ.Identity{Name: "localhost", Port: 7777}).Build(req)
}

func text(s string) server.Application {
	return server.ApplicationFunc(func(env *environ.Environment, respond response.Responder) (response.Body, error) {
		respond.Respond("200 OK", nil, nil)
		return response.Strings(s), nil
	})
}

func serve(t *testing.T, app server.Application, e *environ.Environment) (string, string) {
	t.Helper()
	c := response.NewCollector()
	body, err := app.Serve(e, c)
	require.NoError(t, err)
	desc, err := c.Descriptor()
	require.NoError(t, err)

	var out string
	for chunk, err := range body {
		require.NoError(t, err)
		out += string(chunk)
	}
	return desc.Status, out
}

func TestMatchPath(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    map[string]string
	}{
		{"/", "/", map[string]string{}},
		{"/home", "/home", map[string]string{}},
		{"/home", "/home/", nil},
		{"/users/:id", "/users/42", map[string]string{"id": "42"}},
		{"/users/:id", "/users/", nil},
		{"/users/:id/posts/:post", "/users/1/posts/2", map[string]string{"id": "1", "post": "2"}},
		{"/static/*filepath", "/static/css/site.css", map[string]string{"filepath": "css/site.css"}},
		{"/static/*", "/static/x", map[string]string{}},
		{"/static/*filepath", "/other/x", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPath(tt.pattern, tt.path), "%s vs %s", tt.pattern, tt.path)
	}
}

func TestRouterDispatch(t *testing.T) {
	r := New()
	r.GET("/", text("home"))
	r.POST("/", text("posted"))
	r.GET("/users/:id", server.ApplicationFunc(func(env *environ.Environment, respond response.Responder) (response.Body, error) {
		respond.Respond("200 OK", nil, nil)
		return response.Strings("user ", Param(env, "id")), nil
	}))

	status, body := serve(t, r, env(t, "GET", "/"))
	assert.Equal(t, "200 OK", status)
	assert.Equal(t, "home", body)

	_, body = serve(t, r, env(t, "POST", "/"))
	assert.Equal(t, "posted", body)

	_, body = serve(t, r, env(t, "GET", "/users/7?verbose=1"))
	assert.Equal(t, "user 7", body)
}

func TestRouterNotFound(t *testing.T) {
	r := New()
	r.GET("/", text("home"))

	status, body := serve(t, r, env(t, "DELETE", "/"))
	assert.Equal(t, "404 Not Found", status)
	assert.Equal(t, "Not Found\n", body)

	r.NotFound(text("custom"))
	_, body = serve(t, r, env(t, "GET", "/nowhere"))
	assert.Equal(t, "custom", body)
}

func TestParamsWithoutRouter(t *testing.T) {
	e := env(t, "GET", "/")
	assert.Nil(t, Params(e))
	assert.Equal(t, "", Param(e, "id"))
}
