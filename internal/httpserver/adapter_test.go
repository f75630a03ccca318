package httpserver

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/minipig/internal/environ"
	"github.com/Brownie44l1/minipig/internal/headers"
	"github.com/Brownie44l1/minipig/internal/request"
	"github.com/Brownie44l1/minipig/internal/response"
)

func buildEnv(t *testing.T, raw string) *environ.Environment {
	t.Helper()
	req, err := request.Parse([]byte(raw))
	require.NoError(t, err)
	return environ.NewBuilder(environ.Identity{Name: "localhost", Port: 7777}).Build(req)
}

func TestAdapterRunsHandler(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /echo", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Add("X-Agent", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("got " + string(body)))
	})

	raw := "POST /echo HTTP/1.1\r\nHost: localhost\r\nUser-Agent: curl\r\nContent-Length: 3\r\n\r\npig"
	c := response.NewCollector()
	body, err := New(mux).Serve(buildEnv(t, raw), c)
	require.NoError(t, err)

	desc, err := c.Descriptor()
	require.NoError(t, err)
	assert.Equal(t, "201 Created", desc.Status)

	fields := desc.Headers.Fields()
	assert.Equal(t, []headers.Field{
		{Name: "Content-Type", Value: "text/plain"},
		{Name: "X-Agent", Value: "curl"},
	}, fields[:2])

	payload, err := response.Serialize(c, body, "")
	require.NoError(t, err)
	assert.Contains(t, string(payload), "\r\n\r\ngot pig")
}

func TestAdapterDefaultStatus(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hi"))
	})

	c := response.NewCollector()
	_, err := New(h).Serve(buildEnv(t, "GET / HTTP/1.1\r\nHost: x\r\n\r\n"), c)
	require.NoError(t, err)

	desc, _ := c.Descriptor()
	assert.Equal(t, "200 OK", desc.Status)
}

func TestAdapterRejectsUnparseableInput(t *testing.T) {
	// the request line is fine for the gateway but net/http wants a real version
	_, err := New(http.NotFoundHandler()).Serve(buildEnv(t, "GET / NOTHTTP\r\n\r\n"), response.NewCollector())
	assert.Error(t, err)
}

func TestResponseWriterIgnoresSecondWriteHeader(t *testing.T) {
	rw := NewResponseWriter()
	rw.WriteHeader(http.StatusTeapot)
	rw.WriteHeader(http.StatusOK)

	assert.Equal(t, "418 I'm a teapot", rw.Status())
}
