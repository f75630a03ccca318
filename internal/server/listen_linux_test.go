//go:build linux

package server

import (
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freePort finds a port nothing is listening on right now
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestAllInterfacesBindUsesSocketListener(t *testing.T) {
	port := freePort(t)
	cfg := testConfig()
	cfg.Addr = ":" + strconv.Itoa(port)

	srv, err := Listen(cfg)
	require.NoError(t, err)
	require.IsType(t, socketListener{}, srv.listener)
	assert.Equal(t, port, srv.Identity().Port)

	srv.SetApplication(notFoundApp())
	done := make(chan error, 1)
	go func() {
		done <- srv.ServeForever()
	}()

	conn, err := net.Dial("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	require.NoError(t, err)
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	_, err = conn.Write([]byte("GET / HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)

	var got strings.Builder
	buf := make([]byte, 512)
	for {
		n, err := conn.Read(buf)
		got.Write(buf[:n])
		if err != nil {
			break
		}
	}
	assert.True(t, strings.HasPrefix(got.String(), "HTTP/1.1 404 Not Found\r\n"), "got %q", got.String())
	assert.True(t, strings.HasSuffix(got.String(), "nope"), "got %q", got.String())

	require.NoError(t, srv.Close())
	assert.ErrorIs(t, waitErr(t, done), ErrServerClosed)
}

func TestHostBindUsesNetListener(t *testing.T) {
	srv, err := Listen(testConfig())
	require.NoError(t, err)
	defer srv.Close()

	assert.IsType(t, netListener{}, srv.listener)
}
