package server

import (
	"fmt"
	"io"
	"net"
	"strconv"
)

// listener is the accept side of the server. Connections only need to be
// read, written and closed.
type listener interface {
	Accept() (io.ReadWriteCloser, error)
	Close() error
	Addr() string
}

type netListener struct {
	net.Listener
}

func (l netListener) Accept() (io.ReadWriteCloser, error) {
	return l.Listener.Accept()
}

func (l netListener) Addr() string {
	return l.Listener.Addr().String()
}

// listen binds config.Addr. An all-interfaces bind on a fixed port goes
// through the epoll socket listener where the platform has one, so the
// backlog is exactly config.Backlog. Host-specific or ephemeral binds use
// net.Listen with the OS default backlog.
func listen(config Config) (listener, error) {
	host, portStr, err := net.SplitHostPort(config.Addr)
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q", portStr)
	}

	if host == "" && port != 0 {
		if l, ok, err := listenAllInterfaces(port, config.Backlog, config.Logger); ok {
			return l, err
		}
	}

	l, err := net.Listen("tcp", config.Addr)
	if err != nil {
		return nil, err
	}
	return netListener{l}, nil
}
