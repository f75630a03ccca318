//go:build linux

package server

import (
	"io"

	socketnet "github.com/Brownie44l1/socket-wrapper"
)

type socketListener struct {
	socketnet.Listener
}

func (l socketListener) Accept() (io.ReadWriteCloser, error) {
	return l.Listener.Accept()
}

func listenAllInterfaces(port, backlog int, logger Logger) (listener, bool, error) {
	cfg := socketnet.DefaultConfig().
		WithPort(port).
		WithBacklog(backlog).
		WithDeferAccept(0).
		WithLogger(socketLogger{logger})

	l, err := socketnet.Listen(cfg)
	if err != nil {
		return nil, true, err
	}
	return socketListener{l}, true, nil
}
