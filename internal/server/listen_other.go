//go:build !linux

package server

func listenAllInterfaces(port, backlog int, logger Logger) (listener, bool, error) {
	return nil, false, nil
}
