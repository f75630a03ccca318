package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Brownie44l1/minipig/internal/request"
	"github.com/Brownie44l1/minipig/internal/response"
)

// handleOneRequest runs one request/response cycle on conn.
// conn is closed on every path, including panics out of the application,
// and every path other than success counts as a failure.
func (s *Server) handleOneRequest(conn io.ReadWriteCloser, app Application) (err error) {
	ex := newExchange(conn)

	s.metrics.ActiveConnections.Add(1)
	defer func() {
		r := recover()
		s.metrics.ActiveConnections.Add(-1)
		if err != nil || r != nil {
			s.metrics.RecordFailure(time.Since(ex.started))
		}
		conn.Close()
		if r != nil {
			panic(r)
		}
	}()

	buf := GetBuffer(s.config.ReadBufferSize)
	defer PutBuffer(buf)

	// One read only. A request line that hasn't fully arrived is a parse error.
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrReceive, err)
	}

	ex.request, err = request.Parse(buf[:n])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	ex.env = s.builder.Build(ex.request)

	body, err := app.Serve(ex.env, ex.collector)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrApplication, ex.method(), ex.path(), err)
	}

	payload, err := response.Serialize(ex.collector, body, s.config.HeaderSeparator)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrApplication, ex.method(), ex.path(), err)
	}

	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("%w: %w", ErrSend, err)
	}

	desc, _ := ex.collector.Descriptor()
	ex.status, _ = response.ParseStatusCode(desc.Status)
	duration := time.Since(ex.started)
	s.metrics.RecordRequest(ex.status, duration)

	s.Logger.Debug("request handled",
		Field{"method", ex.method()},
		Field{"path", ex.path()},
		Field{"status", desc.Status},
		Field{"bytes", len(payload)},
		Field{"duration_ms", duration.Milliseconds()},
	)
	return nil
}
