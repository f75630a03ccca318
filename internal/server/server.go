package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync/atomic"

	"github.com/Brownie44l1/minipig/internal/environ"
	"github.com/Brownie44l1/minipig/internal/response"
)

// Config configures a Server. Zero fields take their DefaultConfig values.
type Config struct {
	// Addr is host:port. An empty host binds all interfaces.
	Addr string

	// ReadBufferSize bounds the single read that makes up a request
	ReadBufferSize int

	// HeaderSeparator goes between header name and value in responses
	HeaderSeparator string

	// Backlog is the listen queue length. Only all-interfaces binds on a
	// fixed port can set it; other binds get the OS default.
	Backlog int

	// ErrorOutput is the gateway.errors stream handed to applications
	ErrorOutput io.Writer

	Logger Logger
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":7777",
		ReadBufferSize:  1024,
		HeaderSeparator: response.DefaultSeparator,
		Backlog:         1,
		ErrorOutput:     os.Stderr,
		Logger:          NewDefaultLogger(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.HeaderSeparator == "" {
		c.HeaderSeparator = d.HeaderSeparator
	}
	if c.Backlog <= 0 {
		c.Backlog = d.Backlog
	}
	if c.ErrorOutput == nil {
		c.ErrorOutput = d.ErrorOutput
	}
	if c.Logger == nil {
		c.Logger = d.Logger
	}
	return c
}

// Server accepts one connection at a time and runs exactly one request on it.
type Server struct {
	config      Config
	listener    listener
	identity    environ.Identity
	builder     *environ.Builder
	app         Application
	middlewares []Middleware
	metrics     *Metrics
	closed      atomic.Bool

	Logger Logger
}

// Listen binds the listening socket and resolves the server identity
func Listen(config Config) (*Server, error) {
	config = config.withDefaults()

	l, err := listen(config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBind, err)
	}

	identity := resolveIdentity(l.Addr())

	return &Server{
		config:   config,
		listener: l,
		identity: identity,
		builder:  environ.NewBuilder(identity).WithErrors(config.ErrorOutput),
		metrics:  NewMetrics(),
		Logger:   config.Logger,
	}, nil
}

// SetApplication stores the application. It must be called before ServeForever.
func (s *Server) SetApplication(app Application) {
	s.app = app
}

// Use adds middleware around the application. The first added runs outermost.
func (s *Server) Use(mw Middleware) {
	s.middlewares = append(s.middlewares, mw)
}

// Identity returns the name and port applications see as SERVER_NAME and SERVER_PORT
func (s *Server) Identity() environ.Identity {
	return s.identity
}

// Addr returns the bound address as host:port
func (s *Server) Addr() string {
	return s.listener.Addr()
}

// Stats returns a snapshot of the server counters
func (s *Server) Stats() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// ServeForever accepts connections in arrival order and handles each one
// to completion before accepting the next.
//
// It only returns on failure. Any request error ends the loop and is returned
// after its connection has been closed; ErrServerClosed is returned after Close.
func (s *Server) ServeForever() error {
	if s.app == nil {
		return ErrNoApplication
	}
	app := Chain(s.app, s.middlewares...)

	s.Logger.Info("serving",
		Field{"addr", s.listener.Addr()},
		Field{"server_name", s.identity.Name},
		Field{"server_port", s.identity.Port},
	)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() || errors.Is(err, net.ErrClosed) {
				return ErrServerClosed
			}
			s.Logger.Error("accept failed", Field{"error", err})
			return fmt.Errorf("accept: %w", err)
		}

		if err := s.handleOneRequest(conn, app); err != nil {
			s.Logger.Error("request failed, stopping", Field{"error", err})
			return err
		}
	}
}

// Close stops the listener. A blocked ServeForever returns ErrServerClosed.
func (s *Server) Close() error {
	s.closed.Store(true)
	return s.listener.Close()
}
