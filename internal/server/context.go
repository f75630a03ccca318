package server

import (
	"io"
	"time"

	"github.com/Brownie44l1/minipig/internal/environ"
	"github.com/Brownie44l1/minipig/internal/request"
	"github.com/Brownie44l1/minipig/internal/response"
)

// exchange is everything that belongs to one request. It lives for one
// handleOneRequest call and is never stored on the Server.
type exchange struct {
	conn      io.ReadWriteCloser
	started   time.Time
	request   *request.Request
	env       *environ.Environment
	collector *response.Collector
	status    response.StatusCode
}

func newExchange(conn io.ReadWriteCloser) *exchange {
	return &exchange{
		conn:      conn,
		started:   time.Now(),
		collector: response.NewCollector(),
	}
}

func (ex *exchange) method() string {
	if ex.request == nil {
		return ""
	}
	return ex.request.Method()
}

func (ex *exchange) path() string {
	if ex.request == nil {
		return ""
	}
	return ex.request.Path()
}
