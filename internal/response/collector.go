package response

import (
	"errors"
	"time"

	"github.com/Brownie44l1/minipig/internal/headers"
)

const (
	ServerName = "minipig v0.2"

	// DateLayout renders like "Sat Oct 17 09:04:05 2026"
	DateLayout = "Mon Jan 02 15:04:05 2006"
)

var (
	ErrHeadersAlreadyCommitted = errors.New("response headers already committed")
	ErrHeadersNotCommitted     = errors.New("response headers not committed")
)

// Responder is the callback an application uses to declare status and headers.
// It must be called exactly once, before any body chunk is produced.
//
// errInfo is accepted for compatibility with the calling convention but is
// ignored: headers are never replaced once committed.
type Responder interface {
	Respond(status string, fields []headers.Field, errInfo error) error
}

// Descriptor is the committed status line and full header list
type Descriptor struct {
	Status  string
	Headers *headers.Headers
}

type collectorState int

const (
	statePending collectorState = iota
	stateCommitted
)

// Collector records what the application passed to Respond and appends the
// server's own Server and Date headers after the application's.
type Collector struct {
	now   func() time.Time
	state collectorState
	desc  Descriptor
}

func NewCollector() *Collector {
	return &Collector{
		now:   time.Now,
		state: statePending,
	}
}

// NewCollectorWithClock is NewCollector with a fixed time source
func NewCollectorWithClock(now func() time.Time) *Collector {
	c := NewCollector()
	c.now = now
	return c
}

// Respond implements Responder
func (c *Collector) Respond(status string, fields []headers.Field, errInfo error) error {
	if c.state != statePending {
		return ErrHeadersAlreadyCommitted
	}

	h := headers.NewHeaders(fields...)
	h.Add("Server", ServerName)
	h.Add("Date", c.now().Local().Format(DateLayout))

	c.desc = Descriptor{
		Status:  status,
		Headers: h,
	}
	c.state = stateCommitted
	return nil
}

// Descriptor returns the committed response head
func (c *Collector) Descriptor() (Descriptor, error) {
	if c.state != stateCommitted {
		return Descriptor{}, ErrHeadersNotCommitted
	}
	return c.desc, nil
}
