package server

import "errors"

// Error kinds. Causes are wrapped beneath them, so both errors.Is(err, ErrParse)
// and errors.Is(err, request.ErrMalformedRequestLine) hold for a bad request line.
var (
	ErrBind          = errors.New("bind failed")
	ErrReceive       = errors.New("receive failed")
	ErrParse         = errors.New("parse failed")
	ErrApplication   = errors.New("application failed")
	ErrSend          = errors.New("send failed")
	ErrNoApplication = errors.New("no application set")
	ErrServerClosed  = errors.New("server closed")
)
