package server

import (
	"github.com/Brownie44l1/minipig/internal/environ"
	"github.com/Brownie44l1/minipig/internal/response"
)

// Application is the pluggable request logic the server calls once per request.
// It must call respond.Respond exactly once before the returned body is consumed.
type Application interface {
	Serve(env *environ.Environment, respond response.Responder) (response.Body, error)
}

// ApplicationFunc lets a plain function act as an Application
type ApplicationFunc func(env *environ.Environment, respond response.Responder) (response.Body, error)

func (f ApplicationFunc) Serve(env *environ.Environment, respond response.Responder) (response.Body, error) {
	return f(env, respond)
}

// Middleware wraps an Application
type Middleware func(Application) Application

// Chain applies middlewares so the first one listed is the outermost
func Chain(app Application, mws ...Middleware) Application {
	for i := len(mws) - 1; i >= 0; i-- {
		app = mws[i](app)
	}
	return app
}
