package server

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/Brownie44l1/minipig/internal/environ"
	"github.com/Brownie44l1/minipig/internal/headers"
	"github.com/Brownie44l1/minipig/internal/response"
)

// LoggingMiddleware logs each application call with the status it committed
func LoggingMiddleware(logger Logger) Middleware {
	return func(next Application) Application {
		return ApplicationFunc(func(env *environ.Environment, respond response.Responder) (response.Body, error) {
			start := time.Now()
			rec := &statusRecorder{Responder: respond}

			body, err := next.Serve(env, rec)

			fields := []Field{
				{"method", env.Method()},
				{"path", env.Path()},
				{"status", rec.status},
				{"duration_ms", time.Since(start).Milliseconds()},
			}
			if err != nil {
				logger.Error("application failed", append(fields, Field{"error", err})...)
			} else {
				logger.Info("application returned", fields...)
			}
			return body, err
		})
	}
}

// RecoveryMiddleware turns a panic in the application into an error, so it
// surfaces as ErrApplication instead of taking the process down. Panics raised
// while the body is being consumed are converted too.
func RecoveryMiddleware(logger Logger) Middleware {
	return func(next Application) Application {
		return ApplicationFunc(func(env *environ.Environment, respond response.Responder) (body response.Body, err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						Field{"error", r},
						Field{"stack", string(debug.Stack())},
						Field{"path", env.Path()},
					)
					body, err = nil, fmt.Errorf("panic: %v", r)
				}
			}()

			body, err = next.Serve(env, respond)
			if err != nil || body == nil {
				return body, err
			}
			return recoverBody(body, logger), nil
		})
	}
}

func recoverBody(body response.Body, logger Logger) response.Body {
	return func(yield func([]byte, error) bool) {
		// panics from the consumer's loop body are not ours to swallow
		inYield := false
		defer func() {
			if r := recover(); r != nil {
				if inYield {
					panic(r)
				}
				logger.Error("panic recovered in body", Field{"error", r})
				yield(nil, fmt.Errorf("panic: %v", r))
			}
		}()

		for chunk, err := range body {
			inYield = true
			ok := yield(chunk, err)
			inYield = false
			if !ok {
				return
			}
		}
	}
}

// statusRecorder remembers the status passed through to the real responder
type statusRecorder struct {
	response.Responder
	status string
}

func (s *statusRecorder) Respond(status string, fields []headers.Field, errInfo error) error {
	err := s.Responder.Respond(status, fields, errInfo)
	if err == nil {
		s.status = status
	}
	return err
}
