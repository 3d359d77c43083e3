package mediator

import (
	"context"
)

// Request represents a command or query
type Request interface{}

// Response represents the result of handling a request
type Response interface{}

// RequestHandler handles a specific request type
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// HandlerFunc is a function that handles a request
type HandlerFunc func(ctx context.Context, request Request) (Response, error)

// Handle calls f
func (f HandlerFunc) Handle(ctx context.Context, request Request) (Response, error) {
	return f(ctx, request)
}

// Middleware wraps handler execution with cross-cutting concerns such as
// logging or request limiting
type Middleware func(ctx context.Context, request Request, next HandlerFunc) (Response, error)

// Wrap applies a middleware to a handler
func Wrap(handler RequestHandler, middleware Middleware) RequestHandler {
	return HandlerFunc(func(ctx context.Context, request Request) (Response, error) {
		return middleware(ctx, request, handler.Handle)
	})
}
