package mediator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlorenz/robotgame-go/internal/application/mediator"
)

func TestHandlerFunc_Handle(t *testing.T) {
	handler := mediator.HandlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return request, nil
	})

	response, err := handler.Handle(context.Background(), "echo")

	require.NoError(t, err)
	assert.Equal(t, "echo", response)
}

func TestWrap_RunsMiddlewareAroundHandler(t *testing.T) {
	// Arrange
	var order []string
	handler := mediator.HandlerFunc(func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		order = append(order, "handler")
		return "done", nil
	})
	middleware := func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		order = append(order, "before")
		response, err := next(ctx, request)
		order = append(order, "after")
		return response, err
	}

	// Act
	response, err := mediator.Wrap(handler, middleware).Handle(context.Background(), "req")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "done", response)
	assert.Equal(t, []string{"before", "handler", "after"}, order)
}
