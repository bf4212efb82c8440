package dispatch

import (
	"context"
	"fmt"
	"reflect"
)

// Query represents the intent to read state without side effects.
type Query interface {
	QueryType() string
}

// QueryHandler processes queries of the concrete type Q and produces R.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// QueryDispatcher routes queries to their single registered handler. It
// never publishes events and never mutates state, so it is safe to invoke
// concurrently and redundantly.
type QueryDispatcher struct {
	handlers map[reflect.Type]func(ctx context.Context, query Query) (any, error)
}

// NewQueryDispatcher creates an empty query dispatcher.
func NewQueryDispatcher() *QueryDispatcher {
	return &QueryDispatcher{
		handlers: make(map[reflect.Type]func(ctx context.Context, query Query) (any, error)),
	}
}

// RegisterQueryHandler binds the handler to the concrete query type Q.
// Like command registration, duplicates fail fast at startup.
func RegisterQueryHandler[Q Query, R any](dispatcher *QueryDispatcher, handler QueryHandler[Q, R]) error {
	var zero Q
	queryType := reflect.TypeOf(zero)

	if _, exists := dispatcher.handlers[queryType]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, zero.QueryType())
	}

	dispatcher.handlers[queryType] = func(ctx context.Context, query Query) (any, error) {
		return handler.Handle(ctx, query.(Q))
	}

	return nil
}

// DispatchQuery routes the query and returns its typed result.
func DispatchQuery[R any](ctx context.Context, dispatcher *QueryDispatcher, query Query) (R, error) {
	var zero R

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	handle, exists := dispatcher.handlers[reflect.TypeOf(query)]
	if !exists {
		return zero, fmt.Errorf("%w: %s", ErrNoHandler, query.QueryType())
	}

	result, err := handle(ctx, query)
	if err != nil {
		return zero, err
	}

	typed, ok := result.(R)
	if !ok {
		return zero, fmt.Errorf("query %s produced %T, caller expected %T", query.QueryType(), result, zero)
	}

	return typed, nil
}
