package dispatch

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNilEventBus is returned when a dispatcher is built without a bus.
	ErrNilEventBus = errors.New("event bus must not be nil")

	// ErrDuplicateHandler is returned when a second handler is registered
	// for a command type. Exactly one handler per type is a configuration
	// invariant, enforced at registration so it fails at startup.
	ErrDuplicateHandler = errors.New("a handler is already registered for this command type")

	// ErrNoHandler is returned when a command's type has no registered handler.
	ErrNoHandler = errors.New("no handler registered for this command type")
)

// CommandHandler processes commands of the concrete type C.
//
// Business failures (validation, not-found, insufficient funds, conflicts)
// come back as a failed CommandResult with a nil error. The error return is
// reserved for context cancellation, which is the only condition allowed to
// propagate instead of being folded into the result.
type CommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (CommandResult, error)
}

// CommandDispatcher routes commands to their single registered handler and
// publishes events for successful mutations.
type CommandDispatcher struct {
	handlers map[reflect.Type]func(ctx context.Context, command Command) (CommandResult, error)
	bus      *EventBus
	logger   Logger
}

// DispatcherOption configures a CommandDispatcher.
type DispatcherOption func(*CommandDispatcher)

// WithDispatcherLogger sets the logger for dispatch diagnostics.
func WithDispatcherLogger(logger Logger) DispatcherOption {
	return func(d *CommandDispatcher) {
		d.logger = logger
	}
}

// NewCommandDispatcher creates a dispatcher publishing through the given bus.
func NewCommandDispatcher(bus *EventBus, opts ...DispatcherOption) (*CommandDispatcher, error) {
	if bus == nil {
		return nil, ErrNilEventBus
	}

	dispatcher := &CommandDispatcher{
		handlers: make(map[reflect.Type]func(ctx context.Context, command Command) (CommandResult, error)),
		bus:      bus,
	}

	for _, opt := range opts {
		opt(dispatcher)
	}

	return dispatcher, nil
}

// RegisterCommandHandler binds the handler to the concrete command type C.
// Registering a second handler for the same type fails immediately; callers
// are expected to treat this as a fatal startup error.
func RegisterCommandHandler[C Command](dispatcher *CommandDispatcher, handler CommandHandler[C]) error {
	var zero C
	commandType := reflect.TypeOf(zero)

	if _, exists := dispatcher.handlers[commandType]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, zero.CommandType())
	}

	dispatcher.handlers[commandType] = func(ctx context.Context, command Command) (CommandResult, error) {
		return handler.Handle(ctx, command.(C))
	}

	return nil
}

// Dispatch routes the command to its handler and, on a successful result,
// publishes the handler's domain events followed by a CommandExecuted event.
// Events are published after the handler returns, so subscribers always
// observe committed state.
func (d *CommandDispatcher) Dispatch(ctx context.Context, command Command) (CommandResult, error) {
	if err := ctx.Err(); err != nil {
		return CommandResult{}, err
	}

	handle, exists := d.handlers[reflect.TypeOf(command)]
	if !exists {
		return CommandResult{}, fmt.Errorf("%w: %s", ErrNoHandler, command.CommandType())
	}

	result, err := handle(ctx, command)
	if err != nil {
		return result, err
	}

	if result.Success {
		for _, event := range result.Events {
			d.bus.Publish(ctx, event)
		}

		d.bus.Publish(ctx, CommandExecuted{Command: command, Result: result})
	} else if d.logger != nil {
		d.logger.Debug("command rejected",
			"command_type", command.CommandType(),
			"error_message", result.ErrorMessage)
	}

	return result, nil
}

// DispatchBatch executes each command independently: one failure does not
// abort the others, and events are published per successful command, so the
// batch is deliberately not atomic. Cancellation stops the remaining
// commands and propagates as an error.
func (d *CommandDispatcher) DispatchBatch(ctx context.Context, commands []Command) (BatchResult, error) {
	batch := BatchResult{
		TotalCount: len(commands),
		Results:    make([]CommandResult, 0, len(commands)),
	}

	for _, command := range commands {
		result, err := d.Dispatch(ctx, command)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return batch, err
			}

			result = Fail(err.Error())
		}

		if result.Success {
			batch.SuccessCount++
		}

		batch.Results = append(batch.Results, result)
	}

	batch.AllSucceeded = batch.SuccessCount == batch.TotalCount

	return batch, nil
}

// HandlerCount returns the number of registered command handlers.
func (d *CommandDispatcher) HandlerCount() int {
	return len(d.handlers)
}
