package dispatch

// Command represents the intent to execute a specific state-changing
// operation. Each command is an immutable value carrying everything its
// handler needs. The CommandType method enables routing and observability
// instrumentation.
type Command interface {
	CommandType() string
}

// Event is anything that can be published through the EventBus. Events are
// delivered to subscribers keyed by their concrete type.
type Event interface {
	EventType() string
}

// CommandResult is the outcome of one command execution. Business failures
// are expressed as a failed result, never as a returned error, so callers
// need no error handling for ordinary failure paths.
type CommandResult struct {
	Success      bool
	ErrorMessage string
	Data         map[string]any

	// Events holds the domain events describing the mutation. The
	// dispatcher publishes them after the handler returns a successful
	// result; handlers never touch the bus themselves.
	Events []Event
}

// Ok creates a successful result without payload.
func Ok() CommandResult {
	return CommandResult{Success: true}
}

// OkWith creates a successful result carrying one data entry.
func OkWith(key string, value any) CommandResult {
	return CommandResult{
		Success: true,
		Data:    map[string]any{key: value},
	}
}

// Fail creates a failed result with a caller-facing message.
func Fail(message string) CommandResult {
	return CommandResult{Success: false, ErrorMessage: message}
}

// WithData returns a copy of the result with one more data entry.
func (r CommandResult) WithData(key string, value any) CommandResult {
	next := r
	next.Data = make(map[string]any, len(r.Data)+1)

	for k, v := range r.Data {
		next.Data[k] = v
	}

	next.Data[key] = value

	return next
}

// WithEvents returns a copy of the result carrying the given domain events.
func (r CommandResult) WithEvents(events ...Event) CommandResult {
	next := r
	next.Events = append(append([]Event(nil), r.Events...), events...)

	return next
}

// CommandExecuted is published by the dispatcher after every successfully
// executed command, following the handler's own domain events.
type CommandExecuted struct {
	Command Command
	Result  CommandResult
}

// EventType returns the event type identifier.
func (e CommandExecuted) EventType() string {
	return "CommandExecuted"
}

// BatchResult aggregates the outcome of a non-atomic batch dispatch.
// Partial success is expected and representable: each command executes
// independently and failures do not abort the rest of the batch.
type BatchResult struct {
	TotalCount   int
	SuccessCount int
	AllSucceeded bool
	Results      []CommandResult
}
