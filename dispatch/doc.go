// Package dispatch is the generic command/query routing core.
//
// Commands carry intent to mutate state and are routed to exactly one
// registered handler; the registration map is validated eagerly so a
// duplicate handler is a startup error, never a dispatch-time surprise.
// On a successful result the dispatcher publishes a CommandExecuted event
// plus the handler's domain events through the EventBus. Queries are the
// read-only counterpart: no events, no mutation, safe to run concurrently.
package dispatch
