// Package core holds the domain events emitted by the banking command
// handlers. Events are immutable values carrying their own type identifier
// and occurrence time; they are published through the dispatch.EventBus
// after the mutation they describe has been committed.
package core
