package ledger

import (
	"context"
)

// CoinhouseRepository resolves coinhouses loaded at world start.
type CoinhouseRepository interface {
	// GetCoinhouseByTag returns the coinhouse for a tag,
	// or ErrCoinhouseNotFound.
	GetCoinhouseByTag(ctx context.Context, tag CoinhouseTag) (Coinhouse, error)
}

// AccountRepository stores account snapshots.
type AccountRepository interface {
	// GetAccountFor returns the current snapshot of an account,
	// or ErrAccountNotFound.
	GetAccountFor(ctx context.Context, id AccountID) (Account, error)

	// SaveAccount persists a snapshot. The stored version must match the
	// snapshot's Version (zero meaning "must not exist yet"); on a mismatch
	// it returns ErrConcurrencyConflict and stores nothing. On success the
	// stored snapshot carries Version+1.
	SaveAccount(ctx context.Context, account Account) error
}

// TransactionLog is the append-only record of all money movement.
type TransactionLog interface {
	// RecordTransaction appends an entry and returns the stored form,
	// including any server-assigned id or timestamp.
	RecordTransaction(ctx context.Context, transaction Transaction) (Transaction, error)

	// TransactionsFor returns the most recent entries touching an account,
	// newest first. A limit of zero or less means no limit.
	TransactionsFor(ctx context.Context, account AccountID, limit int) ([]Transaction, error)
}
