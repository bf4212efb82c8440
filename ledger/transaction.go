package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is one append-only ledger entry. Entries are never mutated or
// deleted; the log is the audit trail. Amount is always positive, direction
// is encoded by From and To.
type Transaction struct {
	ID         uuid.UUID
	Account    AccountID
	From       PersonaID
	To         PersonaID
	Amount     int64
	Memo       string
	OccurredAt time.Time
}

// NewTransaction builds a ledger entry for a completed money movement.
// The stored id and timestamp may still be replaced by the transaction log
// when it assigns server-side values.
func NewTransaction(account AccountID, from PersonaID, to PersonaID, amount GoldAmount, memo string, at time.Time) Transaction {
	return Transaction{
		ID:         uuid.New(),
		Account:    account,
		From:       from,
		To:         to,
		Amount:     amount.Int64(),
		Memo:       memo,
		OccurredAt: ToOccurredAt(at),
	}
}
