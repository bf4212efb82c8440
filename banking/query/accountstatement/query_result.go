package accountstatement

import (
	"time"

	"github.com/google/uuid"

	"github.com/arelgame/coinhouse/ledger"
)

// StatementEntry is one transaction as it appears on the statement.
type StatementEntry struct {
	TransactionID uuid.UUID
	From          ledger.PersonaID
	To            ledger.PersonaID
	Amount        int64
	Memo          string
	OccurredAt    time.Time
}

// AccountStatement is the query result: the account's transactions,
// newest first.
type AccountStatement struct {
	Account   ledger.AccountID
	Coinhouse ledger.CoinhouseTag
	Entries   []StatementEntry
	Count     int
}
