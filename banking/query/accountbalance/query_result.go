package accountbalance

import (
	"time"

	"github.com/arelgame/coinhouse/banking/access"
	"github.com/arelgame/coinhouse/ledger"
)

// HolderInfo describes one holder of the account as exposed to viewers.
type HolderInfo struct {
	Persona ledger.PersonaID
	Type    ledger.HolderType
	Role    ledger.HolderRole
	Name    string
}

// AccountBalance is the query result: the account's balances, its holders,
// and what the viewer may do with it.
type AccountBalance struct {
	Account        ledger.AccountID
	Coinhouse      ledger.CoinhouseTag
	Debit          int64
	Credit         int64
	Holders        []HolderInfo
	Access         access.Profile
	LastAccessedAt time.Time
}
