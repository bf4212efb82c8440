package accountstatement

import (
	"github.com/arelgame/coinhouse/banking/access"
	"github.com/arelgame/coinhouse/ledger"
)

const (
	queryType = "AccountStatement"
)

// Query represents the intent to read the transaction history of a
// persona's account at a coinhouse. Limit caps the number of entries;
// zero means no cap.
type Query struct {
	Viewer     ledger.PersonaID
	Persona    ledger.PersonaID
	Coinhouse  ledger.CoinhouseTag
	Membership access.Membership
	Limit      int
}

// BuildQuery creates a new Query.
func BuildQuery(
	viewer ledger.PersonaID,
	persona ledger.PersonaID,
	coinhouse ledger.CoinhouseTag,
	membership access.Membership,
	limit int,
) Query {
	return Query{
		Viewer:     viewer,
		Persona:    persona,
		Coinhouse:  coinhouse,
		Membership: membership,
		Limit:      limit,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
