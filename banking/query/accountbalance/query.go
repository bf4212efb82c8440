package accountbalance

import (
	"github.com/arelgame/coinhouse/banking/access"
	"github.com/arelgame/coinhouse/ledger"
)

const (
	queryType = "AccountBalance"
)

// Query represents the intent to read the balance of a persona's account
// at a coinhouse, as seen by a viewer.
type Query struct {
	Viewer     ledger.PersonaID
	Persona    ledger.PersonaID
	Coinhouse  ledger.CoinhouseTag
	Membership access.Membership
}

// BuildQuery creates a new Query.
func BuildQuery(
	viewer ledger.PersonaID,
	persona ledger.PersonaID,
	coinhouse ledger.CoinhouseTag,
	membership access.Membership,
) Query {
	return Query{
		Viewer:     viewer,
		Persona:    persona,
		Coinhouse:  coinhouse,
		Membership: membership,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
