package depositgold

import (
	"time"

	"github.com/arelgame/coinhouse/ledger"
)

const commandType = "DepositGold"

// Command represents the intent to deposit gold into a coinhouse account.
// The first deposit of a (persona, coinhouse) pair creates the account with
// the depositor as its Owner.
type Command struct {
	Persona       ledger.PersonaID
	Coinhouse     ledger.CoinhouseTag
	Amount        int64
	Reason        string
	DepositorName string
	OccurredAt    time.Time
}

// CommandType returns the type identifier for this command, used for routing and observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	persona ledger.PersonaID,
	coinhouse ledger.CoinhouseTag,
	amount int64,
	reason string,
	depositorName string,
	occurredAt time.Time,
) Command {
	return Command{
		Persona:       persona,
		Coinhouse:     coinhouse,
		Amount:        amount,
		Reason:        reason,
		DepositorName: depositorName,
		OccurredAt:    ledger.ToOccurredAt(occurredAt),
	}
}
