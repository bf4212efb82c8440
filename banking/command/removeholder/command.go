package removeholder

import (
	"time"

	"github.com/arelgame/coinhouse/ledger"
)

const commandType = "RemoveAccountHolder"

// Command represents the intent to revoke a persona's grant on an account.
type Command struct {
	Account    ledger.AccountID
	Holder     ledger.PersonaID
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for routing and observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(account ledger.AccountID, holder ledger.PersonaID, occurredAt time.Time) Command {
	return Command{
		Account:    account,
		Holder:     holder,
		OccurredAt: ledger.ToOccurredAt(occurredAt),
	}
}
