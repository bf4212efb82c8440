package joinaccount

import (
	"time"

	"github.com/arelgame/coinhouse/ledger"
)

const commandType = "JoinCoinhouseAccount"

// Command represents the intent to grant a persona a role on an existing
// shared account. It is typically produced by the capability-document
// adapter, but can be dispatched directly as well.
type Command struct {
	Account    ledger.AccountID
	Joiner     ledger.PersonaID
	HolderType ledger.HolderType
	Role       ledger.HolderRole
	Name       string
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for routing and observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	account ledger.AccountID,
	joiner ledger.PersonaID,
	holderType ledger.HolderType,
	role ledger.HolderRole,
	name string,
	occurredAt time.Time,
) Command {
	return Command{
		Account:    account,
		Joiner:     joiner,
		HolderType: holderType,
		Role:       role,
		Name:       name,
		OccurredAt: ledger.ToOccurredAt(occurredAt),
	}
}
