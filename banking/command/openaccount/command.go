package openaccount

import (
	"time"

	"github.com/arelgame/coinhouse/ledger"
)

const commandType = "OpenCoinhouseAccount"

// Command represents the intent to explicitly open an account at a
// coinhouse. Opening an account that already exists is an idempotent
// success, mirroring the implicit creation on first deposit.
type Command struct {
	Persona    ledger.PersonaID
	Coinhouse  ledger.CoinhouseTag
	OwnerName  string
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for routing and observability.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(persona ledger.PersonaID, coinhouse ledger.CoinhouseTag, ownerName string, occurredAt time.Time) Command {
	return Command{
		Persona:    persona,
		Coinhouse:  coinhouse,
		OwnerName:  ownerName,
		OccurredAt: ledger.ToOccurredAt(occurredAt),
	}
}
