package withdrawgold

import (
	"time"

	"github.com/arelgame/coinhouse/ledger"
)

const commandType = "WithdrawGold"

// Command represents the intent to withdraw gold from an existing coinhouse
// account. Unlike a deposit, a withdrawal never creates an account.
type Command struct {
	Persona    ledger.PersonaID
	Coinhouse  ledger.CoinhouseTag
	Amount     int64
	Reason     string
	OccurredAt time.Time
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
	occurredAt time.Time,
) Command {
	return Command{
		Persona:    persona,
		Coinhouse:  coinhouse,
		Amount:     amount,
		Reason:     reason,
		OccurredAt: ledger.ToOccurredAt(occurredAt),
	}
}
