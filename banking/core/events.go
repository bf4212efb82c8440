package core

import (
	"time"

	"github.com/google/uuid"

	"github.com/arelgame/coinhouse/ledger"
)

// Event type identifiers.
const (
	GoldDepositedEventType = "GoldDeposited"
	GoldWithdrawnEventType = "GoldWithdrawn"
	AccountOpenedEventType = "AccountOpened"
	HolderJoinedEventType  = "HolderJoined"
	HolderRemovedEventType = "HolderRemoved"
)

// GoldDeposited represents a completed deposit into a coinhouse account.
type GoldDeposited struct {
	Account       ledger.AccountID
	Persona       ledger.PersonaID
	Coinhouse     ledger.CoinhouseTag
	Amount        int64
	TransactionID uuid.UUID
	OccurredAt    time.Time
}

// BuildGoldDeposited creates a GoldDeposited event.
func BuildGoldDeposited(transaction ledger.Transaction, coinhouse ledger.CoinhouseTag) GoldDeposited {
	return GoldDeposited{
		Account:       transaction.Account,
		Persona:       transaction.From,
		Coinhouse:     coinhouse,
		Amount:        transaction.Amount,
		TransactionID: transaction.ID,
		OccurredAt:    transaction.OccurredAt,
	}
}

// EventType returns the event type identifier.
func (e GoldDeposited) EventType() string { return GoldDepositedEventType }

// HasOccurredAt returns when this event occurred.
func (e GoldDeposited) HasOccurredAt() time.Time { return e.OccurredAt }

// GoldWithdrawn represents a completed withdrawal from a coinhouse account.
type GoldWithdrawn struct {
	Account       ledger.AccountID
	Persona       ledger.PersonaID
	Coinhouse     ledger.CoinhouseTag
	Amount        int64
	TransactionID uuid.UUID
	OccurredAt    time.Time
}

// BuildGoldWithdrawn creates a GoldWithdrawn event.
func BuildGoldWithdrawn(transaction ledger.Transaction, coinhouse ledger.CoinhouseTag) GoldWithdrawn {
	return GoldWithdrawn{
		Account:       transaction.Account,
		Persona:       transaction.To,
		Coinhouse:     coinhouse,
		Amount:        transaction.Amount,
		TransactionID: transaction.ID,
		OccurredAt:    transaction.OccurredAt,
	}
}

// EventType returns the event type identifier.
func (e GoldWithdrawn) EventType() string { return GoldWithdrawnEventType }

// HasOccurredAt returns when this event occurred.
func (e GoldWithdrawn) HasOccurredAt() time.Time { return e.OccurredAt }

// AccountOpened represents the explicit creation of a new account.
type AccountOpened struct {
	Account    ledger.AccountID
	Persona    ledger.PersonaID
	Coinhouse  ledger.CoinhouseTag
	OccurredAt time.Time
}

// BuildAccountOpened creates an AccountOpened event.
func BuildAccountOpened(account ledger.Account) AccountOpened {
	return AccountOpened{
		Account:    account.ID,
		Persona:    account.Persona,
		Coinhouse:  account.Coinhouse,
		OccurredAt: account.OpenedAt,
	}
}

// EventType returns the event type identifier.
func (e AccountOpened) EventType() string { return AccountOpenedEventType }

// HasOccurredAt returns when this event occurred.
func (e AccountOpened) HasOccurredAt() time.Time { return e.OccurredAt }

// HolderJoined represents a persona being granted a role on an account.
type HolderJoined struct {
	Account    ledger.AccountID
	Holder     ledger.PersonaID
	Role       ledger.HolderRole
	OccurredAt time.Time
}

// BuildHolderJoined creates a HolderJoined event.
func BuildHolderJoined(account ledger.AccountID, holder ledger.AccountHolder, occurredAt time.Time) HolderJoined {
	return HolderJoined{
		Account:    account,
		Holder:     holder.HolderID,
		Role:       holder.Role,
		OccurredAt: ledger.ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e HolderJoined) EventType() string { return HolderJoinedEventType }

// HasOccurredAt returns when this event occurred.
func (e HolderJoined) HasOccurredAt() time.Time { return e.OccurredAt }

// HolderRemoved represents a persona's grant being revoked from an account.
type HolderRemoved struct {
	Account    ledger.AccountID
	Holder     ledger.PersonaID
	OccurredAt time.Time
}

// BuildHolderRemoved creates a HolderRemoved event.
func BuildHolderRemoved(account ledger.AccountID, holder ledger.PersonaID, occurredAt time.Time) HolderRemoved {
	return HolderRemoved{
		Account:    account,
		Holder:     holder,
		OccurredAt: ledger.ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e HolderRemoved) EventType() string { return HolderRemovedEventType }

// HasOccurredAt returns when this event occurred.
func (e HolderRemoved) HasOccurredAt() time.Time { return e.OccurredAt }
