package ledger

import (
	"fmt"
	"time"
)

// Account is one ledger account, identified by the deterministic AccountID
// derived from its (persona, coinhouse) pair.
//
// Account values are immutable snapshots: every mutating method returns a new
// value, and the whole snapshot is persisted through SaveAccount. Version is
// the optimistic concurrency stamp - it holds the version the snapshot was
// loaded at (zero for a not-yet-persisted account) and is bumped by the store
// on a successful save.
type Account struct {
	ID             AccountID
	Persona        PersonaID
	Coinhouse      CoinhouseTag
	Debit          int64 // current balance, never negative
	Credit         int64 // reserved for share issuance, unused by the current handlers
	OpenedAt       time.Time
	LastAccessedAt time.Time
	Holders        []AccountHolder
	Version        uint
}

// OpenAccount creates a fresh account snapshot with the opener as its Owner.
func OpenAccount(persona PersonaID, coinhouse CoinhouseTag, holderType HolderType, ownerName string, at time.Time) Account {
	openedAt := ToOccurredAt(at)

	return Account{
		ID:             AccountIDFor(persona, coinhouse),
		Persona:        persona,
		Coinhouse:      coinhouse,
		Debit:          0,
		Credit:         0,
		OpenedAt:       openedAt,
		LastAccessedAt: openedAt,
		Holders: []AccountHolder{{
			HolderID:   persona,
			HolderType: holderType,
			Role:       RoleOwner,
			Name:       ownerName,
		}},
	}
}

// Deposit returns a snapshot with the balance increased by amount.
func (a Account) Deposit(amount GoldAmount, at time.Time) Account {
	next := a.clone()
	next.Debit += amount.Int64()
	next.LastAccessedAt = ToOccurredAt(at)

	return next
}

// Withdraw returns a snapshot with the balance decreased by amount, or
// ErrInsufficientBalance when the account cannot cover it. The check and the
// mutation are a single step on the snapshot, so the persisted-version guard
// in SaveAccount is the only other thing needed to keep Debit non-negative
// under concurrent execution.
func (a Account) Withdraw(amount GoldAmount, at time.Time) (Account, error) {
	if amount.Int64() > a.Debit {
		return Account{}, fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientBalance, a.Debit, amount.Int64())
	}

	next := a.clone()
	next.Debit -= amount.Int64()
	next.LastAccessedAt = ToOccurredAt(at)

	return next, nil
}

// WithHolder returns a snapshot with the given holder appended, or
// ErrHolderConflict when the persona already holds a grant.
func (a Account) WithHolder(holder AccountHolder, at time.Time) (Account, error) {
	if _, ok := a.HolderFor(holder.HolderID); ok {
		return Account{}, fmt.Errorf("%w: %s", ErrHolderConflict, holder.HolderID)
	}

	next := a.clone()
	next.Holders = append(next.Holders, holder)
	next.LastAccessedAt = ToOccurredAt(at)

	return next, nil
}

// WithoutHolder returns a snapshot with the persona's grant removed.
// The last remaining owner can never be removed.
func (a Account) WithoutHolder(persona PersonaID, at time.Time) (Account, error) {
	holder, ok := a.HolderFor(persona)
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrHolderNotFound, persona)
	}

	if holder.Role == RoleOwner && a.countOwners() == 1 {
		return Account{}, ErrLastOwnerProtected
	}

	next := a.clone()
	remaining := make([]AccountHolder, 0, len(next.Holders)-1)

	for _, h := range next.Holders {
		if h.HolderID != persona {
			remaining = append(remaining, h)
		}
	}

	next.Holders = remaining
	next.LastAccessedAt = ToOccurredAt(at)

	return next, nil
}

// HolderFor returns the holder entry for a persona, if it has one.
func (a Account) HolderFor(persona PersonaID) (AccountHolder, bool) {
	for _, h := range a.Holders {
		if h.HolderID == persona {
			return h, true
		}
	}

	return AccountHolder{}, false
}

func (a Account) countOwners() int {
	count := 0

	for _, h := range a.Holders {
		if h.Role == RoleOwner {
			count++
		}
	}

	return count
}

// clone deep-copies the snapshot so that the holders slice is never shared
// between two versions of the account.
func (a Account) clone() Account {
	next := a
	next.Holders = make([]AccountHolder, len(a.Holders))
	copy(next.Holders, a.Holders)

	return next
}
