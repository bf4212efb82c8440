package ledger

import (
	"errors"
)

var (
	// ErrCoinhouseNotFound is returned when no coinhouse exists for a tag.
	ErrCoinhouseNotFound = errors.New("coinhouse not found")

	// ErrAccountNotFound is returned when no account exists for an id
	// where existence is required.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientBalance is returned when a withdrawal would drive
	// the balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrHolderConflict is returned when a persona is already a holder
	// of the account it tries to join.
	ErrHolderConflict = errors.New("persona is already a holder of this account")

	// ErrHolderNotFound is returned when removing a persona that holds
	// no grant on the account.
	ErrHolderNotFound = errors.New("persona is not a holder of this account")

	// ErrLastOwnerProtected is returned when removing a holder would
	// leave the account without any owner.
	ErrLastOwnerProtected = errors.New("account must keep at least one owner")

	// ErrConcurrencyConflict is returned by SaveAccount when the stored
	// account version no longer matches the loaded snapshot. Callers are
	// expected to reload and retry the whole read-modify-write.
	ErrConcurrencyConflict = errors.New("concurrency conflict, account version mismatch")
)
