package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAmountMustBePositive is returned when a gold amount is zero or negative.
	ErrAmountMustBePositive = errors.New("amount must be positive")

	// ErrReasonLength is returned when a transaction reason is outside the allowed length.
	ErrReasonLength = fmt.Errorf("reason must be between %d and %d characters", minReasonLength, maxReasonLength)
)

const (
	minReasonLength = 3
	maxReasonLength = 200
)

// GoldAmount is a positive quantity of gold moved by a single transaction.
type GoldAmount struct {
	value int64
}

// NewGoldAmount validates that the amount is strictly positive.
// Transactions always carry a positive amount; direction is encoded by
// the from/to personas, never by the sign.
func NewGoldAmount(value int64) (GoldAmount, error) {
	if value <= 0 {
		return GoldAmount{}, ErrAmountMustBePositive
	}

	return GoldAmount{value: value}, nil
}

// Int64 returns the raw amount.
func (a GoldAmount) Int64() int64 {
	return a.value
}

// TransactionReason is the validated free-text justification attached to a money movement.
type TransactionReason struct {
	text string
}

// NewTransactionReason validates the reason length (3 to 200 characters after trimming).
func NewTransactionReason(raw string) (TransactionReason, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < minReasonLength || len(trimmed) > maxReasonLength {
		return TransactionReason{}, ErrReasonLength
	}

	return TransactionReason{text: trimmed}, nil
}

// String returns the reason text.
func (r TransactionReason) String() string {
	return r.text
}
