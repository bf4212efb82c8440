package postgresengine

import (
	"errors"

	"github.com/arelgame/coinhouse/ledger"
)

const (
	defaultCoinhousesTableName   = "coinhouses"
	defaultAccountsTableName     = "coinhouse_accounts"
	defaultTransactionsTableName = "coinhouse_transactions"
)

// ErrEmptyTableName is returned when a table name option is empty.
var ErrEmptyTableName = errors.New("table name must not be empty")

// TableNames carries the names of the three ledger tables.
type TableNames struct {
	Coinhouses   string
	Accounts     string
	Transactions string
}

func defaultTableNames() TableNames {
	return TableNames{
		Coinhouses:   defaultCoinhousesTableName,
		Accounts:     defaultAccountsTableName,
		Transactions: defaultTransactionsTableName,
	}
}

// Option defines a functional option for configuring the Store.
type Option func(*Store) error

// WithTableNames overrides the default ledger table names.
func WithTableNames(names TableNames) Option {
	return func(s *Store) error {
		if names.Coinhouses == "" || names.Accounts == "" || names.Transactions == "" {
			return ErrEmptyTableName
		}

		s.tables = names

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: SQL statements with execution timing (development use)
// Info level: operation outcomes and durations (production-safe)
// Warn level: non-critical issues like cleanup failures
// Error level: failures that cause operation errors.
func WithLogger(logger ledger.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}
