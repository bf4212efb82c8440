package postgresengine

import (
	"context"
	"fmt"
)

// EnsureSchema creates the ledger tables if they do not exist yet. Meant for
// development setups and tests; production deployments should manage the
// schema with their migration tooling.
func (s Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			tag TEXT PRIMARY KEY,
			settlement TEXT NOT NULL,
			engine_id TEXT NOT NULL DEFAULT ''
		)`, s.tables.Coinhouses),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			account_id UUID PRIMARY KEY,
			persona TEXT NOT NULL,
			coinhouse_tag TEXT NOT NULL,
			debit BIGINT NOT NULL DEFAULT 0,
			credit BIGINT NOT NULL DEFAULT 0,
			opened_at TIMESTAMPTZ NOT NULL,
			last_accessed_at TIMESTAMPTZ NOT NULL,
			holders JSONB NOT NULL DEFAULT '[]',
			version BIGINT NOT NULL
		)`, s.tables.Accounts),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			entry_no BIGSERIAL PRIMARY KEY,
			transaction_id UUID NOT NULL,
			account_id UUID NOT NULL,
			from_persona TEXT NOT NULL,
			to_persona TEXT NOT NULL,
			amount BIGINT NOT NULL,
			memo TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMPTZ NOT NULL
		)`, s.tables.Transactions),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_account_idx ON %s (account_id, entry_no DESC)`,
			s.tables.Transactions, s.tables.Transactions),
	}

	for _, statement := range statements {
		if _, _, err := s.executeStatement(ctx, statement); err != nil {
			return err
		}
	}

	return nil
}
