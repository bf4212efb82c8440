// Package postgresengine implements the ledger storage interfaces on
// PostgreSQL. It supports pgxpool.Pool, sql.DB, and sqlx.DB connections
// through internal adapters, builds its SQL with goqu, and enforces the
// account version check on every save so concurrent writers cannot lose
// updates.
package postgresengine
