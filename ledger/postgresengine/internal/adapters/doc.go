// Package adapters provides database adapter implementations for the
// PostgreSQL ledger engine.
//
// It implements the adapter pattern to support multiple PostgreSQL client
// libraries: pgxpool.Pool, sql.DB, and sqlx.DB. All adapters provide
// equivalent functionality through a common DBAdapter interface, so the
// ledger engine works with any supported connection type.
package adapters
