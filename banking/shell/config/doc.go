// Package config provides database and catalog configuration for the
// banking runtime.
//
// It contains factory functions for creating PostgreSQL connections using
// the supported drivers (pgxpool.Pool, sql.DB, sqlx.DB), with the DSN and
// catalog path taken from the environment. This package is part of the
// shell (infrastructure) layer.
package config
