// Package ledgertest provides test doubles for the ledger observability
// interfaces: a logger spy and a metrics collector spy that capture calls
// for inspection without any backend.
package ledgertest
