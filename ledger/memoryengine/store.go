// Package memoryengine provides a mutex-guarded in-memory implementation of
// the ledger repositories. It is the reference engine for tests and the demo;
// it enforces the same optimistic version check as the postgres engine, so
// handler retry behavior is identical against either.
package memoryengine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arelgame/coinhouse/ledger"
)

// Store implements ledger.CoinhouseRepository, ledger.AccountRepository and
// ledger.TransactionLog in memory.
type Store struct {
	mu           sync.RWMutex
	coinhouses   map[ledger.CoinhouseTag]ledger.Coinhouse
	accounts     map[ledger.AccountID]ledger.Account
	transactions map[ledger.AccountID][]ledger.Transaction
	clock        func() time.Time
	logger       ledger.Logger
}

// Option defines a functional option for configuring a Store.
type Option func(*Store)

// WithClock sets the time source used for server-assigned timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithLogger sets the logger for store diagnostics.
func WithLogger(logger ledger.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty in-memory store.
func NewStore(opts ...Option) *Store {
	store := &Store{
		coinhouses:   make(map[ledger.CoinhouseTag]ledger.Coinhouse),
		accounts:     make(map[ledger.AccountID]ledger.Account),
		transactions: make(map[ledger.AccountID][]ledger.Transaction),
		clock:        time.Now,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Seed installs the coinhouses loaded from definition data. Seeding happens
// once at world load; a duplicate tag in the definitions is a configuration
// error.
func (s *Store) Seed(coinhouses ...ledger.Coinhouse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, coinhouse := range coinhouses {
		if _, exists := s.coinhouses[coinhouse.Tag]; exists {
			return fmt.Errorf("duplicate coinhouse tag %q in definitions", coinhouse.Tag)
		}

		s.coinhouses[coinhouse.Tag] = coinhouse
	}

	return nil
}

// GetCoinhouseByTag implements ledger.CoinhouseRepository.
func (s *Store) GetCoinhouseByTag(_ context.Context, tag ledger.CoinhouseTag) (ledger.Coinhouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coinhouse, exists := s.coinhouses[tag]
	if !exists {
		return ledger.Coinhouse{}, fmt.Errorf("%w: %q", ledger.ErrCoinhouseNotFound, tag)
	}

	return coinhouse, nil
}

// GetAccountFor implements ledger.AccountRepository.
func (s *Store) GetAccountFor(_ context.Context, id ledger.AccountID) (ledger.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[id]
	if !exists {
		return ledger.Account{}, fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, id)
	}

	return cloneAccount(account), nil
}

// SaveAccount implements the optimistic upsert of ledger.AccountRepository.
// A snapshot with Version zero must not exist yet; any other snapshot must
// match the stored version exactly. Both mismatches surface as
// ledger.ErrConcurrencyConflict so callers reload and retry.
func (s *Store) SaveAccount(_ context.Context, account ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.accounts[account.ID]

	if account.Version == 0 {
		if exists {
			return fmt.Errorf("%w: account %s already exists", ledger.ErrConcurrencyConflict, account.ID)
		}
	} else {
		if !exists {
			return fmt.Errorf("%w: %s", ledger.ErrAccountNotFound, account.ID)
		}

		if stored.Version != account.Version {
			return fmt.Errorf("%w: stored version %d, snapshot version %d",
				ledger.ErrConcurrencyConflict, stored.Version, account.Version)
		}
	}

	next := cloneAccount(account)
	next.Version = account.Version + 1
	s.accounts[account.ID] = next

	return nil
}

// RecordTransaction implements ledger.TransactionLog. Entries are append-only.
func (s *Store) RecordTransaction(_ context.Context, transaction ledger.Transaction) (ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}

	if transaction.OccurredAt.IsZero() {
		transaction.OccurredAt = ledger.ToOccurredAt(s.clock())
	}

	s.transactions[transaction.Account] = append(s.transactions[transaction.Account], transaction)

	if s.logger != nil {
		s.logger.Debug("transaction recorded",
			"transaction_id", transaction.ID.String(),
			"account", transaction.Account.String(),
			"amount", transaction.Amount)
	}

	return transaction, nil
}

// TransactionsFor implements ledger.TransactionLog, newest first.
func (s *Store) TransactionsFor(_ context.Context, account ledger.AccountID, limit int) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.transactions[account]

	result := make([]ledger.Transaction, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if limit > 0 && len(result) == limit {
			break
		}

		result = append(result, entries[i])
	}

	return result, nil
}

func cloneAccount(account ledger.Account) ledger.Account {
	next := account
	next.Holders = make([]ledger.AccountHolder, len(account.Holders))
	copy(next.Holders, account.Holders)

	return next
}
