package accountstatement

import (
	"context"
	"errors"
	"fmt"

	"github.com/arelgame/coinhouse/banking/access"
	"github.com/arelgame/coinhouse/ledger"
)

// Ledger defines the storage operations needed by the QueryHandler.
type Ledger interface {
	GetCoinhouseByTag(ctx context.Context, tag ledger.CoinhouseTag) (ledger.Coinhouse, error)
	GetAccountFor(ctx context.Context, id ledger.AccountID) (ledger.Account, error)
	TransactionsFor(ctx context.Context, account ledger.AccountID, limit int) ([]ledger.Transaction, error)
}

// QueryHandler reads an account's transaction history on behalf of a viewer.
type QueryHandler struct {
	ledger Ledger
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(storage Ledger) QueryHandler {
	return QueryHandler{ledger: storage}
}

// Handle resolves the account, checks the viewer may see it, and returns
// its transactions newest first. Viewers without the view permission get
// the same not-found error as for a missing account.
func (h QueryHandler) Handle(ctx context.Context, query Query) (AccountStatement, error) {
	if query.Viewer.IsZero() || query.Persona.IsZero() {
		return AccountStatement{}, errors.New("viewer and persona must be set")
	}

	if query.Limit < 0 {
		return AccountStatement{}, errors.New("limit must not be negative")
	}

	coinhouse, err := h.ledger.GetCoinhouseByTag(ctx, query.Coinhouse)
	if err != nil {
		return AccountStatement{}, fmt.Errorf("resolving coinhouse %q: %w", query.Coinhouse, err)
	}

	accountID := ledger.AccountIDFor(query.Persona, coinhouse.Tag)

	account, err := h.ledger.GetAccountFor(ctx, accountID)
	if err != nil {
		return AccountStatement{}, fmt.Errorf("loading account: %w", err)
	}

	profile := access.Evaluate(query.Viewer, account.Holders, query.Membership)
	if !profile.Has(access.View) {
		return AccountStatement{}, fmt.Errorf("loading account: %w", ledger.ErrAccountNotFound)
	}

	transactions, err := h.ledger.TransactionsFor(ctx, accountID, query.Limit)
	if err != nil {
		return AccountStatement{}, fmt.Errorf("loading transactions: %w", err)
	}

	entries := make([]StatementEntry, 0, len(transactions))
	for _, transaction := range transactions {
		entries = append(entries, StatementEntry{
			TransactionID: transaction.ID,
			From:          transaction.From,
			To:            transaction.To,
			Amount:        transaction.Amount,
			Memo:          transaction.Memo,
			OccurredAt:    transaction.OccurredAt,
		})
	}

	return AccountStatement{
		Account:   accountID,
		Coinhouse: coinhouse.Tag,
		Entries:   entries,
		Count:     len(entries),
	}, nil
}
