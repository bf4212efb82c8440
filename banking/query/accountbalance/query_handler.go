package accountbalance

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
}

// QueryHandler reads an account balance on behalf of a viewer.
type QueryHandler struct {
	ledger Ledger
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(storage Ledger) QueryHandler {
	return QueryHandler{ledger: storage}
}

// Handle resolves the account and evaluates the viewer's permissions.
// A viewer without the view permission gets the same not-found error as a
// viewer of a missing account, so probing cannot reveal which accounts exist.
func (h QueryHandler) Handle(ctx context.Context, query Query) (AccountBalance, error) {
	if query.Viewer.IsZero() || query.Persona.IsZero() {
		return AccountBalance{}, errors.New("viewer and persona must be set")
	}

	coinhouse, err := h.ledger.GetCoinhouseByTag(ctx, query.Coinhouse)
	if err != nil {
		return AccountBalance{}, fmt.Errorf("resolving coinhouse %q: %w", query.Coinhouse, err)
	}

	accountID := ledger.AccountIDFor(query.Persona, coinhouse.Tag)

	account, err := h.ledger.GetAccountFor(ctx, accountID)
	if err != nil {
		return AccountBalance{}, fmt.Errorf("loading account: %w", err)
	}

	profile := access.Evaluate(query.Viewer, account.Holders, query.Membership)
	if !profile.Has(access.View) {
		return AccountBalance{}, fmt.Errorf("loading account: %w", ledger.ErrAccountNotFound)
	}

	holders := make([]HolderInfo, 0, len(account.Holders))
	for _, holder := range account.Holders {
		holders = append(holders, HolderInfo{
			Persona: holder.HolderID,
			Type:    holder.HolderType,
			Role:    holder.Role,
			Name:    holder.Name,
		})
	}

	return AccountBalance{
		Account:        account.ID,
		Coinhouse:      coinhouse.Tag,
		Debit:          account.Debit,
		Credit:         account.Credit,
		Holders:        holders,
		Access:         profile,
		LastAccessedAt: account.LastAccessedAt,
	}, nil
}
