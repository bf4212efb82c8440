package depositgold

import (
	"context"
	"errors"
	"fmt"

	"github.com/arelgame/coinhouse/banking/core"
	"github.com/arelgame/coinhouse/banking/shell"
	"github.com/arelgame/coinhouse/dispatch"
	"github.com/arelgame/coinhouse/ledger"
)

// Ledger defines the storage operations needed by the CommandHandler.
type Ledger interface {
	GetCoinhouseByTag(ctx context.Context, tag ledger.CoinhouseTag) (ledger.Coinhouse, error)
	GetAccountFor(ctx context.Context, id ledger.AccountID) (ledger.Account, error)
	SaveAccount(ctx context.Context, account ledger.Account) error
	RecordTransaction(ctx context.Context, transaction ledger.Transaction) (ledger.Transaction, error)
}

// CommandHandler orchestrates the deposit workflow:
// validate -> resolve coinhouse -> load-or-open account -> save -> append transaction.
// The read-modify-write runs under optimistic-concurrency retry; the account
// save is the commit point, everything after it runs to completion even when
// the caller's context is cancelled in between.
type CommandHandler struct {
	ledger       Ledger
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(storage Ledger, opts ...Option) CommandHandler {
	handler := CommandHandler{ledger: storage}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the deposit. Business failures come back as a failed
// CommandResult; only cancellation propagates as an error.
func (h CommandHandler) Handle(ctx context.Context, command Command) (dispatch.CommandResult, error) {
	amount, err := ledger.NewGoldAmount(command.Amount)
	if err != nil {
		return dispatch.Fail(err.Error()), nil
	}

	reason, err := ledger.NewTransactionReason(command.Reason)
	if err != nil {
		return dispatch.Fail(err.Error()), nil
	}

	if command.Persona.IsZero() {
		return dispatch.Fail("depositing persona must be set"), nil
	}

	if command.Coinhouse.IsZero() {
		return dispatch.Fail("coinhouse tag must be set"), nil
	}

	var result dispatch.CommandResult

	_, retryErr := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, execErr = h.execute(retryCtx, command, amount, reason)

		return execErr
	}, h.retryOptions...)

	if retryErr != nil {
		if errors.Is(retryErr, context.Canceled) || errors.Is(retryErr, context.DeadlineExceeded) {
			return dispatch.CommandResult{}, retryErr
		}

		return dispatch.Fail(shell.FailureMessage("deposit", retryErr)), nil
	}

	return result, nil
}

func (h CommandHandler) execute(
	ctx context.Context,
	command Command,
	amount ledger.GoldAmount,
	reason ledger.TransactionReason,
) (dispatch.CommandResult, error) {
	coinhouse, err := h.ledger.GetCoinhouseByTag(ctx, command.Coinhouse)
	if errors.Is(err, ledger.ErrCoinhouseNotFound) {
		return dispatch.Fail(fmt.Sprintf("coinhouse %q not found", command.Coinhouse)), nil
	}

	if err != nil {
		return dispatch.CommandResult{}, err
	}

	accountID := ledger.AccountIDFor(command.Persona, command.Coinhouse)

	account, err := h.ledger.GetAccountFor(ctx, accountID)

	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		account = ledger.OpenAccount(
			command.Persona,
			command.Coinhouse,
			ledger.HolderTypeFor(command.Persona),
			command.DepositorName,
			command.OccurredAt,
		)
	case err != nil:
		return dispatch.CommandResult{}, err
	}

	updated := account.Deposit(amount, command.OccurredAt)

	// cancellation is honored up to here; after the save the operation runs to completion
	if ctxErr := ctx.Err(); ctxErr != nil {
		return dispatch.CommandResult{}, ctxErr
	}

	if saveErr := h.ledger.SaveAccount(ctx, updated); saveErr != nil {
		return dispatch.CommandResult{}, saveErr
	}

	transaction := ledger.NewTransaction(
		accountID,
		command.Persona,
		coinhouse.Persona,
		amount,
		"Deposit: "+reason.String(),
		command.OccurredAt,
	)

	stored, recordErr := h.ledger.RecordTransaction(context.WithoutCancel(ctx), transaction)
	if recordErr != nil {
		return dispatch.CommandResult{}, recordErr
	}

	result := dispatch.OkWith("transaction_id", stored.ID.String()).
		WithData("balance", updated.Debit).
		WithEvents(core.BuildGoldDeposited(stored, coinhouse.Tag))

	return result, nil
}
