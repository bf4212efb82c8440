package openaccount

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
}

// CommandHandler opens an account if it does not exist yet. A concurrent
// create loses the versioned upsert, retries, finds the account and reports
// the idempotent outcome instead of an error.
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

// Handle executes the open-account command.
func (h CommandHandler) Handle(ctx context.Context, command Command) (dispatch.CommandResult, error) {
	if command.Persona.IsZero() {
		return dispatch.Fail("opening persona must be set"), nil
	}

	if command.Coinhouse.IsZero() {
		return dispatch.Fail("coinhouse tag must be set"), nil
	}

	var result dispatch.CommandResult

	_, retryErr := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, execErr = h.execute(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if retryErr != nil {
		if errors.Is(retryErr, context.Canceled) || errors.Is(retryErr, context.DeadlineExceeded) {
			return dispatch.CommandResult{}, retryErr
		}

		return dispatch.Fail(shell.FailureMessage("account opening", retryErr)), nil
	}

	return result, nil
}

func (h CommandHandler) execute(ctx context.Context, command Command) (dispatch.CommandResult, error) {
	_, err := h.ledger.GetCoinhouseByTag(ctx, command.Coinhouse)
	if errors.Is(err, ledger.ErrCoinhouseNotFound) {
		return dispatch.Fail(fmt.Sprintf("coinhouse %q not found", command.Coinhouse)), nil
	}

	if err != nil {
		return dispatch.CommandResult{}, err
	}

	accountID := ledger.AccountIDFor(command.Persona, command.Coinhouse)

	existing, err := h.ledger.GetAccountFor(ctx, accountID)
	if err == nil {
		// idempotent: the account is already open, nothing to do and nothing to publish
		return dispatch.OkWith("account_id", existing.ID.String()).
			WithData("already_existed", true), nil
	}

	if !errors.Is(err, ledger.ErrAccountNotFound) {
		return dispatch.CommandResult{}, err
	}

	account := ledger.OpenAccount(
		command.Persona,
		command.Coinhouse,
		ledger.HolderTypeFor(command.Persona),
		command.OwnerName,
		command.OccurredAt,
	)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return dispatch.CommandResult{}, ctxErr
	}

	if saveErr := h.ledger.SaveAccount(ctx, account); saveErr != nil {
		return dispatch.CommandResult{}, saveErr
	}

	result := dispatch.OkWith("account_id", account.ID.String()).
		WithData("already_existed", false).
		WithEvents(core.BuildAccountOpened(account))

	return result, nil
}
