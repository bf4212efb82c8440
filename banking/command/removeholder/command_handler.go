package removeholder

import (
	"context"
	"errors"

	"github.com/arelgame/coinhouse/banking/core"
	"github.com/arelgame/coinhouse/banking/shell"
	"github.com/arelgame/coinhouse/dispatch"
	"github.com/arelgame/coinhouse/ledger"
)

// Ledger defines the storage operations needed by the CommandHandler.
type Ledger interface {
	GetAccountFor(ctx context.Context, id ledger.AccountID) (ledger.Account, error)
	SaveAccount(ctx context.Context, account ledger.Account) error
}

// CommandHandler revokes a persona's grant on an account. The last owner can
// never be removed, so an account never ends up ownerless.
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

// Handle executes the removal.
func (h CommandHandler) Handle(ctx context.Context, command Command) (dispatch.CommandResult, error) {
	if command.Account.IsZero() {
		return dispatch.Fail("account id must be set"), nil
	}

	if command.Holder.IsZero() {
		return dispatch.Fail("holder persona must be set"), nil
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

		return dispatch.Fail(shell.FailureMessage("removing the holder", retryErr)), nil
	}

	return result, nil
}

func (h CommandHandler) execute(ctx context.Context, command Command) (dispatch.CommandResult, error) {
	account, err := h.ledger.GetAccountFor(ctx, command.Account)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return dispatch.Fail("account not found"), nil
	}

	if err != nil {
		return dispatch.CommandResult{}, err
	}

	updated, err := account.WithoutHolder(command.Holder, command.OccurredAt)

	switch {
	case errors.Is(err, ledger.ErrHolderNotFound):
		return dispatch.Fail("persona is not a holder of this account"), nil
	case errors.Is(err, ledger.ErrLastOwnerProtected):
		return dispatch.Fail("account must keep at least one owner"), nil
	case err != nil:
		return dispatch.CommandResult{}, err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return dispatch.CommandResult{}, ctxErr
	}

	if saveErr := h.ledger.SaveAccount(ctx, updated); saveErr != nil {
		return dispatch.CommandResult{}, saveErr
	}

	result := dispatch.OkWith("account_id", account.ID.String()).
		WithEvents(core.BuildHolderRemoved(account.ID, command.Holder, command.OccurredAt))

	return result, nil
}
