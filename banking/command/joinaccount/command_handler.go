package joinaccount

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

// CommandHandler grants a persona a holder role on an existing account.
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

// Handle executes the join. A persona that already holds a grant on the
// account is a conflict, not an idempotent success: the requested role may
// differ from the existing one and silently keeping either would be wrong.
func (h CommandHandler) Handle(ctx context.Context, command Command) (dispatch.CommandResult, error) {
	if command.Account.IsZero() {
		return dispatch.Fail("account id must be set"), nil
	}

	if command.Joiner.IsZero() {
		return dispatch.Fail("joining persona must be set"), nil
	}

	if _, err := ledger.ParseHolderType(string(command.HolderType)); err != nil {
		return dispatch.Fail(err.Error()), nil
	}

	if _, err := ledger.ParseHolderRole(string(command.Role)); err != nil {
		return dispatch.Fail(err.Error()), nil
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

		return dispatch.Fail(shell.FailureMessage("joining the account", retryErr)), nil
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

	holder := ledger.AccountHolder{
		HolderID:   command.Joiner,
		HolderType: command.HolderType,
		Role:       command.Role,
		Name:       command.Name,
	}

	updated, err := account.WithHolder(holder, command.OccurredAt)
	if errors.Is(err, ledger.ErrHolderConflict) {
		return dispatch.Fail("persona is already a holder of this account"), nil
	}

	if err != nil {
		return dispatch.CommandResult{}, err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return dispatch.CommandResult{}, ctxErr
	}

	if saveErr := h.ledger.SaveAccount(ctx, updated); saveErr != nil {
		return dispatch.CommandResult{}, saveErr
	}

	result := dispatch.OkWith("account_id", account.ID.String()).
		WithData("role", string(command.Role)).
		WithEvents(core.BuildHolderJoined(account.ID, holder, command.OccurredAt))

	return result, nil
}
