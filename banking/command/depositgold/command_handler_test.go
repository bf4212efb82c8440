package depositgold_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arelgame/coinhouse/banking/command/depositgold"
	"github.com/arelgame/coinhouse/banking/core"
	"github.com/arelgame/coinhouse/banking/shell"
	"github.com/arelgame/coinhouse/ledger"
	"github.com/arelgame/coinhouse/ledger/memoryengine"
)

func setupTestLedger(t *testing.T) (*memoryengine.Store, ledger.Coinhouse) {
	t.Helper()

	tag, err := ledger.NewCoinhouseTag("goldleaf")
	require.NoError(t, err)
	coinhouse, err := ledger.NewCoinhouse(tag, "Cordor", "ch_goldleaf_001")
	require.NoError(t, err)

	store := memoryengine.NewStore()
	require.NoError(t, store.Seed(coinhouse))

	return store, coinhouse
}

func Test_CommandHandler_Handle_Success_FirstDepositOpensAccount(t *testing.T) {
	// arrange
	store, coinhouse := setupTestLedger(t)
	handler := depositgold.NewCommandHandler(store)

	fakeClock := time.Unix(0, 0).UTC()
	persona := ledger.NewCharacterPersona(uuid.New())
	command := depositgold.BuildCommand(persona, coinhouse.Tag, 1000, "initial", "Arden Vale", fakeClock.Add(time.Hour))

	// act
	result, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	require.True(t, result.Success, "Deposit should succeed: %s", result.ErrorMessage)
	assert.Equal(t, int64(1000), result.Data["balance"])
	assert.NotEmpty(t, result.Data["transaction_id"])

	accountID := ledger.AccountIDFor(persona, coinhouse.Tag)
	account, err := store.GetAccountFor(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), account.Debit)
	require.Len(t, account.Holders, 1, "The depositor becomes the Owner of the implicit account")
	assert.Equal(t, ledger.RoleOwner, account.Holders[0].Role)
	assert.Equal(t, persona, account.Holders[0].HolderID)

	transactions, err := store.TransactionsFor(context.Background(), accountID, 0)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, persona, transactions[0].From)
	assert.Equal(t, coinhouse.Persona, transactions[0].To)
	assert.Equal(t, int64(1000), transactions[0].Amount)
	assert.Equal(t, "Deposit: initial", transactions[0].Memo)

	require.Len(t, result.Events, 1)
	deposited, ok := result.Events[0].(core.GoldDeposited)
	require.True(t, ok)
	assert.Equal(t, int64(1000), deposited.Amount)
	assert.Equal(t, persona, deposited.Persona)
}

func Test_CommandHandler_Handle_Success_SecondDepositAccumulates(t *testing.T) {
	store, coinhouse := setupTestLedger(t)
	handler := depositgold.NewCommandHandler(store)
	now := time.Now()

	persona := ledger.NewCharacterPersona(uuid.New())

	_, err := handler.Handle(context.Background(), depositgold.BuildCommand(persona, coinhouse.Tag, 300, "first stash", "Arden Vale", now))
	require.NoError(t, err)

	result, err := handler.Handle(context.Background(), depositgold.BuildCommand(persona, coinhouse.Tag, 200, "second stash", "Arden Vale", now))

	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, int64(500), result.Data["balance"])
}

func Test_CommandHandler_Handle_Error_UnknownCoinhouse(t *testing.T) {
	store, _ := setupTestLedger(t)
	handler := depositgold.NewCommandHandler(store)

	unknown, err := ledger.NewCoinhouseTag("nonexistent")
	require.NoError(t, err)
	persona := ledger.NewCharacterPersona(uuid.New())

	result, err := handler.Handle(context.Background(),
		depositgold.BuildCommand(persona, unknown, 100, "doomed deposit", "Arden Vale", time.Now()))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "not found")

	_, err = store.GetAccountFor(context.Background(), ledger.AccountIDFor(persona, unknown))
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound, "No account may be created for a failed deposit")
}

func Test_CommandHandler_Handle_Error_Validation(t *testing.T) {
	store, coinhouse := setupTestLedger(t)
	handler := depositgold.NewCommandHandler(store)
	persona := ledger.NewCharacterPersona(uuid.New())

	cases := []struct {
		name    string
		command depositgold.Command
	}{
		{
			name:    "negative amount",
			command: depositgold.BuildCommand(persona, coinhouse.Tag, -5, "a valid reason", "Arden Vale", time.Now()),
		},
		{
			name:    "zero amount",
			command: depositgold.BuildCommand(persona, coinhouse.Tag, 0, "a valid reason", "Arden Vale", time.Now()),
		},
		{
			name:    "reason too short",
			command: depositgold.BuildCommand(persona, coinhouse.Tag, 100, "ab", "Arden Vale", time.Now()),
		},
		{
			name:    "missing persona",
			command: depositgold.BuildCommand(ledger.PersonaID{}, coinhouse.Tag, 100, "a valid reason", "Arden Vale", time.Now()),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := handler.Handle(context.Background(), tc.command)

			require.NoError(t, err, "Validation failures are results, not errors")
			assert.False(t, result.Success)
			assert.NotEmpty(t, result.ErrorMessage)
		})
	}
}

func Test_CommandHandler_Handle_Error_Cancelled(t *testing.T) {
	store, coinhouse := setupTestLedger(t)
	handler := depositgold.NewCommandHandler(store)
	persona := ledger.NewCharacterPersona(uuid.New())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Handle(ctx, depositgold.BuildCommand(persona, coinhouse.Tag, 100, "too late", "Arden Vale", time.Now()))

	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.GetAccountFor(context.Background(), ledger.AccountIDFor(persona, coinhouse.Tag))
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound, "A cancelled deposit must not leave a partial mutation")
}

func Test_CommandHandler_Handle_ConcurrentDeposits_ConserveBalance(t *testing.T) {
	// arrange
	store, coinhouse := setupTestLedger(t)
	handler := depositgold.NewCommandHandler(store,
		depositgold.WithRetryOptions(shell.WithMaxAttempts(12), shell.WithBaseDelay(time.Millisecond)))
	persona := ledger.NewCharacterPersona(uuid.New())

	const workers = 8
	const perDeposit = int64(25)

	// act
	var wg sync.WaitGroup
	errs := make([]error, workers)
	results := make([]bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func(slot int) {
			defer wg.Done()

			result, err := handler.Handle(context.Background(),
				depositgold.BuildCommand(persona, coinhouse.Tag, perDeposit, "caravan pay", "Arden Vale", time.Now()))
			errs[slot] = err
			results[slot] = result.Success
		}(i)
	}

	wg.Wait()

	// assert
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.True(t, results[i], "Every concurrent deposit should eventually succeed via retry")
	}

	account, err := store.GetAccountFor(context.Background(), ledger.AccountIDFor(persona, coinhouse.Tag))
	require.NoError(t, err)
	assert.Equal(t, perDeposit*workers, account.Debit, "Final balance must equal the sum of all deposits")

	transactions, err := store.TransactionsFor(context.Background(), account.ID, 0)
	require.NoError(t, err)
	assert.Len(t, transactions, workers, "Exactly one ledger entry per successful deposit")
}
