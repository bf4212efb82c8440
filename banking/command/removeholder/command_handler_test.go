package removeholder_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arelgame/coinhouse/banking/command/removeholder"
	"github.com/arelgame/coinhouse/banking/core"
	"github.com/arelgame/coinhouse/ledger"
	"github.com/arelgame/coinhouse/ledger/memoryengine"
)

func accountWithTwoHolders(t *testing.T) (*memoryengine.Store, ledger.Account, ledger.PersonaID) {
	t.Helper()

	tag, err := ledger.NewCoinhouseTag("goldleaf")
	require.NoError(t, err)
	coinhouse, err := ledger.NewCoinhouse(tag, "Cordor", "ch_goldleaf_001")
	require.NoError(t, err)

	store := memoryengine.NewStore()
	require.NoError(t, store.Seed(coinhouse))

	owner := ledger.NewCharacterPersona(uuid.New())
	account := ledger.OpenAccount(owner, tag, ledger.HolderIndividual, "Arden Vale", time.Now())

	viewer := ledger.NewCharacterPersona(uuid.New())
	account, err = account.WithHolder(ledger.AccountHolder{
		HolderID:   viewer,
		HolderType: ledger.HolderIndividual,
		Role:       ledger.RoleViewer,
		Name:       "Mira Thorn",
	}, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.SaveAccount(context.Background(), account))

	persisted, err := store.GetAccountFor(context.Background(), account.ID)
	require.NoError(t, err)

	return store, persisted, viewer
}

func Test_CommandHandler_Handle_RemovesHolder(t *testing.T) {
	// arrange
	store, account, viewer := accountWithTwoHolders(t)
	handler := removeholder.NewCommandHandler(store)

	// act
	result, err := handler.Handle(context.Background(),
		removeholder.BuildCommand(account.ID, viewer, time.Now()))

	// assert
	require.NoError(t, err)
	require.True(t, result.Success, "Removal should succeed: %s", result.ErrorMessage)

	updated, err := store.GetAccountFor(context.Background(), account.ID)
	require.NoError(t, err)
	require.Len(t, updated.Holders, 1)
	assert.Equal(t, ledger.RoleOwner, updated.Holders[0].Role)

	require.Len(t, result.Events, 1)
	removed, ok := result.Events[0].(core.HolderRemoved)
	require.True(t, ok)
	assert.Equal(t, viewer, removed.Holder)
}

func Test_CommandHandler_Handle_Error_LastOwnerProtected(t *testing.T) {
	// arrange
	store, account, _ := accountWithTwoHolders(t)
	handler := removeholder.NewCommandHandler(store)
	owner := account.Holders[0].HolderID

	// act
	result, err := handler.Handle(context.Background(),
		removeholder.BuildCommand(account.ID, owner, time.Now()))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "at least one owner")

	unchanged, err := store.GetAccountFor(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Len(t, unchanged.Holders, 2)
}

func Test_CommandHandler_Handle_Error_NotAHolder(t *testing.T) {
	store, account, _ := accountWithTwoHolders(t)
	handler := removeholder.NewCommandHandler(store)

	result, err := handler.Handle(context.Background(),
		removeholder.BuildCommand(account.ID, ledger.NewCharacterPersona(uuid.New()), time.Now()))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "not a holder")
}

func Test_CommandHandler_Handle_Error_AccountNotFound(t *testing.T) {
	store, _, viewer := accountWithTwoHolders(t)
	handler := removeholder.NewCommandHandler(store)

	missingTag, err := ledger.NewCoinhouseTag("elsewhere")
	require.NoError(t, err)
	missing := ledger.AccountIDFor(viewer, missingTag)

	result, err := handler.Handle(context.Background(),
		removeholder.BuildCommand(missing, viewer, time.Now()))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "not found")
}
