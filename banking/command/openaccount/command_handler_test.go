package openaccount_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arelgame/coinhouse/banking/command/openaccount"
	"github.com/arelgame/coinhouse/banking/core"
	"github.com/arelgame/coinhouse/ledger"
	"github.com/arelgame/coinhouse/ledger/memoryengine"
)

func seededStore(t *testing.T) (*memoryengine.Store, ledger.Coinhouse) {
	t.Helper()

	tag, err := ledger.NewCoinhouseTag("goldleaf")
	require.NoError(t, err)
	coinhouse, err := ledger.NewCoinhouse(tag, "Cordor", "ch_goldleaf_001")
	require.NoError(t, err)

	store := memoryengine.NewStore()
	require.NoError(t, store.Seed(coinhouse))

	return store, coinhouse
}

func Test_CommandHandler_Handle_CreatesEmptyAccount(t *testing.T) {
	// arrange
	store, coinhouse := seededStore(t)
	handler := openaccount.NewCommandHandler(store)
	persona := ledger.NewCharacterPersona(uuid.New())

	// act
	result, err := handler.Handle(context.Background(),
		openaccount.BuildCommand(persona, coinhouse.Tag, "Arden Vale", time.Now()))

	// assert
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, false, result.Data["already_existed"])

	account, err := store.GetAccountFor(context.Background(), ledger.AccountIDFor(persona, coinhouse.Tag))
	require.NoError(t, err)
	assert.Zero(t, account.Debit)
	require.Len(t, account.Holders, 1)
	assert.Equal(t, ledger.RoleOwner, account.Holders[0].Role)
	assert.Equal(t, "Arden Vale", account.Holders[0].Name)

	require.Len(t, result.Events, 1)
	opened, ok := result.Events[0].(core.AccountOpened)
	require.True(t, ok)
	assert.Equal(t, account.ID, opened.Account)
}

func Test_CommandHandler_Handle_IsIdempotent(t *testing.T) {
	// arrange
	store, coinhouse := seededStore(t)
	handler := openaccount.NewCommandHandler(store)
	persona := ledger.NewCharacterPersona(uuid.New())
	command := openaccount.BuildCommand(persona, coinhouse.Tag, "Arden Vale", time.Now())

	first, err := handler.Handle(context.Background(), command)
	require.NoError(t, err)
	require.True(t, first.Success)

	// act
	second, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	require.True(t, second.Success, "Re-opening an existing account is not an error")
	assert.Equal(t, true, second.Data["already_existed"])
	assert.Equal(t, first.Data["account_id"], second.Data["account_id"])
	assert.Empty(t, second.Events, "No event for an account that already existed")
}

func Test_CommandHandler_Handle_Error_UnknownCoinhouse(t *testing.T) {
	store, _ := seededStore(t)
	handler := openaccount.NewCommandHandler(store)

	unknown, err := ledger.NewCoinhouseTag("nonexistent")
	require.NoError(t, err)

	result, err := handler.Handle(context.Background(),
		openaccount.BuildCommand(ledger.NewCharacterPersona(uuid.New()), unknown, "Arden Vale", time.Now()))

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "not found")
}

func Test_CommandHandler_Handle_OrganizationPersonaGetsOrganizationHolder(t *testing.T) {
	store, coinhouse := seededStore(t)
	handler := openaccount.NewCommandHandler(store)
	org := ledger.NewOrganizationPersona(uuid.New())

	result, err := handler.Handle(context.Background(),
		openaccount.BuildCommand(org, coinhouse.Tag, "Order of the Radiant Heart", time.Now()))

	require.NoError(t, err)
	require.True(t, result.Success)

	account, err := store.GetAccountFor(context.Background(), ledger.AccountIDFor(org, coinhouse.Tag))
	require.NoError(t, err)
	require.Len(t, account.Holders, 1)
	assert.Equal(t, ledger.HolderOrganization, account.Holders[0].HolderType)
}
