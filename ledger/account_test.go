package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arelgame/coinhouse/ledger"
)

func openTestAccount(t *testing.T, at time.Time) ledger.Account {
	t.Helper()

	persona := ledger.NewCharacterPersona(uuid.New())
	tag, err := ledger.NewCoinhouseTag("goldleaf")
	require.NoError(t, err)

	return ledger.OpenAccount(persona, tag, ledger.HolderIndividual, "Arden Vale", at)
}

func mustAmount(t *testing.T, value int64) ledger.GoldAmount {
	t.Helper()

	amount, err := ledger.NewGoldAmount(value)
	require.NoError(t, err)

	return amount
}

func Test_OpenAccount_CreatesOwnerHolder(t *testing.T) {
	now := time.Unix(1000, 0).UTC()

	account := openTestAccount(t, now)

	assert.Equal(t, ledger.AccountIDFor(account.Persona, account.Coinhouse), account.ID)
	assert.Zero(t, account.Debit)
	assert.Zero(t, account.Credit)
	assert.Zero(t, account.Version, "A fresh snapshot must carry version zero")
	require.Len(t, account.Holders, 1)
	assert.Equal(t, ledger.RoleOwner, account.Holders[0].Role)
	assert.Equal(t, account.Persona, account.Holders[0].HolderID)
}

func Test_Account_Deposit_DoesNotMutateOriginal(t *testing.T) {
	now := time.Now()
	account := openTestAccount(t, now)

	next := account.Deposit(mustAmount(t, 1000), now.Add(time.Hour))

	assert.Equal(t, int64(1000), next.Debit)
	assert.Zero(t, account.Debit, "The original snapshot must be untouched")
	assert.True(t, next.LastAccessedAt.After(account.LastAccessedAt))
}

func Test_Account_Withdraw_Success(t *testing.T) {
	now := time.Now()
	account := openTestAccount(t, now).Deposit(mustAmount(t, 500), now)

	next, err := account.Withdraw(mustAmount(t, 200), now)

	require.NoError(t, err)
	assert.Equal(t, int64(300), next.Debit)
	assert.Equal(t, int64(500), account.Debit)
}

func Test_Account_Withdraw_Error_InsufficientBalance(t *testing.T) {
	now := time.Now()
	account := openTestAccount(t, now).Deposit(mustAmount(t, 500), now)

	_, err := account.Withdraw(mustAmount(t, 600), now)

	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)
	assert.Equal(t, int64(500), account.Debit, "Balance must be unchanged after a rejected withdrawal")
}

func Test_Account_WithHolder_AppendsInOrder(t *testing.T) {
	now := time.Now()
	account := openTestAccount(t, now)
	joiner := ledger.NewCharacterPersona(uuid.New())

	next, err := account.WithHolder(ledger.AccountHolder{
		HolderID:   joiner,
		HolderType: ledger.HolderIndividual,
		Role:       ledger.RoleAuthorizedUser,
		Name:       "Mira Thorn",
	}, now)

	require.NoError(t, err)
	require.Len(t, next.Holders, 2)
	assert.Equal(t, joiner, next.Holders[1].HolderID, "Holders keep insertion order")
	assert.Len(t, account.Holders, 1)
}

func Test_Account_WithHolder_Error_AlreadyHolder(t *testing.T) {
	now := time.Now()
	account := openTestAccount(t, now)

	_, err := account.WithHolder(ledger.AccountHolder{
		HolderID:   account.Persona,
		HolderType: ledger.HolderIndividual,
		Role:       ledger.RoleViewer,
		Name:       "Arden Vale",
	}, now)

	assert.ErrorIs(t, err, ledger.ErrHolderConflict)
}

func Test_Account_WithoutHolder_Success(t *testing.T) {
	now := time.Now()
	account := openTestAccount(t, now)
	joiner := ledger.NewCharacterPersona(uuid.New())

	withJoiner, err := account.WithHolder(ledger.AccountHolder{
		HolderID:   joiner,
		HolderType: ledger.HolderIndividual,
		Role:       ledger.RoleTrustee,
		Name:       "Mira Thorn",
	}, now)
	require.NoError(t, err)

	next, err := withJoiner.WithoutHolder(joiner, now)

	require.NoError(t, err)
	assert.Len(t, next.Holders, 1)
	assert.Len(t, withJoiner.Holders, 2)
}

func Test_Account_WithoutHolder_Error_NotAHolder(t *testing.T) {
	now := time.Now()
	account := openTestAccount(t, now)

	_, err := account.WithoutHolder(ledger.NewCharacterPersona(uuid.New()), now)

	assert.ErrorIs(t, err, ledger.ErrHolderNotFound)
}

func Test_Account_WithoutHolder_Error_LastOwnerProtected(t *testing.T) {
	now := time.Now()
	account := openTestAccount(t, now)

	_, err := account.WithoutHolder(account.Persona, now)

	assert.ErrorIs(t, err, ledger.ErrLastOwnerProtected)
}
