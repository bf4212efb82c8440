package ledger_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arelgame/coinhouse/ledger"
)

func Test_NewCoinhouseTag_NormalizesCase(t *testing.T) {
	lower, err := ledger.NewCoinhouseTag("goldleaf")
	require.NoError(t, err)
	mixed, err := ledger.NewCoinhouseTag("  GoldLeaf  ")
	require.NoError(t, err)

	assert.Equal(t, lower, mixed, "Tag equality is case-insensitive")
	assert.Equal(t, "goldleaf", mixed.String())
}

func Test_NewCoinhouseTag_Error_Empty(t *testing.T) {
	_, err := ledger.NewCoinhouseTag("   ")

	assert.ErrorIs(t, err, ledger.ErrEmptyCoinhouseTag)
}

func Test_NewCoinhouseTag_Error_TooLong(t *testing.T) {
	_, err := ledger.NewCoinhouseTag(strings.Repeat("x", 33))

	assert.ErrorIs(t, err, ledger.ErrCoinhouseTagTooLong)
}

func Test_NewGoldAmount_Error_NotPositive(t *testing.T) {
	for _, value := range []int64{0, -1, -1000} {
		_, err := ledger.NewGoldAmount(value)

		assert.ErrorIs(t, err, ledger.ErrAmountMustBePositive, "Amount %d should be rejected", value)
	}
}

func Test_NewTransactionReason_LengthBounds(t *testing.T) {
	// arrange / act / assert per boundary
	_, err := ledger.NewTransactionReason("ab")
	assert.ErrorIs(t, err, ledger.ErrReasonLength)

	reason, err := ledger.NewTransactionReason("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", reason.String())

	_, err = ledger.NewTransactionReason(strings.Repeat("r", 201))
	assert.ErrorIs(t, err, ledger.ErrReasonLength)

	_, err = ledger.NewTransactionReason(strings.Repeat("r", 200))
	assert.NoError(t, err)
}

func Test_NewTransactionReason_TrimsBeforeValidating(t *testing.T) {
	_, err := ledger.NewTransactionReason("  a  ")

	assert.ErrorIs(t, err, ledger.ErrReasonLength, "Whitespace padding must not satisfy the minimum length")
}

func Test_NewCoinhouse_DerivesPersona(t *testing.T) {
	tag, err := ledger.NewCoinhouseTag("goldleaf")
	require.NoError(t, err)

	coinhouse, err := ledger.NewCoinhouse(tag, "Cordor", "ch_goldleaf_001")

	require.NoError(t, err)
	assert.Equal(t, ledger.NewCoinhousePersona(tag), coinhouse.Persona)
}

func Test_NewCoinhouse_Error_EmptySettlement(t *testing.T) {
	tag, err := ledger.NewCoinhouseTag("goldleaf")
	require.NoError(t, err)

	_, err = ledger.NewCoinhouse(tag, "  ", "ch_goldleaf_001")

	assert.ErrorIs(t, err, ledger.ErrEmptySettlement)
}
