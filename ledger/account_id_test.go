package ledger_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arelgame/coinhouse/ledger"
)

func Test_AccountIDFor_IsDeterministic(t *testing.T) {
	// arrange
	persona := ledger.NewCharacterPersona(uuid.New())
	tag, err := ledger.NewCoinhouseTag("goldleaf")
	require.NoError(t, err)

	// act
	first := ledger.AccountIDFor(persona, tag)
	second := ledger.AccountIDFor(persona, tag)

	// assert
	assert.Equal(t, first, second, "The same pair must always yield the same id")
}

func Test_AccountIDFor_TagCaseDoesNotMatter(t *testing.T) {
	persona := ledger.NewCharacterPersona(uuid.New())

	lower, err := ledger.NewCoinhouseTag("goldleaf")
	require.NoError(t, err)
	upper, err := ledger.NewCoinhouseTag("GoldLeaf")
	require.NoError(t, err)

	assert.Equal(t, ledger.AccountIDFor(persona, lower), ledger.AccountIDFor(persona, upper))
}

func Test_AccountIDFor_DifferentPairsDiffer(t *testing.T) {
	personaOne := ledger.NewCharacterPersona(uuid.New())
	personaTwo := ledger.NewCharacterPersona(uuid.New())

	goldleaf, err := ledger.NewCoinhouseTag("goldleaf")
	require.NoError(t, err)
	silvervault, err := ledger.NewCoinhouseTag("silvervault")
	require.NoError(t, err)

	assert.NotEqual(t, ledger.AccountIDFor(personaOne, goldleaf), ledger.AccountIDFor(personaTwo, goldleaf))
	assert.NotEqual(t, ledger.AccountIDFor(personaOne, goldleaf), ledger.AccountIDFor(personaOne, silvervault))
}

func Test_AccountID_RoundTrip(t *testing.T) {
	persona := ledger.NewCharacterPersona(uuid.New())
	tag, err := ledger.NewCoinhouseTag("goldleaf")
	require.NoError(t, err)

	id := ledger.AccountIDFor(persona, tag)

	parsed, err := ledger.ParseAccountID(id.String())

	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}
