package ledger_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arelgame/coinhouse/ledger"
)

func Test_PersonaID_RoundTrip(t *testing.T) {
	// arrange
	tag, err := ledger.NewCoinhouseTag("Goldleaf")
	require.NoError(t, err)

	personas := []ledger.PersonaID{
		ledger.NewCharacterPersona(uuid.New()),
		ledger.NewOrganizationPersona(uuid.New()),
		ledger.NewGovernmentPersona(uuid.New()),
		ledger.NewCoinhousePersona(tag),
	}

	for _, persona := range personas {
		// act
		parsed, parseErr := ledger.ParsePersonaID(persona.String())

		// assert
		assert.NoError(t, parseErr, "Should parse token %q", persona.String())
		assert.Equal(t, persona, parsed, "Round-trip should be lossless for %q", persona.String())
	}
}

func Test_ParsePersonaID_Error_EmptyToken(t *testing.T) {
	_, err := ledger.ParsePersonaID("")

	assert.ErrorIs(t, err, ledger.ErrEmptyPersonaToken)
}

func Test_ParsePersonaID_Error_MissingSeparator(t *testing.T) {
	_, err := ledger.ParsePersonaID("character")

	assert.ErrorIs(t, err, ledger.ErrMalformedPersonaToken)
}

func Test_ParsePersonaID_Error_UnknownType(t *testing.T) {
	_, err := ledger.ParsePersonaID("dragon:" + uuid.NewString())

	assert.Error(t, err, "Unknown persona types should be rejected")
}

func Test_ParsePersonaID_Error_MalformedGUID(t *testing.T) {
	_, err := ledger.ParsePersonaID("character:not-a-guid")

	assert.Error(t, err, "Character keys must be valid GUIDs")
}

func Test_ParsePersonaID_NormalizesCoinhouseKey(t *testing.T) {
	// act
	parsed, err := ledger.ParsePersonaID("coinhouse:GOLDLEAF")

	// assert
	require.NoError(t, err)
	assert.Equal(t, "coinhouse:goldleaf", parsed.String(), "Coinhouse keys should be canonicalized to lower case")
}

func Test_PersonaID_Equality(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, ledger.NewCharacterPersona(id), ledger.NewCharacterPersona(id))
	assert.NotEqual(t, ledger.NewCharacterPersona(id), ledger.NewOrganizationPersona(id),
		"Same key under a different type must not be equal")
}
