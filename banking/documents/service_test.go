package documents_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arelgame/coinhouse/banking/command/joinaccount"
	"github.com/arelgame/coinhouse/banking/documents"
	"github.com/arelgame/coinhouse/dispatch"
	"github.com/arelgame/coinhouse/ledger"
	"github.com/arelgame/coinhouse/ledger/memoryengine"
)

type fakeDirectory struct {
	names map[ledger.PersonaID]string
}

func (d fakeDirectory) Resolve(_ context.Context, persona ledger.PersonaID) (documents.Identity, error) {
	name, ok := d.names[persona]
	if !ok {
		name = "Unknown"
	}

	return documents.Identity{Key: persona.Key(), DisplayName: name}, nil
}

type activationFixture struct {
	store    *memoryengine.Store
	service  *documents.Service
	account  ledger.Account
	issuer   ledger.PersonaID
	document documents.CapabilityDocument
}

func setupActivation(t *testing.T) activationFixture {
	t.Helper()

	tag, err := ledger.NewCoinhouseTag("goldleaf")
	require.NoError(t, err)
	coinhouse, err := ledger.NewCoinhouse(tag, "Cordor", "ch_goldleaf_001")
	require.NoError(t, err)

	store := memoryengine.NewStore()
	require.NoError(t, store.Seed(coinhouse))

	issuer := ledger.NewCharacterPersona(uuid.New())
	account := ledger.OpenAccount(issuer, tag, ledger.HolderIndividual, "Arden Vale", time.Now())
	require.NoError(t, store.SaveAccount(context.Background(), account))

	dispatcher, err := dispatch.NewCommandDispatcher(dispatch.NewEventBus())
	require.NoError(t, err)
	require.NoError(t, dispatch.RegisterCommandHandler[joinaccount.Command](
		dispatcher, joinaccount.NewCommandHandler(store)))

	directory := fakeDirectory{names: map[ledger.PersonaID]string{issuer: "Arden Vale"}}
	service := documents.NewService(dispatcher, directory)

	document := documents.BuildDocument(
		tag, account.ID, ledger.HolderIndividual, ledger.RoleAuthorizedUser, "personal", issuer)

	return activationFixture{
		store:    store,
		service:  service,
		account:  account,
		issuer:   issuer,
		document: document,
	}
}

func Test_Service_Activate_JoinsActivatorAndConsumes(t *testing.T) {
	// arrange
	fixture := setupActivation(t)
	activator := ledger.NewCharacterPersona(uuid.New())

	// act
	activation, err := fixture.service.Activate(context.Background(), fixture.document, activator, time.Now())

	// assert
	require.NoError(t, err)
	assert.True(t, activation.Consumed, "A successful activation consumes the document")
	assert.Contains(t, activation.Message, "authorized-user")

	account, err := fixture.store.GetAccountFor(context.Background(), fixture.account.ID)
	require.NoError(t, err)
	require.Len(t, account.Holders, 2)
	assert.Equal(t, activator, account.Holders[1].HolderID)
	assert.Equal(t, ledger.RoleAuthorizedUser, account.Holders[1].Role)
}

func Test_Service_Activate_RejectsSelfActivation(t *testing.T) {
	// arrange
	fixture := setupActivation(t)

	// act
	activation, err := fixture.service.Activate(context.Background(), fixture.document, fixture.issuer, time.Now())

	// assert
	require.NoError(t, err)
	assert.False(t, activation.Consumed, "Self-activation must keep the document intact")
	assert.Contains(t, activation.Message, "issued yourself")

	account, err := fixture.store.GetAccountFor(context.Background(), fixture.account.ID)
	require.NoError(t, err)
	assert.Len(t, account.Holders, 1)
}

func Test_Service_Activate_RejectedJoinKeepsDocument(t *testing.T) {
	// arrange
	fixture := setupActivation(t)
	activator := ledger.NewCharacterPersona(uuid.New())

	first, err := fixture.service.Activate(context.Background(), fixture.document, activator, time.Now())
	require.NoError(t, err)
	require.True(t, first.Consumed)

	// act: the same persona activates a second copy of the share
	second, err := fixture.service.Activate(context.Background(), fixture.document, activator, time.Now())

	// assert
	require.NoError(t, err)
	assert.False(t, second.Consumed)
	assert.Contains(t, second.Message, "already a holder")
}

func Test_Service_Activate_RejectsIncompleteDocument(t *testing.T) {
	fixture := setupActivation(t)

	incomplete := fixture.document
	incomplete.Account = ledger.AccountID{}

	activation, err := fixture.service.Activate(
		context.Background(), incomplete, ledger.NewCharacterPersona(uuid.New()), time.Now())

	require.NoError(t, err)
	assert.False(t, activation.Consumed)
	assert.NotEmpty(t, activation.Message)
}

func Test_Document_EncodeDecode_RoundTrip(t *testing.T) {
	fixture := setupActivation(t)

	payload, err := fixture.document.Encode()
	require.NoError(t, err)

	decoded, err := documents.DecodeDocument(payload)
	require.NoError(t, err)
	assert.Equal(t, fixture.document, decoded)
}

func Test_DecodeDocument_RejectsGarbage(t *testing.T) {
	_, err := documents.DecodeDocument([]byte("not even json"))

	assert.ErrorIs(t, err, documents.ErrMalformedDocument)
}
