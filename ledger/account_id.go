package ledger

import (
	"github.com/google/uuid"
)

// accountIDNamespace is the fixed namespace for deriving account identifiers.
// Changing it would re-key every account, so it must never be touched.
var accountIDNamespace = uuid.MustParse("8a2b6c1e-5f0d-4b9a-9c3e-7d41a86f2e90")

// AccountID is the deterministic identifier of a coinhouse account.
type AccountID uuid.UUID

// AccountIDFor derives the AccountID for a (persona, coinhouse) pair as a
// namespaced UUIDv5. The derivation is pure: the same pair always yields the
// same id, so "create account if missing" needs no secondary index and two
// concurrent first deposits compute the same id and race on the upsert only.
func AccountIDFor(persona PersonaID, coinhouse CoinhouseTag) AccountID {
	name := persona.String() + "\n" + coinhouse.String()

	return AccountID(uuid.NewSHA1(accountIDNamespace, []byte(name)))
}

// ParseAccountID parses the string form produced by AccountID.String.
func ParseAccountID(token string) (AccountID, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return AccountID{}, err
	}

	return AccountID(parsed), nil
}

// String returns the canonical UUID string form.
func (id AccountID) String() string {
	return uuid.UUID(id).String()
}

// IsZero reports whether the id is the zero UUID.
func (id AccountID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText serializes the id in canonical UUID form.
func (id AccountID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses a canonical UUID string.
func (id *AccountID) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountID(string(text))
	if err != nil {
		return err
	}

	*id = parsed

	return nil
}
