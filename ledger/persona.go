package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PersonaType discriminates the kinds of actors that can own ledger accounts.
type PersonaType string

const (
	// PersonaCharacter identifies a player or non-player character.
	PersonaCharacter PersonaType = "character"

	// PersonaOrganization identifies a player-run organization.
	PersonaOrganization PersonaType = "organization"

	// PersonaGovernment identifies a settlement government.
	PersonaGovernment PersonaType = "government"

	// PersonaCoinhouse identifies a coinhouse acting as a counterparty
	// for inter-account transfers.
	PersonaCoinhouse PersonaType = "coinhouse"
)

var (
	// ErrEmptyPersonaToken is returned when parsing an empty persona token.
	ErrEmptyPersonaToken = errors.New("persona token must not be empty")

	// ErrMalformedPersonaToken is returned when a persona token is not of the form "type:key".
	ErrMalformedPersonaToken = errors.New("persona token must be of the form \"type:key\"")
)

// PersonaID is the canonical identity of an account-owning actor.
// It serializes to a single "type:key" token and parses back losslessly.
// Two PersonaIDs are equal iff their type and key match, so the zero-safe
// comparison with == is the intended equality check.
type PersonaID struct {
	kind PersonaType
	key  string
}

// NewCharacterPersona creates the PersonaID for a character keyed by its stable GUID.
func NewCharacterPersona(id uuid.UUID) PersonaID {
	return PersonaID{kind: PersonaCharacter, key: id.String()}
}

// NewOrganizationPersona creates the PersonaID for an organization keyed by its stable GUID.
func NewOrganizationPersona(id uuid.UUID) PersonaID {
	return PersonaID{kind: PersonaOrganization, key: id.String()}
}

// NewGovernmentPersona creates the PersonaID for a government keyed by its stable GUID.
func NewGovernmentPersona(id uuid.UUID) PersonaID {
	return PersonaID{kind: PersonaGovernment, key: id.String()}
}

// NewCoinhousePersona creates the PersonaID a coinhouse acts under in the ledger.
func NewCoinhousePersona(tag CoinhouseTag) PersonaID {
	return PersonaID{kind: PersonaCoinhouse, key: tag.String()}
}

// ParsePersonaID parses a "type:key" token produced by PersonaID.String.
func ParsePersonaID(token string) (PersonaID, error) {
	if token == "" {
		return PersonaID{}, ErrEmptyPersonaToken
	}

	kindPart, keyPart, found := strings.Cut(token, ":")
	if !found || kindPart == "" || keyPart == "" {
		return PersonaID{}, fmt.Errorf("%w: %q", ErrMalformedPersonaToken, token)
	}

	switch PersonaType(kindPart) {
	case PersonaCharacter, PersonaOrganization, PersonaGovernment:
		parsed, err := uuid.Parse(keyPart)
		if err != nil {
			return PersonaID{}, fmt.Errorf("persona key of %q is not a valid GUID: %w", kindPart, err)
		}

		return PersonaID{kind: PersonaType(kindPart), key: parsed.String()}, nil

	case PersonaCoinhouse:
		tag, err := NewCoinhouseTag(keyPart)
		if err != nil {
			return PersonaID{}, fmt.Errorf("persona key is not a valid coinhouse tag: %w", err)
		}

		return NewCoinhousePersona(tag), nil

	default:
		return PersonaID{}, fmt.Errorf("unknown persona type %q", kindPart)
	}
}

// Type returns the persona's discriminator.
func (p PersonaID) Type() PersonaType {
	return p.kind
}

// Key returns the persona's stable key (a GUID, or a coinhouse tag).
func (p PersonaID) Key() string {
	return p.key
}

// String returns the canonical "type:key" token.
func (p PersonaID) String() string {
	return string(p.kind) + ":" + p.key
}

// IsZero reports whether the PersonaID is the invalid zero value.
func (p PersonaID) IsZero() bool {
	return p.kind == "" && p.key == ""
}

// MarshalText serializes the PersonaID as its canonical token.
func (p PersonaID) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses the canonical token back into a PersonaID.
func (p *PersonaID) UnmarshalText(text []byte) error {
	parsed, err := ParsePersonaID(string(text))
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}
