package ledger

import (
	"errors"
	"strings"
)

// ErrEmptySettlement is returned when a coinhouse definition names no settlement.
var ErrEmptySettlement = errors.New("coinhouse settlement must not be empty")

// Coinhouse is one bank tied to exactly one settlement. Coinhouses are
// created once at world load from definition data and never recreated at
// runtime; the value is immutable thereafter.
type Coinhouse struct {
	Tag        CoinhouseTag
	Settlement string
	EngineID   string // opaque correlation id of the in-game placeable
	Persona    PersonaID
}

// NewCoinhouse builds a coinhouse and derives the persona it acts under
// for inter-account transfers.
func NewCoinhouse(tag CoinhouseTag, settlement string, engineID string) (Coinhouse, error) {
	if tag.IsZero() {
		return Coinhouse{}, ErrEmptyCoinhouseTag
	}

	settlement = strings.TrimSpace(settlement)
	if settlement == "" {
		return Coinhouse{}, ErrEmptySettlement
	}

	return Coinhouse{
		Tag:        tag,
		Settlement: settlement,
		EngineID:   engineID,
		Persona:    NewCoinhousePersona(tag),
	}, nil
}
