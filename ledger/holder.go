package ledger

import (
	"fmt"
)

// HolderType categorizes the kind of actor holding an account.
type HolderType string

const (
	HolderIndividual   HolderType = "individual"
	HolderOrganization HolderType = "organization"
	HolderGovernment   HolderType = "government"
)

// HolderRole is the role a persona has been granted on a specific account.
type HolderRole string

const (
	RoleOwner          HolderRole = "owner"
	RoleJointOwner     HolderRole = "joint-owner"
	RoleAuthorizedUser HolderRole = "authorized-user"
	RoleTrustee        HolderRole = "trustee"
	RoleViewer         HolderRole = "viewer"
)

// ParseHolderRole validates a raw role token.
func ParseHolderRole(raw string) (HolderRole, error) {
	switch HolderRole(raw) {
	case RoleOwner, RoleJointOwner, RoleAuthorizedUser, RoleTrustee, RoleViewer:
		return HolderRole(raw), nil
	default:
		return "", fmt.Errorf("unknown holder role %q", raw)
	}
}

// ParseHolderType validates a raw holder type token.
func ParseHolderType(raw string) (HolderType, error) {
	switch HolderType(raw) {
	case HolderIndividual, HolderOrganization, HolderGovernment:
		return HolderType(raw), nil
	default:
		return "", fmt.Errorf("unknown holder type %q", raw)
	}
}

// HolderTypeFor maps a persona to the holder type it acts as on an account.
func HolderTypeFor(persona PersonaID) HolderType {
	switch persona.Type() {
	case PersonaOrganization:
		return HolderOrganization
	case PersonaGovernment:
		return HolderGovernment
	default:
		return HolderIndividual
	}
}

// AccountHolder is one persona's grant on an account. An account always has
// at least one holder after creation: the opener, as Owner.
type AccountHolder struct {
	HolderID   PersonaID
	HolderType HolderType
	Role       HolderRole
	Name       string
}
