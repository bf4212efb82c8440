// Package access computes what a persona may do with a coinhouse account.
// Evaluation is a pure function of the viewer, the account's holder list,
// and - for organization accounts - the viewer's organization role flags.
package access

import (
	"strings"

	"github.com/arelgame/coinhouse/ledger"
)

// Permission is one bit of the account permission set.
type Permission uint8

const (
	View Permission = 1 << iota
	Deposit
	Withdraw
	RequestWithdraw
	IssueShares
	ManageHolders
)

// Profile is the permission bit-set a viewer holds on one account.
type Profile uint8

// None is the empty profile: no matching holder, no organization grant.
const None Profile = 0

// Has reports whether the profile contains the permission.
func (p Profile) Has(permission Permission) bool {
	return uint8(p)&uint8(permission) != 0
}

func (p Profile) with(permissions ...Permission) Profile {
	next := p
	for _, permission := range permissions {
		next |= Profile(permission)
	}

	return next
}

// String lists the granted permissions for diagnostics.
func (p Profile) String() string {
	if p == None {
		return "none"
	}

	names := []struct {
		permission Permission
		name       string
	}{
		{View, "view"},
		{Deposit, "deposit"},
		{Withdraw, "withdraw"},
		{RequestWithdraw, "request-withdraw"},
		{IssueShares, "issue-shares"},
		{ManageHolders, "manage-holders"},
	}

	granted := make([]string, 0, len(names))

	for _, entry := range names {
		if p.Has(entry.permission) {
			granted = append(granted, entry.name)
		}
	}

	return strings.Join(granted, ",")
}

// Organization role flags that map onto account permissions for
// organization-held accounts.
const (
	FlagViewBank        = "can-view-bank"
	FlagDepositBank     = "can-deposit-bank"
	FlagRequestWithdraw = "can-request-withdraw"
)

// Membership carries the viewer's role flags inside the organization that
// holds the account. A nil-flag membership grants nothing.
type Membership struct {
	Flags map[string]bool
}

// Evaluate computes the viewer's permission profile on an account from its
// holder list, plus organization membership flags when the account is held
// by an organization. No side effects; same inputs, same profile.
func Evaluate(viewer ledger.PersonaID, holders []ledger.AccountHolder, membership Membership) Profile {
	profile := None

	for _, holder := range holders {
		if holder.HolderID == viewer {
			profile = profile.with(permissionsForRole(holder.Role)...)
		}
	}

	if membership.Flags[FlagViewBank] {
		profile = profile.with(View)
	}

	if membership.Flags[FlagDepositBank] {
		profile = profile.with(View, Deposit)
	}

	if membership.Flags[FlagRequestWithdraw] {
		profile = profile.with(View, RequestWithdraw)
	}

	return profile
}

func permissionsForRole(role ledger.HolderRole) []Permission {
	switch role {
	case ledger.RoleOwner, ledger.RoleJointOwner:
		return []Permission{View, Deposit, Withdraw, RequestWithdraw, IssueShares, ManageHolders}
	case ledger.RoleAuthorizedUser:
		return []Permission{View, Deposit, RequestWithdraw}
	case ledger.RoleTrustee:
		return []Permission{View, ManageHolders}
	case ledger.RoleViewer:
		return []Permission{View}
	default:
		return nil
	}
}
