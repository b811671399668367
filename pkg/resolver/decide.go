// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"github.com/canonical/tenant-session/internal/types"
)

// Decide computes the session state of identity from what snap holds. When
// snap lacks a fact the next check depends on, the decision names that fact
// and the caller is expected to load it and call Decide again. Facts are
// requested in priority order and only when the earlier checks did not
// settle the state, so the sequence of reads is itself deterministic.
//
// Decide performs no I/O and never mutates snap.
func Decide(identity *types.Identity, snap *Snapshot, admins *AdminList) Decision {
	if identity == nil {
		return terminal(StateUnauthenticated, nil)
	}

	email := types.NormalizeEmail(identity.Email)

	if admins.Contains(email) {
		active, need := liveActiveTenant(snap)
		if need != nil {
			return ask(*need)
		}
		if active != nil {
			return terminal(StateReady, active)
		}
		return terminal(StateNeedsTenantSetup, nil)
	}

	if email != "" {
		if need := (Need{Fact: FactAccessRequest}); !snap.Loaded(need) {
			return ask(need)
		}

		if r := snap.request; r != nil {
			switch r.Status {
			case types.RequestApproved:
				return decideApproved(email, snap)
			case types.RequestPending:
				return terminal(StateAwaitingApproval, nil)
			}
		}

		if d, matched := decideInvite(snap); matched {
			return d
		}
	}

	active, need := liveActiveTenant(snap)
	if need != nil {
		return ask(*need)
	}
	if active != nil {
		held, need := holdsTenant(email, snap, active)
		if need != nil {
			return ask(*need)
		}
		if held {
			return terminal(StateReady, active)
		}
	}

	if email != "" {
		if d, matched := joinMemberTenant(email, snap); matched {
			return d
		}
	}

	return terminal(StatePendingRequest, nil)
}

func decideApproved(email string, snap *Snapshot) Decision {
	active, need := liveActiveTenant(snap)
	if need != nil {
		return ask(*need)
	}
	if active != nil {
		return terminal(StateReady, active)
	}

	if d, matched := joinMemberTenant(email, snap); matched {
		return d
	}

	return terminal(StateNeedsTenantSetup, nil)
}

// decideInvite honours an invite whose tenant still exists: the membership
// is created, the invited tenant becomes the active one and the invite is
// consumed so later runs no longer pull the user back into it.
func decideInvite(snap *Snapshot) (Decision, bool) {
	if need := (Need{Fact: FactInvite}); !snap.Loaded(need) {
		return ask(need), true
	}

	invite := snap.invite
	if invite == nil || invite.TenantID == "" {
		return Decision{}, false
	}

	tenant, need := tenantByID(snap, invite.TenantID)
	if need != nil {
		return ask(*need), true
	}
	if tenant == nil {
		return Decision{}, false
	}

	repairs, need := membershipRepair(snap, tenant.ID, invite.Role)
	if need != nil {
		return ask(*need), true
	}

	if need := (Need{Fact: FactProfile}); !snap.Loaded(need) {
		return ask(need), true
	}

	repairs = append(repairs, activeTenantRepair(snap, tenant.ID)...)
	repairs = append(repairs, RepairCommand{Kind: RepairConsumeInvite, TenantID: tenant.ID})

	return ready(tenant, repairs), true
}

// joinMemberTenant is the membership scan. It is only reached by identities
// the cheaper keyed checks could not place.
func joinMemberTenant(email string, snap *Snapshot) (Decision, bool) {
	if need := (Need{Fact: FactMemberTenant}); !snap.Loaded(need) {
		return ask(need), true
	}

	tenant := snap.memberTenant
	if tenant == nil {
		return Decision{}, false
	}

	repairs, need := membershipRepair(snap, tenant.ID, tenant.RoleFor(email, ""))
	if need != nil {
		return ask(*need), true
	}

	return ready(tenant, append(repairs, activeTenantRepair(snap, tenant.ID)...)), true
}

// holdsTenant reports whether the identity still belongs to tenant, either
// through the tenant's own lists or through a membership record. Roster
// entries need no read.
func holdsTenant(email string, snap *Snapshot, tenant *types.Tenant) (bool, *Need) {
	if email != "" && tenant.HasMember(email) {
		return true, nil
	}

	need := Need{Fact: FactMembership, Key: tenant.ID}
	if !snap.Loaded(need) {
		return false, &need
	}

	return snap.memberships[tenant.ID] != nil, nil
}

// liveActiveTenant follows the profile's active tenant reference. A missing
// profile, an empty reference and a reference to a deleted tenant all yield
// nil.
func liveActiveTenant(snap *Snapshot) (*types.Tenant, *Need) {
	if need := (Need{Fact: FactProfile}); !snap.Loaded(need) {
		return nil, &need
	}

	if snap.profile == nil || snap.profile.ActiveTenantID == "" {
		return nil, nil
	}

	return tenantByID(snap, snap.profile.ActiveTenantID)
}

func tenantByID(snap *Snapshot, id string) (*types.Tenant, *Need) {
	need := Need{Fact: FactTenant, Key: id}
	if !snap.Loaded(need) {
		return nil, &need
	}

	return snap.tenants[id], nil
}

func membershipRepair(snap *Snapshot, tenantID, role string) ([]RepairCommand, *Need) {
	need := Need{Fact: FactMembership, Key: tenantID}
	if !snap.Loaded(need) {
		return nil, &need
	}

	if snap.memberships[tenantID] != nil {
		return nil, nil
	}

	return []RepairCommand{{Kind: RepairCreateMembership, TenantID: tenantID, Role: role}}, nil
}

// activeTenantRepair needs the profile to be loaded already.
func activeTenantRepair(snap *Snapshot, tenantID string) []RepairCommand {
	if snap.profile != nil && snap.profile.ActiveTenantID == tenantID {
		return nil
	}

	return []RepairCommand{{Kind: RepairSetActiveTenant, TenantID: tenantID}}
}

func terminal(state State, tenant *types.Tenant) Decision {
	return Decision{State: state, Tenant: tenant}
}

func ready(tenant *types.Tenant, repairs []RepairCommand) Decision {
	return Decision{State: StateReady, Tenant: tenant, Repairs: repairs}
}

func ask(n Need) Decision {
	return Decision{Need: &n}
}
