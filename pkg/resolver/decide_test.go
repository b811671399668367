// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"reflect"
	"testing"

	"github.com/canonical/tenant-session/internal/types"
)

// world is a fixed directory content the tests feed to Decide.
type world struct {
	profiles    map[string]*types.UserProfile
	requests    map[string]*types.AccessRequest
	invites     map[string]*types.Invite
	tenants     map[string]*types.Tenant
	memberships map[string]bool
}

func (w world) memberTenant(email string) *types.Tenant {
	var found *types.Tenant
	for _, t := range w.tenants {
		if t.HasMember(email) && (found == nil || t.ID < found.ID) {
			found = t
		}
	}
	return found
}

// decideAll drives Decide to a terminal decision and returns the reads it
// asked for on the way.
func decideAll(t *testing.T, identity *types.Identity, w world, admins *AdminList) (Decision, []Need) {
	t.Helper()

	snap := NewSnapshot()
	var needs []Need

	for i := 0; i < 20; i++ {
		d := Decide(identity, snap, admins)
		if d.Terminal() {
			return d, needs
		}

		n := *d.Need
		if snap.Loaded(n) {
			t.Fatalf("fact %s requested twice", n)
		}
		needs = append(needs, n)

		email := types.NormalizeEmail(identity.Email)
		switch n.Fact {
		case FactProfile:
			snap.SetProfile(w.profiles[identity.ID])
		case FactAccessRequest:
			snap.SetAccessRequest(w.requests[types.RequestKey(email)])
		case FactInvite:
			snap.SetInvite(w.invites[email])
		case FactTenant:
			snap.SetTenant(n.Key, w.tenants[n.Key])
		case FactMemberTenant:
			snap.SetMemberTenant(w.memberTenant(email))
		case FactMembership:
			var m *types.Membership
			if w.memberships[identity.ID+"/"+n.Key] {
				m = &types.Membership{IdentityID: identity.ID, TenantID: n.Key}
			}
			snap.SetMembership(n.Key, m)
		}
	}

	t.Fatalf("Decide did not terminate")
	return Decision{}, nil
}

func tenantsOf(ts ...*types.Tenant) map[string]*types.Tenant {
	m := make(map[string]*types.Tenant, len(ts))
	for _, t := range ts {
		m[t.ID] = t
	}
	return m
}

func TestDecide(t *testing.T) {
	coach := &types.Identity{ID: "u1", Email: "Coach@School.com"}
	admin := &types.Identity{ID: "a1", Email: "Root@Example.com"}
	admins := NewAdminList("root@example.com")

	t1 := &types.Tenant{ID: "t1", Name: "Eagles", MemberList: []string{"coach@school.com"}}
	t2 := &types.Tenant{ID: "t2", Name: "Hawks", StaffList: []types.StaffMember{{Email: "COACH@school.com", Role: "Head Coach"}}}
	t3 := &types.Tenant{ID: "t3", Name: "Owls"}

	approved := map[string]*types.AccessRequest{"coach@school_com": {Email: "coach@school.com", Status: types.RequestApproved}}
	pending := map[string]*types.AccessRequest{"coach@school_com": {Email: "coach@school.com", Status: types.RequestPending}}
	denied := map[string]*types.AccessRequest{"coach@school_com": {Email: "coach@school.com", Status: types.RequestDenied}}

	tests := []struct {
		name            string
		identity        *types.Identity
		world           world
		expectedState   State
		expectedTenant  string
		expectedRepairs []RepairCommand
	}{
		{
			name:          "no identity",
			identity:      nil,
			expectedState: StateUnauthenticated,
		},
		{
			name:          "clean new user",
			identity:      &types.Identity{ID: "u1", Email: "new@x.com"},
			expectedState: StatePendingRequest,
		},
		{
			name:          "site admin without anything",
			identity:      admin,
			expectedState: StateNeedsTenantSetup,
		},
		{
			name:     "site admin ignores a pending request",
			identity: admin,
			world: world{
				requests: map[string]*types.AccessRequest{"root@example_com": {Status: types.RequestPending}},
			},
			expectedState: StateNeedsTenantSetup,
		},
		{
			name:     "site admin with live active tenant",
			identity: admin,
			world: world{
				profiles: map[string]*types.UserProfile{"a1": {ID: "a1", ActiveTenantID: "t3"}},
				tenants:  tenantsOf(t3),
			},
			expectedState:  StateReady,
			expectedTenant: "t3",
		},
		{
			name:     "site admin with deleted active tenant",
			identity: admin,
			world: world{
				profiles: map[string]*types.UserProfile{"a1": {ID: "a1", ActiveTenantID: "gone"}},
			},
			expectedState: StateNeedsTenantSetup,
		},
		{
			name:          "pending request",
			identity:      coach,
			world:         world{requests: pending, tenants: tenantsOf(t1)},
			expectedState: StateAwaitingApproval,
		},
		{
			name:     "approved with live active tenant",
			identity: coach,
			world: world{
				requests: approved,
				profiles: map[string]*types.UserProfile{"u1": {ID: "u1", ActiveTenantID: "t3"}},
				tenants:  tenantsOf(t3),
			},
			expectedState:  StateReady,
			expectedTenant: "t3",
		},
		{
			name:     "approved with orphaned profile",
			identity: coach,
			world: world{
				requests: approved,
				profiles: map[string]*types.UserProfile{"u1": {ID: "u1", ActiveTenantID: "t1"}},
				tenants:  tenantsOf(t2),
			},
			expectedState:  StateReady,
			expectedTenant: "t2",
			expectedRepairs: []RepairCommand{
				{Kind: RepairCreateMembership, TenantID: "t2", Role: "Head Coach"},
				{Kind: RepairSetActiveTenant, TenantID: "t2"},
			},
		},
		{
			name:          "approved without any tenant",
			identity:      coach,
			world:         world{requests: approved},
			expectedState: StateNeedsTenantSetup,
		},
		{
			name:     "approved request wins over invite",
			identity: coach,
			world: world{
				requests: approved,
				invites:  map[string]*types.Invite{"coach@school.com": {Email: "coach@school.com", TenantID: "t3"}},
				tenants:  tenantsOf(t3),
			},
			expectedState: StateNeedsTenantSetup,
		},
		{
			name:     "denied request falls through to invite",
			identity: coach,
			world: world{
				requests: denied,
				invites:  map[string]*types.Invite{"coach@school.com": {Email: "coach@school.com", TenantID: "t3", Role: "Position Coach"}},
				tenants:  tenantsOf(t3),
			},
			expectedState:  StateReady,
			expectedTenant: "t3",
			expectedRepairs: []RepairCommand{
				{Kind: RepairCreateMembership, TenantID: "t3", Role: "Position Coach"},
				{Kind: RepairSetActiveTenant, TenantID: "t3"},
				{Kind: RepairConsumeInvite, TenantID: "t3"},
			},
		},
		{
			name:          "denied request without anything else",
			identity:      coach,
			world:         world{requests: denied},
			expectedState: StatePendingRequest,
		},
		{
			name:     "invite switches the active tenant",
			identity: coach,
			world: world{
				invites:  map[string]*types.Invite{"coach@school.com": {Email: "coach@school.com", TenantID: "t3"}},
				profiles: map[string]*types.UserProfile{"u1": {ID: "u1", ActiveTenantID: "t1"}},
				tenants:  tenantsOf(t1, t3),
			},
			expectedState:  StateReady,
			expectedTenant: "t3",
			expectedRepairs: []RepairCommand{
				{Kind: RepairCreateMembership, TenantID: "t3"},
				{Kind: RepairSetActiveTenant, TenantID: "t3"},
				{Kind: RepairConsumeInvite, TenantID: "t3"},
			},
		},
		{
			name:     "invite already honoured",
			identity: coach,
			world: world{
				invites:     map[string]*types.Invite{"coach@school.com": {Email: "coach@school.com", TenantID: "t3"}},
				profiles:    map[string]*types.UserProfile{"u1": {ID: "u1", ActiveTenantID: "t3"}},
				tenants:     tenantsOf(t3),
				memberships: map[string]bool{"u1/t3": true},
			},
			expectedState:  StateReady,
			expectedTenant: "t3",
			expectedRepairs: []RepairCommand{
				{Kind: RepairConsumeInvite, TenantID: "t3"},
			},
		},
		{
			name:     "stale invite falls through to the scan",
			identity: coach,
			world: world{
				invites: map[string]*types.Invite{"coach@school.com": {Email: "coach@school.com", TenantID: "t-deleted"}},
				tenants: tenantsOf(t1),
			},
			expectedState:  StateReady,
			expectedTenant: "t1",
			expectedRepairs: []RepairCommand{
				{Kind: RepairCreateMembership, TenantID: "t1"},
				{Kind: RepairSetActiveTenant, TenantID: "t1"},
			},
		},
		{
			name:     "stale invite and no membership",
			identity: coach,
			world: world{
				invites: map[string]*types.Invite{"coach@school.com": {Email: "coach@school.com", TenantID: "t-deleted"}},
			},
			expectedState: StatePendingRequest,
		},
		{
			name:     "cached active tenant skips the scan",
			identity: coach,
			world: world{
				profiles: map[string]*types.UserProfile{"u1": {ID: "u1", ActiveTenantID: "t2"}},
				tenants:  tenantsOf(t1, t2),
			},
			expectedState:  StateReady,
			expectedTenant: "t2",
		},
		{
			name:     "cached active tenant held through a membership record",
			identity: coach,
			world: world{
				profiles:    map[string]*types.UserProfile{"u1": {ID: "u1", ActiveTenantID: "t3"}},
				tenants:     tenantsOf(t1, t3),
				memberships: map[string]bool{"u1/t3": true},
			},
			expectedState:  StateReady,
			expectedTenant: "t3",
		},
		{
			name:     "cached active tenant no longer held falls back to the scan",
			identity: coach,
			world: world{
				profiles: map[string]*types.UserProfile{"u1": {ID: "u1", ActiveTenantID: "t3"}},
				tenants:  tenantsOf(t1, t3),
			},
			expectedState:  StateReady,
			expectedTenant: "t1",
			expectedRepairs: []RepairCommand{
				{Kind: RepairCreateMembership, TenantID: "t1"},
				{Kind: RepairSetActiveTenant, TenantID: "t1"},
			},
		},
		{
			name:     "former site admin with a cached tenant and nothing else",
			identity: &types.Identity{ID: "a1", Email: "former@example.com"},
			world: world{
				profiles: map[string]*types.UserProfile{"a1": {ID: "a1", ActiveTenantID: "t3"}},
				tenants:  tenantsOf(t3),
			},
			expectedState: StatePendingRequest,
		},
		{
			name:     "scan with an existing membership only repairs the profile",
			identity: coach,
			world: world{
				tenants:     tenantsOf(t1, t2),
				memberships: map[string]bool{"u1/t1": true},
			},
			expectedState:  StateReady,
			expectedTenant: "t1",
			expectedRepairs: []RepairCommand{
				{Kind: RepairSetActiveTenant, TenantID: "t1"},
			},
		},
		{
			name:     "identity without email uses only the profile",
			identity: &types.Identity{ID: "u9"},
			world: world{
				profiles:    map[string]*types.UserProfile{"u9": {ID: "u9", ActiveTenantID: "t3"}},
				tenants:     tenantsOf(t3),
				memberships: map[string]bool{"u9/t3": true},
			},
			expectedState:  StateReady,
			expectedTenant: "t3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := decideAll(t, tt.identity, tt.world, admins)

			if d.State != tt.expectedState {
				t.Fatalf("expected state %s, got %s", tt.expectedState, d.State)
			}

			tenantID := ""
			if d.Tenant != nil {
				tenantID = d.Tenant.ID
			}
			if tenantID != tt.expectedTenant {
				t.Errorf("expected tenant %q, got %q", tt.expectedTenant, tenantID)
			}

			if !reflect.DeepEqual(d.Repairs, tt.expectedRepairs) {
				t.Errorf("expected repairs %v, got %v", tt.expectedRepairs, d.Repairs)
			}
		})
	}
}

func TestDecide_Determinism(t *testing.T) {
	identity := &types.Identity{ID: "u1", Email: "coach@school.com"}
	w := world{
		requests: map[string]*types.AccessRequest{"coach@school_com": {Status: types.RequestApproved}},
		profiles: map[string]*types.UserProfile{"u1": {ID: "u1", ActiveTenantID: "t1"}},
		tenants: tenantsOf(
			&types.Tenant{ID: "t2", StaffList: []types.StaffMember{{Email: "coach@school.com"}}},
			&types.Tenant{ID: "t3", MemberList: []string{"coach@school.com"}},
		),
	}

	first, firstNeeds := decideAll(t, identity, w, nil)
	for i := 0; i < 10; i++ {
		d, needs := decideAll(t, identity, w, nil)
		if !reflect.DeepEqual(d, first) {
			t.Fatalf("run %d decided %+v, first run decided %+v", i, d, first)
		}
		if !reflect.DeepEqual(needs, firstNeeds) {
			t.Fatalf("run %d read %v, first run read %v", i, needs, firstNeeds)
		}
	}
}

func TestDecide_CaseInsensitive(t *testing.T) {
	w := world{
		requests: map[string]*types.AccessRequest{"coach@school_com": {Status: types.RequestPending}},
		invites:  map[string]*types.Invite{"coach@school.com": {TenantID: "t1"}},
		tenants:  tenantsOf(&types.Tenant{ID: "t1", MemberList: []string{"Coach@School.com"}}),
	}

	for _, email := range []string{"Coach@School.com", "coach@school.com", " COACH@SCHOOL.COM "} {
		d, _ := decideAll(t, &types.Identity{ID: "u1", Email: email}, w, nil)
		if d.State != StateAwaitingApproval {
			t.Errorf("%q: expected awaiting approval, got %s", email, d.State)
		}
	}

	delete(w.requests, "coach@school_com")
	for _, email := range []string{"Coach@School.com", "coach@school.com"} {
		d, _ := decideAll(t, &types.Identity{ID: "u1", Email: email}, w, nil)
		if d.State != StateReady || d.Tenant.ID != "t1" {
			t.Errorf("%q: expected ready in t1 through the invite, got %s", email, d.State)
		}
	}
}

func TestDecide_ReadOrder(t *testing.T) {
	identity := &types.Identity{ID: "u1", Email: "coach@school.com"}

	tests := []struct {
		name     string
		world    world
		admins   *AdminList
		expected []Need
	}{
		{
			name: "clean new user reads everything once",
			expected: []Need{
				{Fact: FactAccessRequest},
				{Fact: FactInvite},
				{Fact: FactProfile},
				{Fact: FactMemberTenant},
			},
		},
		{
			name:     "site admin reads only the profile",
			admins:   NewAdminList("coach@school.com"),
			expected: []Need{{Fact: FactProfile}},
		},
		{
			name: "approved request never reads the invite",
			world: world{
				requests: map[string]*types.AccessRequest{"coach@school_com": {Status: types.RequestApproved}},
				invites:  map[string]*types.Invite{"coach@school.com": {TenantID: "t1"}},
			},
			expected: []Need{
				{Fact: FactAccessRequest},
				{Fact: FactProfile},
				{Fact: FactMemberTenant},
			},
		},
		{
			name: "steady state is keyed lookups only",
			world: world{
				profiles: map[string]*types.UserProfile{"u1": {ID: "u1", ActiveTenantID: "t1"}},
				tenants:  tenantsOf(&types.Tenant{ID: "t1", MemberList: []string{"coach@school.com"}}),
			},
			expected: []Need{
				{Fact: FactAccessRequest},
				{Fact: FactInvite},
				{Fact: FactProfile},
				{Fact: FactTenant, Key: "t1"},
			},
		},
		{
			name: "cached tenant outside the lists checks the membership record",
			world: world{
				profiles:    map[string]*types.UserProfile{"u1": {ID: "u1", ActiveTenantID: "t3"}},
				tenants:     tenantsOf(&types.Tenant{ID: "t3"}),
				memberships: map[string]bool{"u1/t3": true},
			},
			expected: []Need{
				{Fact: FactAccessRequest},
				{Fact: FactInvite},
				{Fact: FactProfile},
				{Fact: FactTenant, Key: "t3"},
				{Fact: FactMembership, Key: "t3"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, needs := decideAll(t, identity, tt.world, tt.admins)
			if !reflect.DeepEqual(needs, tt.expected) {
				t.Errorf("expected reads %v, got %v", tt.expected, needs)
			}
		})
	}
}

func TestAdminList(t *testing.T) {
	l := NewAdminList(" Root@Example.com", "", "ops@example.com")

	if !l.Contains("root@EXAMPLE.com") {
		t.Errorf("expected case-insensitive match")
	}

	if l.Contains("") {
		t.Errorf("empty email must never be an admin")
	}

	var nilList *AdminList
	if nilList.Contains("root@example.com") {
		t.Errorf("nil list must contain nobody")
	}

	if got := l.Emails(); !reflect.DeepEqual(got, []string{"ops@example.com", "root@example.com"}) {
		t.Errorf("unexpected emails %v", got)
	}
}
