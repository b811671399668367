// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/storage"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package resolver -destination ./mock_resolver.go -source=./interfaces.go

func newTestResolver(directory DirectoryInterface, admins ...string) *Resolver {
	logger := logging.NewNoopLogger()

	return NewResolver(
		directory,
		NewAdminList(admins...),
		"member",
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("test", logger),
		logger,
	)
}

func TestResolver_Resolve_ApprovedRequestSkipsInvite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := &types.Identity{ID: "u1", Email: "coach@school.com"}
	directory := NewMockDirectoryInterface(ctrl)

	gomock.InOrder(
		directory.EXPECT().GetAccessRequest(gomock.Any(), "coach@school.com").Return(&types.AccessRequest{Status: types.RequestApproved}, nil),
		directory.EXPECT().GetUserProfile(gomock.Any(), "u1").Return(nil, storage.ErrNotFound),
		directory.EXPECT().FindTenantByMembership(gomock.Any(), "coach@school.com").Return(nil, storage.ErrNotFound),
	)
	directory.EXPECT().GetInvite(gomock.Any(), gomock.Any()).Times(0)

	result := newTestResolver(directory).Resolve(context.Background(), identity)

	if result.State != StateNeedsTenantSetup {
		t.Fatalf("expected %s, got %s (%v)", StateNeedsTenantSetup, result.State, result.Err)
	}
}

func TestResolver_Resolve_Errors(t *testing.T) {
	identity := &types.Identity{ID: "u1", Email: "coach@school.com"}
	unreachable := errors.New("connection refused")
	t1 := &types.Tenant{ID: "t1", MemberList: []string{"coach@school.com"}}

	tests := []struct {
		name          string
		setupMocks    func(*MockDirectoryInterface)
		expectedState State
		expectedErr   error
		lookupError   bool
		repairError   bool
	}{
		{
			name: "unreachable store",
			setupMocks: func(d *MockDirectoryInterface) {
				d.EXPECT().GetAccessRequest(gomock.Any(), gomock.Any()).Return(nil, unreachable)
			},
			expectedState: StateResolutionError,
			expectedErr:   unreachable,
			lookupError:   true,
		},
		{
			name: "malformed profile",
			setupMocks: func(d *MockDirectoryInterface) {
				d.EXPECT().GetAccessRequest(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
				d.EXPECT().GetInvite(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
				d.EXPECT().GetUserProfile(gomock.Any(), "u1").Return(nil, storage.ErrMalformedRecord)
			},
			expectedState: StateResolutionError,
			expectedErr:   storage.ErrMalformedRecord,
			lookupError:   true,
		},
		{
			name: "membership repair fails",
			setupMocks: func(d *MockDirectoryInterface) {
				d.EXPECT().GetAccessRequest(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
				d.EXPECT().GetInvite(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
				d.EXPECT().GetUserProfile(gomock.Any(), "u1").Return(nil, storage.ErrNotFound)
				d.EXPECT().FindTenantByMembership(gomock.Any(), gomock.Any()).Return(t1, nil)
				d.EXPECT().GetMembership(gomock.Any(), "u1", "t1").Return(nil, storage.ErrNotFound)
				d.EXPECT().CreateMembership(gomock.Any(), "u1", "t1", "member").Return(unreachable)
			},
			expectedState: StateResolutionError,
			expectedErr:   unreachable,
			repairError:   true,
		},
		{
			name: "membership repair races with another run",
			setupMocks: func(d *MockDirectoryInterface) {
				d.EXPECT().GetAccessRequest(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
				d.EXPECT().GetInvite(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
				d.EXPECT().GetUserProfile(gomock.Any(), "u1").Return(nil, storage.ErrNotFound)
				d.EXPECT().FindTenantByMembership(gomock.Any(), gomock.Any()).Return(t1, nil)
				d.EXPECT().GetMembership(gomock.Any(), "u1", "t1").Return(nil, storage.ErrNotFound)
				d.EXPECT().CreateMembership(gomock.Any(), "u1", "t1", "member").Return(storage.ErrDuplicateKey)
				d.EXPECT().UpsertUserProfile(gomock.Any(), "u1", gomock.Any()).Return(nil)
			},
			expectedState: StateReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			directory := NewMockDirectoryInterface(ctrl)
			tt.setupMocks(directory)

			result := newTestResolver(directory).Resolve(context.Background(), identity)

			if result.State != tt.expectedState {
				t.Fatalf("expected %s, got %s", tt.expectedState, result.State)
			}

			if tt.expectedErr != nil && !errors.Is(result.Err, tt.expectedErr) {
				t.Errorf("expected error %v, got %v", tt.expectedErr, result.Err)
			}

			if tt.expectedErr == nil && result.Err != nil {
				t.Errorf("unexpected error: %v", result.Err)
			}

			var lookupErr *LookupError
			if errors.As(result.Err, &lookupErr) != tt.lookupError {
				t.Errorf("expected lookup error %v, got %v", tt.lookupError, result.Err)
			}

			var repairErr *RepairError
			if errors.As(result.Err, &repairErr) != tt.repairError {
				t.Errorf("expected repair error %v, got %v", tt.repairError, result.Err)
			}

			if result.State == StateResolutionError && result.Message() == "" {
				t.Errorf("expected a human readable cause")
			}
		})
	}
}

func TestResolver_Resolve_IdempotentRepair(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()

	identity := &types.Identity{ID: "u1", Email: "Coach@School.com"}
	activeTenant := "t1"

	_, _ = store.SubmitAccessRequest(ctx, &types.AccessRequest{Email: "coach@school.com"})
	_, _ = store.SetAccessRequestStatus(ctx, "coach@school.com", types.RequestApproved, "admin")
	_ = store.UpsertUserProfile(ctx, "u1", types.ProfilePatch{ActiveTenantID: &activeTenant})
	_, _ = store.CreateTenant(ctx, &types.Tenant{
		ID:        "t2",
		Name:      "Hawks",
		StaffList: []types.StaffMember{{Email: "coach@school.com", Role: "Head Coach"}},
	})

	r := newTestResolver(store)

	first := r.Resolve(ctx, identity)
	if first.State != StateReady || first.TenantID() != "t2" {
		t.Fatalf("expected ready in t2, got %s in %q (%v)", first.State, first.TenantID(), first.Err)
	}

	if len(first.Repairs) != 2 {
		t.Errorf("expected two repairs on the first run, got %v", first.Repairs)
	}

	if first.Profile == nil || first.Profile.ActiveTenantID != "t2" {
		t.Errorf("expected result profile to carry the repaired tenant, got %+v", first.Profile)
	}

	profile, _ := store.GetUserProfile(ctx, "u1")
	updatedAt := profile.UpdatedAt
	if profile.ActiveTenantID != "t2" {
		t.Fatalf("expected stored active tenant t2, got %q", profile.ActiveTenantID)
	}

	second := r.Resolve(ctx, identity)
	if second.State != StateReady || second.TenantID() != "t2" {
		t.Fatalf("expected ready in t2 again, got %s in %q", second.State, second.TenantID())
	}

	if len(second.Repairs) != 0 {
		t.Errorf("expected no repairs on the second run, got %v", second.Repairs)
	}

	memberships, _ := store.ListMemberships(ctx, "u1")
	if len(memberships) != 1 {
		t.Errorf("expected a single membership, got %d", len(memberships))
	}

	if memberships[0].Role != "Head Coach" {
		t.Errorf("expected staff role to be used, got %q", memberships[0].Role)
	}

	profile, _ = store.GetUserProfile(ctx, "u1")
	if !profile.UpdatedAt.Equal(updatedAt) {
		t.Errorf("expected the profile to be left untouched by the second run")
	}
}

func TestResolver_Resolve_DeniedThenResubmitted(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	identity := &types.Identity{ID: "u1", Email: "coach@school.com"}
	r := newTestResolver(store)

	_, _ = store.SubmitAccessRequest(ctx, &types.AccessRequest{Email: "coach@school.com"})
	if got := r.Resolve(ctx, identity).State; got != StateAwaitingApproval {
		t.Fatalf("expected %s, got %s", StateAwaitingApproval, got)
	}

	_, _ = store.SetAccessRequestStatus(ctx, "coach@school.com", types.RequestDenied, "admin")
	if got := r.Resolve(ctx, identity).State; got != StatePendingRequest {
		t.Fatalf("expected denial to fall through to %s, got %s", StatePendingRequest, got)
	}

	if _, err := store.SubmitAccessRequest(ctx, &types.AccessRequest{Email: "Coach@School.com"}); err != nil {
		t.Fatalf("unexpected error resubmitting: %v", err)
	}

	if got := r.Resolve(ctx, identity).State; got != StateAwaitingApproval {
		t.Errorf("expected resubmission to resolve to %s, got %s", StateAwaitingApproval, got)
	}
}

func TestResolver_Resolve_SiteAdmin(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	r := newTestResolver(store, "Root@Example.com")

	result := r.Resolve(ctx, &types.Identity{ID: "a1", Email: "root@example.com"})

	if result.State != StateNeedsTenantSetup {
		t.Fatalf("expected %s, got %s", StateNeedsTenantSetup, result.State)
	}

	if !result.SiteAdmin {
		t.Errorf("expected result to be flagged as site admin")
	}
}

func TestResolver_SwitchActiveTenant(t *testing.T) {
	ctx := context.Background()

	member := &types.Identity{ID: "u1", Email: "coach@school.com"}
	admin := &types.Identity{ID: "a1", Email: "root@example.com"}

	tests := []struct {
		name        string
		identity    *types.Identity
		tenantID    string
		expectedErr error
	}{
		{name: "member by record", identity: member, tenantID: "t1"},
		{name: "member by staff list", identity: member, tenantID: "t2"},
		{name: "not a member", identity: member, tenantID: "t3", expectedErr: ErrNotAMember},
		{name: "missing tenant", identity: member, tenantID: "nope", expectedErr: ErrTenantNotFound},
		{name: "site admin anywhere", identity: admin, tenantID: "t3"},
		{name: "no identity", identity: nil, tenantID: "t1", expectedErr: ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStorage()
			_, _ = store.CreateTenant(ctx, &types.Tenant{ID: "t1"})
			_, _ = store.CreateTenant(ctx, &types.Tenant{ID: "t2", StaffList: []types.StaffMember{{Email: "coach@school.com", Role: "Team Admin"}}})
			_, _ = store.CreateTenant(ctx, &types.Tenant{ID: "t3"})
			_ = store.CreateMembership(ctx, "u1", "t1", "member")

			r := newTestResolver(store, "root@example.com")

			tenant, err := r.SwitchActiveTenant(ctx, tt.identity, tt.tenantID)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
				}

				if tt.identity != nil {
					if p, err := store.GetUserProfile(ctx, tt.identity.ID); err == nil && p.ActiveTenantID == tt.tenantID {
						t.Errorf("expected no state change on failure")
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tenant.ID != tt.tenantID {
				t.Errorf("expected tenant %s, got %s", tt.tenantID, tenant.ID)
			}

			p, err := store.GetUserProfile(ctx, tt.identity.ID)
			if err != nil || p.ActiveTenantID != tt.tenantID {
				t.Errorf("expected active tenant %s to be persisted, got %+v (%v)", tt.tenantID, p, err)
			}

			if tt.identity == member {
				if _, err := store.GetMembership(ctx, "u1", tt.tenantID); err != nil {
					t.Errorf("expected a membership record in %s: %v", tt.tenantID, err)
				}
			}
		})
	}
}

func TestResolver_Resolve_FormerSiteAdmin(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	identity := &types.Identity{ID: "a1", Email: "root@example.com"}

	_, _ = store.CreateTenant(ctx, &types.Tenant{ID: "t3", Name: "Owls"})

	if _, err := newTestResolver(store, "root@example.com").SwitchActiveTenant(ctx, identity, "t3"); err != nil {
		t.Fatalf("unexpected error switching as site admin: %v", err)
	}

	result := newTestResolver(store).Resolve(ctx, identity)

	if result.State != StatePendingRequest {
		t.Fatalf("expected %s once off the admin list, got %s in %q", StatePendingRequest, result.State, result.TenantID())
	}

	if len(result.Repairs) != 0 {
		t.Errorf("expected no repairs, got %v", result.Repairs)
	}
}

func TestResolver_Resolve_InviteConsumedOnce(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	identity := &types.Identity{ID: "u1", Email: "Assistant@School.com"}
	current := "t1"

	_, _ = store.CreateTenant(ctx, &types.Tenant{ID: "t1", MemberList: []string{"assistant@school.com"}})
	_, _ = store.CreateTenant(ctx, &types.Tenant{ID: "t2"})
	_ = store.CreateMembership(ctx, "u1", "t1", "member")
	_ = store.UpsertUserProfile(ctx, "u1", types.ProfilePatch{ActiveTenantID: &current})
	_, _ = store.CreateInvite(ctx, &types.Invite{Email: "assistant@school.com", TenantID: "t2", Role: "Position Coach"})

	r := newTestResolver(store)

	first := r.Resolve(ctx, identity)
	if first.State != StateReady || first.TenantID() != "t2" {
		t.Fatalf("expected ready in the invited tenant, got %s in %q (%v)", first.State, first.TenantID(), first.Err)
	}

	if _, err := store.GetInvite(ctx, "assistant@school.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected the invite to be consumed, got %v", err)
	}

	m, err := store.GetMembership(ctx, "u1", "t2")
	if err != nil || m.Role != "Position Coach" {
		t.Errorf("expected a Position Coach membership in t2, got %+v (%v)", m, err)
	}

	if _, err := r.SwitchActiveTenant(ctx, identity, "t1"); err != nil {
		t.Fatalf("unexpected error switching back: %v", err)
	}

	second := r.Resolve(ctx, identity)
	if second.State != StateReady || second.TenantID() != "t1" {
		t.Errorf("expected the switch back to t1 to stick, got %s in %q", second.State, second.TenantID())
	}

	if len(second.Repairs) != 0 {
		t.Errorf("expected no repairs once the invite is consumed, got %v", second.Repairs)
	}
}

func TestResolver_Resolve_InviteAlreadyConsumedByAnotherRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	identity := &types.Identity{ID: "u1", Email: "coach@school.com"}
	directory := NewMockDirectoryInterface(ctrl)

	directory.EXPECT().GetAccessRequest(gomock.Any(), gomock.Any()).Return(nil, storage.ErrNotFound)
	directory.EXPECT().GetInvite(gomock.Any(), gomock.Any()).Return(&types.Invite{Email: "coach@school.com", TenantID: "t1"}, nil)
	directory.EXPECT().GetTenant(gomock.Any(), "t1").Return(&types.Tenant{ID: "t1"}, nil)
	directory.EXPECT().GetMembership(gomock.Any(), "u1", "t1").Return(&types.Membership{IdentityID: "u1", TenantID: "t1"}, nil)
	directory.EXPECT().GetUserProfile(gomock.Any(), "u1").Return(&types.UserProfile{ID: "u1", ActiveTenantID: "t1"}, nil)
	directory.EXPECT().DeleteInvite(gomock.Any(), "coach@school.com", "t1").Return(storage.ErrNotFound)

	result := newTestResolver(directory).Resolve(context.Background(), identity)

	if result.State != StateReady || result.Err != nil {
		t.Fatalf("expected ready, got %s (%v)", result.State, result.Err)
	}
}
