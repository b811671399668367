// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"context"

	"github.com/canonical/tenant-session/internal/types"
)

// DirectoryInterface is the subset of the directory the resolver reads and
// repairs. Missing records are reported with storage.ErrNotFound.
type DirectoryInterface interface {
	GetAccessRequest(ctx context.Context, email string) (*types.AccessRequest, error)
	GetInvite(ctx context.Context, email string) (*types.Invite, error)
	GetUserProfile(ctx context.Context, identityID string) (*types.UserProfile, error)
	GetTenant(ctx context.Context, id string) (*types.Tenant, error)
	FindTenantByMembership(ctx context.Context, email string) (*types.Tenant, error)
	GetMembership(ctx context.Context, identityID, tenantID string) (*types.Membership, error)

	UpsertUserProfile(ctx context.Context, identityID string, patch types.ProfilePatch) error
	CreateMembership(ctx context.Context, identityID, tenantID, role string) error
	DeleteInvite(ctx context.Context, email, tenantID string) error
}

type ResolverInterface interface {
	Resolve(ctx context.Context, identity *types.Identity) *Result
	SwitchActiveTenant(ctx context.Context, identity *types.Identity, tenantID string) (*types.Tenant, error)
	IsSiteAdmin(identity *types.Identity) bool
}
