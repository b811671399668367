// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/tenant-session/internal/types"
)

// StorageInterface is the directory of access requests, invites, tenants,
// profiles and memberships. Every method taking an email normalizes it
// before comparing or keying.
type StorageInterface interface {
	GetAccessRequest(ctx context.Context, email string) (*types.AccessRequest, error)
	ListAccessRequests(ctx context.Context, status types.RequestStatus) ([]*types.AccessRequest, error)
	SubmitAccessRequest(ctx context.Context, r *types.AccessRequest) (*types.AccessRequest, error)
	SetAccessRequestStatus(ctx context.Context, email string, status types.RequestStatus, actorID string) (*types.AccessRequest, error)
	DeleteAccessRequest(ctx context.Context, email string) error

	GetInvite(ctx context.Context, email string) (*types.Invite, error)
	CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error)
	DeleteInvite(ctx context.Context, email, tenantID string) error

	GetTenant(ctx context.Context, id string) (*types.Tenant, error)
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	FindTenantByMembership(ctx context.Context, email string) (*types.Tenant, error)

	GetUserProfile(ctx context.Context, identityID string) (*types.UserProfile, error)
	UpsertUserProfile(ctx context.Context, identityID string, patch types.ProfilePatch) error

	CreateMembership(ctx context.Context, identityID, tenantID, role string) error
	GetMembership(ctx context.Context, identityID, tenantID string) (*types.Membership, error)
	ListMemberships(ctx context.Context, identityID string) ([]*types.Membership, error)
}
