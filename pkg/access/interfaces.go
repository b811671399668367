// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"context"

	"github.com/canonical/tenant-session/internal/types"
)

type ServiceInterface interface {
	IsSiteAdmin(identity *types.Identity) bool

	SubmitRequest(ctx context.Context, identity *types.Identity, req *SubmitRequest) (*types.AccessRequest, error)
	ListRequests(ctx context.Context, status types.RequestStatus) ([]*types.AccessRequest, error)
	Approve(ctx context.Context, actor *types.Identity, email string) (*types.AccessRequest, error)
	Deny(ctx context.Context, actor *types.Identity, email string) (*types.AccessRequest, error)
	Purge(ctx context.Context, actor *types.Identity, email string) error

	CreateInvite(ctx context.Context, actor *types.Identity, req *InviteRequest) (*types.Invite, error)
	SetupTenant(ctx context.Context, identity *types.Identity, req *TenantRequest) (*types.Tenant, error)
}

type StorageInterface interface {
	GetAccessRequest(ctx context.Context, email string) (*types.AccessRequest, error)
	ListAccessRequests(ctx context.Context, status types.RequestStatus) ([]*types.AccessRequest, error)
	SubmitAccessRequest(ctx context.Context, r *types.AccessRequest) (*types.AccessRequest, error)
	SetAccessRequestStatus(ctx context.Context, email string, status types.RequestStatus, actorID string) (*types.AccessRequest, error)
	DeleteAccessRequest(ctx context.Context, email string) error

	CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error)

	GetTenant(ctx context.Context, id string) (*types.Tenant, error)
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	FindTenantByMembership(ctx context.Context, email string) (*types.Tenant, error)

	UpsertUserProfile(ctx context.Context, identityID string, patch types.ProfilePatch) error
	CreateMembership(ctx context.Context, identityID, tenantID, role string) error
	ListMemberships(ctx context.Context, identityID string) ([]*types.Membership, error)
}

type AdminListInterface interface {
	Contains(email string) bool
}
