// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/canonical/tenant-session/internal/types"
	"github.com/canonical/tenant-session/pkg/access"
)

// StorageInterface defines the storage operations required by the webhooks package.
// It is a subset of the internal/storage interface.
type StorageInterface interface {
	UpsertUserProfile(ctx context.Context, identityID string, patch types.ProfilePatch) error
}

// AccessInterface is the subset of the access service used on registration.
type AccessInterface interface {
	SubmitRequest(ctx context.Context, identity *types.Identity, req *access.SubmitRequest) (*types.AccessRequest, error)
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identity *KratosIdentity) error
}
