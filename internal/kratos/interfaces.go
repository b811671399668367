// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"

	"github.com/canonical/tenant-session/internal/types"
)

// AdminClientInterface reads identities through the Kratos admin API.
type AdminClientInterface interface {
	GetIdentity(ctx context.Context, id string) (*types.Identity, error)
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
}
