// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/canonical/tenant-session/internal/types"
)

type contextKey struct{}

var identityContextKey = contextKey{}

// WithIdentity returns a copy of ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, identity *types.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// GetIdentity retrieves the authenticated identity, false when the request
// was never authenticated.
func GetIdentity(ctx context.Context) (*types.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*types.Identity)
	return identity, ok && identity != nil
}
