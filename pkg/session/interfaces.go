// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"

	"github.com/canonical/tenant-session/internal/types"
	"github.com/canonical/tenant-session/pkg/resolver"
)

// IdentityProviderInterface signs a user in and out and reports every
// identity change, nil meaning signed out. Listeners may be invoked from
// inside SignIn and SignOut.
type IdentityProviderInterface interface {
	OnChange(func(*types.Identity)) func()
	SignIn(context.Context, types.Credential) (*types.Identity, error)
	SignOut(context.Context) error
}

type ResolverInterface interface {
	Resolve(context.Context, *types.Identity) *resolver.Result
	SwitchActiveTenant(context.Context, *types.Identity, string) (*types.Tenant, error)
	IsSiteAdmin(*types.Identity) bool
}
