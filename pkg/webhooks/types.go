// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

type KratosIdentity struct {
	ID     string       `json:"id"`
	Traits KratosTraits `json:"traits"`
}

// KratosTraits mirrors the registration schema, TenantName is only set when
// the sign-up form also asked for the team the user wants to onboard.
type KratosTraits struct {
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	TenantName string `json:"tenant_name,omitempty"`
	Role       string `json:"role,omitempty"`
}
