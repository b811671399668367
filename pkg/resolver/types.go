// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"fmt"

	"github.com/canonical/tenant-session/internal/types"
)

type State string

const (
	StateUnauthenticated  State = "unauthenticated"
	StatePendingRequest   State = "pending_request"
	StateAwaitingApproval State = "awaiting_approval"
	StateNeedsTenantSetup State = "needs_tenant_setup"
	StateReady            State = "ready"
	StateResolutionError  State = "resolution_error"
)

type RepairKind string

const (
	RepairCreateMembership RepairKind = "create_membership"
	RepairSetActiveTenant  RepairKind = "set_active_tenant"
	RepairConsumeInvite    RepairKind = "consume_invite"
)

// RepairCommand backfills a missing membership or profile link, or retires
// an invite that has been turned into a membership. An empty Role on a
// membership command means the configured default role.
type RepairCommand struct {
	Kind     RepairKind `json:"kind"`
	TenantID string     `json:"tenant_id"`
	Role     string     `json:"role,omitempty"`
}

func (c RepairCommand) String() string {
	if c.Kind == RepairCreateMembership {
		return fmt.Sprintf("%s(%s, %s)", c.Kind, c.TenantID, c.Role)
	}
	return fmt.Sprintf("%s(%s)", c.Kind, c.TenantID)
}

// Decision is either terminal, with State set, or asks for one more fact
// through Need.
type Decision struct {
	State   State
	Tenant  *types.Tenant
	Repairs []RepairCommand
	Need    *Need
}

func (d Decision) Terminal() bool {
	return d.Need == nil
}

// Result is the outcome of one resolution run.
type Result struct {
	Identity      *types.Identity
	State         State
	Tenant        *types.Tenant
	Profile       *types.UserProfile
	AccessRequest *types.AccessRequest
	SiteAdmin     bool
	Repairs       []RepairCommand
	Err           error
}

// Message is the human readable cause of a resolution_error, empty
// otherwise.
func (r *Result) Message() string {
	if r == nil || r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func (r *Result) TenantID() string {
	if r == nil || r.Tenant == nil {
		return ""
	}
	return r.Tenant.ID
}
