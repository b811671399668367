// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"time"

	"github.com/canonical/tenant-session/internal/types"
	"github.com/canonical/tenant-session/pkg/resolver"
)

// View is what the application renders from: the resolved state plus the
// records the state was resolved from.
type View struct {
	Identity      *types.Identity      `json:"identity,omitempty"`
	State         resolver.State       `json:"state"`
	Tenant        *types.Tenant        `json:"tenant,omitempty"`
	Profile       *types.UserProfile   `json:"profile,omitempty"`
	AccessRequest *types.AccessRequest `json:"access_request,omitempty"`
	SiteAdmin     bool                 `json:"site_admin"`
	Message       string               `json:"message,omitempty"`
	Permissions   Permissions          `json:"permissions,omitempty"`
	// SubscriptionActive is only meaningful in the ready state.
	SubscriptionActive bool `json:"subscription_active"`
	TrialDaysRemaining *int `json:"trial_days_remaining,omitempty"`
}

func unauthenticatedView() View {
	return View{State: resolver.StateUnauthenticated}
}

// NewView renders a resolution result.
func NewView(result *resolver.Result, now time.Time) View {
	v := View{
		Identity:      result.Identity,
		State:         result.State,
		Tenant:        result.Tenant,
		Profile:       result.Profile,
		AccessRequest: result.AccessRequest,
		SiteAdmin:     result.SiteAdmin,
		Message:       result.Message(),
	}

	v.refresh(now)

	return v
}

// refresh recomputes the derived fields after the tenant or profile changed.
func (v *View) refresh(now time.Time) {
	v.Permissions = nil
	v.SubscriptionActive = false
	v.TrialDaysRemaining = nil

	if v.State == resolver.StateReady && v.Tenant != nil {
		v.Permissions = ComputePermissions(v.roles(), v.SiteAdmin)
		v.SubscriptionActive = v.Tenant.Subscription.Active(now)
		v.TrialDaysRemaining = v.Tenant.Subscription.DaysRemaining(now)
		return
	}

	// site admins keep the admin surface while they have no tenant
	if v.SiteAdmin && v.State != resolver.StateUnauthenticated {
		v.Permissions = ComputePermissions(nil, true)
	}
}

// roles merges the profile roles with the staff role held in the tenant.
func (v *View) roles() []string {
	var roles []string
	if v.Profile != nil {
		roles = append(roles, v.Profile.Roles...)
	}

	if v.Identity != nil && v.Tenant != nil {
		if role := v.Tenant.RoleFor(v.Identity.Email, ""); role != "" {
			roles = append(roles, role)
		}
	}

	return roles
}
