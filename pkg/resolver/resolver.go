// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resolver

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/storage"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
)

var _ ResolverInterface = (*Resolver)(nil)

// Resolver runs Decide against the directory. Reads are issued one at a
// time in the order Decide asks for them, repairs are executed after the
// terminal decision and are safe to repeat.
type Resolver struct {
	directory   DirectoryInterface
	admins      *AdminList
	defaultRole string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (r *Resolver) IsSiteAdmin(identity *types.Identity) bool {
	return identity != nil && r.admins.Contains(identity.Email)
}

// Resolve never returns nil and never returns an error: failures end in the
// resolution_error state with Result.Err set.
func (r *Resolver) Resolve(ctx context.Context, identity *types.Identity) *Result {
	ctx, span := r.tracer.Start(ctx, "resolver.Resolver.Resolve")
	defer span.End()

	snap := NewSnapshot()

	for {
		d := Decide(identity, snap, r.admins)
		if d.Terminal() {
			result := r.commit(ctx, identity, snap, d)
			span.SetAttributes(attribute.String("resolver.state", string(result.State)))
			if result.Err != nil {
				span.SetStatus(codes.Error, result.Err.Error())
			}
			return result
		}

		// Decide must move forward on every round.
		if snap.Loaded(*d.Need) {
			return r.fail(identity, snap, fmt.Errorf("fact %s requested twice", d.Need))
		}

		if err := r.load(ctx, identity, snap, *d.Need); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return r.fail(identity, snap, err)
		}
	}
}

func (r *Resolver) load(ctx context.Context, identity *types.Identity, snap *Snapshot, need Need) error {
	ctx, span := r.tracer.Start(ctx, "resolver.Resolver.load")
	defer span.End()

	span.SetAttributes(attribute.String("resolver.fact", need.String()))

	var err error

	switch need.Fact {
	case FactProfile:
		var p *types.UserProfile
		if p, err = r.directory.GetUserProfile(ctx, identity.ID); notFound(err) {
			p, err = nil, nil
		}
		if err == nil {
			snap.SetProfile(p)
		}
	case FactAccessRequest:
		var req *types.AccessRequest
		if req, err = r.directory.GetAccessRequest(ctx, identity.Email); notFound(err) {
			req, err = nil, nil
		}
		if err == nil {
			snap.SetAccessRequest(req)
		}
	case FactInvite:
		var i *types.Invite
		if i, err = r.directory.GetInvite(ctx, identity.Email); notFound(err) {
			i, err = nil, nil
		}
		if err == nil {
			snap.SetInvite(i)
		}
	case FactTenant:
		var t *types.Tenant
		if t, err = r.directory.GetTenant(ctx, need.Key); notFound(err) {
			t, err = nil, nil
		}
		if err == nil {
			snap.SetTenant(need.Key, t)
		}
	case FactMemberTenant:
		var t *types.Tenant
		if t, err = r.directory.FindTenantByMembership(ctx, identity.Email); notFound(err) {
			t, err = nil, nil
		}
		if err == nil {
			snap.SetMemberTenant(t)
		}
	case FactMembership:
		var m *types.Membership
		if m, err = r.directory.GetMembership(ctx, identity.ID, need.Key); notFound(err) {
			m, err = nil, nil
		}
		if err == nil {
			snap.SetMembership(need.Key, m)
		}
	default:
		err = fmt.Errorf("unknown fact %d", need.Fact)
	}

	if err != nil {
		r.logger.Errorf("resolver lookup %s for %s failed: %v", need, identity.ID, err)
		return &LookupError{Lookup: need.String(), Err: err}
	}

	return nil
}

func notFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}

func (r *Resolver) commit(ctx context.Context, identity *types.Identity, snap *Snapshot, d Decision) *Result {
	result := &Result{
		Identity:      identity,
		State:         d.State,
		Tenant:        d.Tenant,
		Profile:       snap.Profile(),
		AccessRequest: snap.AccessRequest(),
		SiteAdmin:     r.IsSiteAdmin(identity),
	}

	for _, cmd := range d.Repairs {
		if err := r.repair(ctx, identity, cmd); err != nil {
			return r.fail(identity, snap, err)
		}

		result.Repairs = append(result.Repairs, cmd)

		if cmd.Kind == RepairSetActiveTenant {
			result.Profile = withActiveTenant(identity, result.Profile, cmd.TenantID)
		}
	}

	if len(result.Repairs) > 0 {
		r.logger.Infof("resolver repaired %s: %v", identity.ID, result.Repairs)
	}

	r.record(result.State)

	return result
}

func withActiveTenant(identity *types.Identity, p *types.UserProfile, tenantID string) *types.UserProfile {
	updated := types.UserProfile{ID: identity.ID, Email: types.NormalizeEmail(identity.Email)}
	if p != nil {
		updated = *p
	}
	updated.ActiveTenantID = tenantID

	return &updated
}

// repair treats a conflict with an existing record, or an invite that is
// already gone, as success.
func (r *Resolver) repair(ctx context.Context, identity *types.Identity, cmd RepairCommand) error {
	ctx, span := r.tracer.Start(ctx, "resolver.Resolver.repair")
	defer span.End()

	span.SetAttributes(
		attribute.String("resolver.repair", string(cmd.Kind)),
		attribute.String("resolver.tenant_id", cmd.TenantID),
	)

	var err error

	switch cmd.Kind {
	case RepairCreateMembership:
		role := cmd.Role
		if role == "" {
			role = r.defaultRole
		}
		err = r.directory.CreateMembership(ctx, identity.ID, cmd.TenantID, role)
	case RepairSetActiveTenant:
		email := types.NormalizeEmail(identity.Email)
		tenantID := cmd.TenantID
		err = r.directory.UpsertUserProfile(ctx, identity.ID, types.ProfilePatch{Email: &email, ActiveTenantID: &tenantID})
	case RepairConsumeInvite:
		// another run got there first
		if err = r.directory.DeleteInvite(ctx, identity.Email, cmd.TenantID); notFound(err) {
			err = nil
		}
	default:
		err = fmt.Errorf("unknown repair %q", cmd.Kind)
	}

	if errors.Is(err, storage.ErrDuplicateKey) {
		r.logger.Debugf("repair %s for %s already applied", cmd, identity.ID)
		return nil
	}

	if err != nil {
		r.logger.Errorf("repair %s for %s failed: %v", cmd, identity.ID, err)
		return &RepairError{Command: cmd, Err: err}
	}

	return nil
}

func (r *Resolver) fail(identity *types.Identity, snap *Snapshot, err error) *Result {
	r.record(StateResolutionError)

	return &Result{
		Identity:      identity,
		State:         StateResolutionError,
		Profile:       snap.Profile(),
		AccessRequest: snap.AccessRequest(),
		SiteAdmin:     r.IsSiteAdmin(identity),
		Err:           err,
	}
}

func (r *Resolver) record(state State) {
	if err := r.monitor.IncResolutionOutcome(map[string]string{"state": string(state)}); err != nil {
		r.logger.Debugf("failed to record resolution outcome: %v", err)
	}
}

// SwitchActiveTenant points the profile of identity at tenantID. Members
// listed on the tenant without a membership record get one. Site admins may
// switch into any existing tenant.
func (r *Resolver) SwitchActiveTenant(ctx context.Context, identity *types.Identity, tenantID string) (*types.Tenant, error) {
	ctx, span := r.tracer.Start(ctx, "resolver.Resolver.SwitchActiveTenant")
	defer span.End()

	if identity == nil {
		return nil, ErrUnauthenticated
	}

	tenant, err := r.directory.GetTenant(ctx, tenantID)
	if notFound(err) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, &LookupError{Lookup: Need{Fact: FactTenant, Key: tenantID}.String(), Err: err}
	}

	if !r.IsSiteAdmin(identity) {
		_, err := r.directory.GetMembership(ctx, identity.ID, tenantID)
		switch {
		case notFound(err) && tenant.HasMember(identity.Email):
			cmd := RepairCommand{Kind: RepairCreateMembership, TenantID: tenantID, Role: tenant.RoleFor(identity.Email, "")}
			if err := r.repair(ctx, identity, cmd); err != nil {
				return nil, err
			}
		case notFound(err):
			r.logger.Security().AuthzFailure(identity.ID, "tenant:"+tenantID)
			return nil, ErrNotAMember
		case err != nil:
			return nil, &LookupError{Lookup: Need{Fact: FactMembership, Key: tenantID}.String(), Err: err}
		}
	}

	if err := r.repair(ctx, identity, RepairCommand{Kind: RepairSetActiveTenant, TenantID: tenantID}); err != nil {
		return nil, err
	}

	r.logger.Infof("identity %s switched active tenant to %s", identity.ID, tenantID)

	return tenant, nil
}

func NewResolver(directory DirectoryInterface, admins *AdminList, defaultRole string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Resolver {
	r := new(Resolver)

	r.directory = directory
	r.admins = admins
	r.defaultRole = defaultRole
	if r.defaultRole == "" {
		r.defaultRole = "member"
	}

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}
