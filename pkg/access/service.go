// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/storage"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
)

const OwnerRole = "Head Coach"

// Service owns the write side of onboarding: access requests, their review
// by site administrators, invites and the first tenant of an approved
// requester. Session resolution only ever reads what it writes.
type Service struct {
	storage     StorageInterface
	admins      AdminListInterface
	trialLength time.Duration
	validate    *validator.Validate
	now         func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) IsSiteAdmin(identity *types.Identity) bool {
	return identity != nil && s.admins.Contains(identity.Email)
}

// SubmitRequest files a pending request for the caller's email. A denied
// request may be resubmitted, a pending or approved one may not.
func (s *Service) SubmitRequest(ctx context.Context, identity *types.Identity, req *SubmitRequest) (*types.AccessRequest, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.SubmitRequest")
	defer span.End()

	req.Email = identity.Email
	req.TenantName = strings.TrimSpace(req.TenantName)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	r, err := s.storage.SubmitAccessRequest(
		ctx,
		&types.AccessRequest{
			Email:          req.Email,
			TenantNameHint: req.TenantName,
			Role:           req.Role,
		},
	)

	if errors.Is(err, storage.ErrDuplicateKey) {
		return nil, ErrRequestExists
	}

	if err != nil {
		return nil, fmt.Errorf("failed to submit access request: %w", err)
	}

	s.logger.Infow("access request submitted", "email", r.Email)

	return r, nil
}

func (s *Service) ListRequests(ctx context.Context, status types.RequestStatus) ([]*types.AccessRequest, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.ListRequests")
	defer span.End()

	if status != "" && !status.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown status %q", status)}
	}

	return s.storage.ListAccessRequests(ctx, status)
}

func (s *Service) Approve(ctx context.Context, actor *types.Identity, email string) (*types.AccessRequest, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.Approve")
	defer span.End()

	return s.decide(ctx, actor, email, types.RequestApproved)
}

func (s *Service) Deny(ctx context.Context, actor *types.Identity, email string) (*types.AccessRequest, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.Deny")
	defer span.End()

	return s.decide(ctx, actor, email, types.RequestDenied)
}

func (s *Service) decide(ctx context.Context, actor *types.Identity, email string, status types.RequestStatus) (*types.AccessRequest, error) {
	if !s.IsSiteAdmin(actor) {
		return nil, ErrForbidden
	}

	r, err := s.storage.SetAccessRequestStatus(ctx, email, status, actor.ID)
	if errors.Is(err, storage.ErrNotFound) {
		// distinguish a missing request from one that was already decided
		if _, gerr := s.storage.GetAccessRequest(ctx, email); gerr == nil {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	if err != nil {
		return nil, fmt.Errorf("failed to set access request status: %w", err)
	}

	s.logger.Security().AdminAction(actor.ID, string(status), "access_request:"+r.Email)

	return r, nil
}

// Purge removes a request whatever its status, the email can then submit
// again from scratch.
func (s *Service) Purge(ctx context.Context, actor *types.Identity, email string) error {
	ctx, span := s.tracer.Start(ctx, "access.Service.Purge")
	defer span.End()

	if !s.IsSiteAdmin(actor) {
		return ErrForbidden
	}

	if err := s.storage.DeleteAccessRequest(ctx, email); err != nil {
		return err
	}

	s.logger.Security().AdminAction(actor.ID, "purge", "access_request:"+types.NormalizeEmail(email))

	return nil
}

func (s *Service) CreateInvite(ctx context.Context, actor *types.Identity, req *InviteRequest) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.CreateInvite")
	defer span.End()

	if !s.IsSiteAdmin(actor) {
		return nil, ErrForbidden
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.storage.GetTenant(ctx, req.TenantID); err != nil {
		return nil, err
	}

	invite, err := s.storage.CreateInvite(
		ctx,
		&types.Invite{
			Email:    req.Email,
			TenantID: req.TenantID,
			Role:     req.Role,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	s.logger.Security().AdminAction(actor.ID, "invite", fmt.Sprintf("tenant:%s,email:%s", invite.TenantID, invite.Email))

	return invite, nil
}

// SetupTenant creates the caller's tenant with the caller as its owner and
// points their profile at it. Only site administrators and callers with an
// approved request who are not yet on any tenant may do this.
func (s *Service) SetupTenant(ctx context.Context, identity *types.Identity, req *TenantRequest) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "access.Service.SetupTenant")
	defer span.End()

	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	if !s.IsSiteAdmin(identity) {
		if err := s.checkApproved(ctx, identity); err != nil {
			return nil, err
		}
	}

	trialEnds := s.now().Add(s.trialLength)
	tenant, err := s.storage.CreateTenant(
		ctx,
		&types.Tenant{
			Name:       strings.TrimSpace(req.Name),
			AdminEmail: identity.Email,
			MemberList: []string{identity.Email},
			StaffList: []types.StaffMember{
				{Email: identity.Email, Role: OwnerRole},
			},
			Subscription: types.Subscription{
				Status:      types.SubscriptionTrial,
				TrialEndsAt: &trialEnds,
			},
		},
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	if err := s.storage.CreateMembership(ctx, identity.ID, tenant.ID, OwnerRole); err != nil {
		return nil, fmt.Errorf("failed to create owner membership: %w", err)
	}

	email := identity.Email
	patch := types.ProfilePatch{
		Email:          &email,
		ActiveTenantID: &tenant.ID,
		Roles:          []string{OwnerRole},
	}

	if err := s.storage.UpsertUserProfile(ctx, identity.ID, patch); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Infow("tenant created", "tenant", tenant.ID, "owner", identity.ID)

	return tenant, nil
}

func (s *Service) checkApproved(ctx context.Context, identity *types.Identity) error {
	r, err := s.storage.GetAccessRequest(ctx, identity.Email)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotApproved
	}

	if err != nil {
		return fmt.Errorf("failed to get access request: %w", err)
	}

	if r.Status != types.RequestApproved {
		return ErrNotApproved
	}

	_, err = s.storage.FindTenantByMembership(ctx, identity.Email)
	switch {
	case err == nil:
		return ErrTenantExists
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("failed to look up tenant membership: %w", err)
	}

	// invited staff hold a membership without a roster entry
	memberships, err := s.storage.ListMemberships(ctx, identity.ID)
	if err != nil {
		return fmt.Errorf("failed to list memberships: %w", err)
	}

	if len(memberships) > 0 {
		return ErrTenantExists
	}

	return nil
}

func NewService(s StorageInterface, admins AdminListInterface, trialLength time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	svc := new(Service)

	svc.storage = s
	svc.admins = admins
	svc.trialLength = trialLength
	svc.validate = newValidator()
	svc.now = time.Now

	svc.tracer = tracer
	svc.monitor = monitor
	svc.logger = logger

	return svc
}
