// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
	"github.com/canonical/tenant-session/pkg/access"
)

type Service struct {
	storage StorageInterface
	access  AccessInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	access AccessInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		access:  access,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// HandleRegistration runs after Kratos created an identity. Kratos may
// deliver the same registration more than once, so every step tolerates
// having already happened.
func (s *Service) HandleRegistration(ctx context.Context, identity *KratosIdentity) error {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	s.logger.Debugf("Handling registration for identity %s with email %s", identity.ID, identity.Traits.Email)

	email := types.NormalizeEmail(identity.Traits.Email)
	if identity.ID == "" || email == "" {
		return fmt.Errorf("identity ID or email is empty")
	}

	// 1. Seed the profile so the email is known before the first sign-in
	if err := s.storage.UpsertUserProfile(ctx, identity.ID, types.ProfilePatch{Email: &email}); err != nil {
		return fmt.Errorf("failed to seed user profile: %w", err)
	}

	if identity.Traits.TenantName == "" {
		s.logger.Infof("Registered identity %s without an access request", identity.ID)
		return nil
	}

	// 2. File the access request collected by the sign-up form
	_, err := s.access.SubmitRequest(
		ctx,
		&types.Identity{ID: identity.ID, Email: email, DisplayName: identity.Traits.Name},
		&access.SubmitRequest{TenantName: identity.Traits.TenantName, Role: identity.Traits.Role},
	)

	if errors.Is(err, access.ErrRequestExists) {
		s.logger.Debugf("Access request for %s already open", email)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to submit access request: %w", err)
	}

	s.logger.Infof("Successfully filed access request for user %s", identity.ID)
	return nil
}
