// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"slices"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
)

type claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

type JWTVerifier struct {
	verifier         *oidc.IDTokenVerifier
	allowedAudiences []string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *JWTVerifier) VerifyToken(ctx context.Context, rawToken string) (*types.Identity, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.JWTVerifier.VerifyToken")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	var c claims
	if err := token.Claims(&c); err != nil {
		v.logger.Debugf("Failed to extract claims: %v", err)
		return nil, err
	}

	if !v.audienceAllowed(token.Audience) {
		v.logger.Security().AuthzFailure(c.Subject, "jwt_audience")
		return nil, fmt.Errorf("unauthorized: audience not allowed")
	}

	if c.Email == "" {
		v.logger.Security().AuthzFailure(c.Subject, "jwt_email_claim")
		return nil, fmt.Errorf("unauthorized: token carries no email claim")
	}

	return &types.Identity{
		ID:          c.Subject,
		Email:       types.NormalizeEmail(c.Email),
		DisplayName: c.Name,
	}, nil
}

// audienceAllowed accepts any audience when no allow-list is configured.
func (v *JWTVerifier) audienceAllowed(audiences []string) bool {
	if len(v.allowedAudiences) == 0 {
		return true
	}

	for _, aud := range audiences {
		if slices.Contains(v.allowedAudiences, aud) {
			return true
		}
	}

	return false
}

func NewJWTVerifier(
	provider ProviderInterface,
	allowedAudiences []string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	return NewJWTVerifierDirect(provider.Verifier(verifierConfig()), allowedAudiences, tracer, monitor, logger)
}

func NewJWTVerifierDirect(
	verifier *oidc.IDTokenVerifier,
	allowedAudiences []string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	return &JWTVerifier{
		verifier:         verifier,
		allowedAudiences: allowedAudiences,
		tracer:           tracer,
		monitor:          monitor,
		logger:           logger,
	}
}
