// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/tracing"
)

// NewJWTAuthenticator initializes a JWT token verifier.
func NewJWTAuthenticator(
	ctx context.Context,
	issuer string,
	jwksURL string,
	allowedAudiences []string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (TokenVerifierInterface, error) {
	if issuer == "" {
		return nil, fmt.Errorf("issuer is required for JWT authentication")
	}

	if jwksURL != "" {
		logger.Infof("Using manual JWKS URL: %s", jwksURL)
		return NewJWTVerifierDirect(NewVerifierWithJWKS(ctx, issuer, jwksURL), allowedAudiences, tracer, monitor, logger), nil
	}

	logger.Infof("Using OIDC discovery for issuer: %s", issuer)
	provider, err := NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}

	return NewJWTVerifier(provider, allowedAudiences, tracer, monitor, logger), nil
}
