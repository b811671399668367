// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"net/http"

	"github.com/canonical/tenant-session/internal/kratos"
	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/pkg/authentication"
)

const (
	// HeaderName is the header the gateway uses to pass the authenticated identity ID
	HeaderName = "X-Kratos-Authenticated-Identity-Id"
)

type Middleware struct {
	kratos kratos.AdminClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(kratos kratos.AdminClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		kratos:  kratos,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// HTTPMiddleware resolves the identity named by the gateway header. Requests
// without the header pass through untouched, a header naming an unknown
// identity is rejected.
func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identityID := r.Header.Get(HeaderName)
		if identityID == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.HTTPMiddleware")
		defer span.End()

		identity, err := m.kratos.GetIdentity(ctx, identityID)
		if err != nil {
			m.logger.Debugf("failed to resolve identity %s: %v", identityID, err)
			m.logger.Security().AuthzFailure(identityID, "kratos_identity")
			http.Error(w, "unknown identity", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(authentication.WithIdentity(ctx, identity)))
	})
}
