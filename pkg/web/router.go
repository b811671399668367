// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/tenant-session/internal/db"
	"github.com/canonical/tenant-session/internal/identity"
	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/pkg/access"
	"github.com/canonical/tenant-session/pkg/authentication"
	"github.com/canonical/tenant-session/pkg/metrics"
	"github.com/canonical/tenant-session/pkg/resolver"
	"github.com/canonical/tenant-session/pkg/session"
	"github.com/canonical/tenant-session/pkg/status"
	"github.com/canonical/tenant-session/pkg/webhooks"
)

// NewRouter mounts the public probes and webhooks next to the API group.
// With authn set every API call must carry a verified bearer token and the
// gateway identity header is ignored. With authn nil callers are only known
// through that header.
func NewRouter(
	r resolver.ResolverInterface,
	accessService access.ServiceInterface,
	webhookService webhooks.ServiceInterface,
	webhookAPIKey string,
	identityMiddleware *identity.Middleware,
	authn *authentication.Middleware,
	dbClient db.DBClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(dbClient, tracer, monitor, logger).RegisterEndpoints(router)
	webhooks.NewAPI(webhookService, webhookAPIKey, logger).RegisterEndpoints(router)

	router.Group(func(api chi.Router) {
		if authn != nil {
			api.Use(authn.Authenticate())
		} else {
			api.Use(identityMiddleware.HTTPMiddleware)
		}

		session.NewAPI(r, tracer, logger).RegisterEndpoints(api)
		access.NewAPI(accessService, tracer, logger).RegisterEndpoints(api)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
