// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/tenant-session/internal/http/types"
	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/pkg/authentication"
	"github.com/canonical/tenant-session/pkg/resolver"
)

type SwitchTenantRequest struct {
	TenantID string `json:"tenant_id"`
}

// API resolves the caller's session on every request, there is no server
// side session cache.
type API struct {
	resolver ResolverInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/session", a.getSession)
	mux.Put("/api/v0/session/active-tenant", a.switchActiveTenant)
}

func (a *API) getSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "session.API.getSession")
	defer span.End()

	identity, ok := authentication.GetIdentity(ctx)
	if !ok {
		a.write(w, http.StatusOK, "", unauthenticatedView())
		return
	}

	view := NewView(a.resolver.Resolve(ctx, identity), time.Now())

	a.write(w, http.StatusOK, view.Message, view)
}

func (a *API) switchActiveTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "session.API.switchActiveTenant")
	defer span.End()

	identity, ok := authentication.GetIdentity(ctx)
	if !ok {
		a.write(w, http.StatusUnauthorized, "not signed in", nil)
		return
	}

	var req SwitchTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TenantID == "" {
		a.write(w, http.StatusBadRequest, "tenant_id is required", nil)
		return
	}

	_, err := a.resolver.SwitchActiveTenant(ctx, identity, req.TenantID)
	switch {
	case errors.Is(err, resolver.ErrNotAMember):
		a.write(w, http.StatusForbidden, err.Error(), nil)
		return
	case errors.Is(err, resolver.ErrTenantNotFound):
		a.write(w, http.StatusNotFound, err.Error(), nil)
		return
	case err != nil:
		a.logger.Errorf("failed to switch active tenant: %v", err)
		a.write(w, http.StatusInternalServerError, "failed to switch active tenant", nil)
		return
	}

	view := NewView(a.resolver.Resolve(ctx, identity), time.Now())

	a.write(w, http.StatusOK, view.Message, view)
}

func (a *API) write(w http.ResponseWriter, status int, message string, data interface{}) {
	if err := types.WriteJSON(w, status, message, data); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func NewAPI(r ResolverInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *API {
	return &API{
		resolver: r,
		tracer:   tracer,
		logger:   logger,
	}
}
