// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package access

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/canonical/tenant-session/internal/http/types"
	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/storage"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
	"github.com/canonical/tenant-session/pkg/authentication"
)

type API struct {
	service ServiceInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v0/access-requests", a.submitRequest)
	mux.Post("/api/v0/tenants", a.setupTenant)

	mux.Route("/api/v0/admin", func(r chi.Router) {
		r.Use(a.requireSiteAdmin)

		r.Get("/access-requests", a.listRequests)
		r.Post("/access-requests/{email}/approve", a.approveRequest)
		r.Post("/access-requests/{email}/deny", a.denyRequest)
		r.Delete("/access-requests/{email}", a.purgeRequest)
		r.Post("/invites", a.createInvite)
	})
}

func (a *API) requireSiteAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := authentication.GetIdentity(r.Context())
		if !ok {
			a.write(w, http.StatusUnauthorized, "not signed in", nil)
			return
		}

		if !a.service.IsSiteAdmin(identity) {
			a.logger.Security().AuthzFailure(identity.ID, r.URL.Path)
			a.write(w, http.StatusForbidden, ErrForbidden.Error(), nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *API) submitRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.submitRequest")
	defer span.End()

	identity, ok := authentication.GetIdentity(ctx)
	if !ok {
		a.write(w, http.StatusUnauthorized, "not signed in", nil)
		return
	}

	req := new(SubmitRequest)
	if !a.decode(w, r, req) {
		return
	}

	created, err := a.service.SubmitRequest(ctx, identity, req)
	if err != nil {
		a.writeError(w, err, "failed to submit access request")
		return
	}

	a.write(w, http.StatusCreated, "access request submitted", created)
}

func (a *API) setupTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.setupTenant")
	defer span.End()

	identity, ok := authentication.GetIdentity(ctx)
	if !ok {
		a.write(w, http.StatusUnauthorized, "not signed in", nil)
		return
	}

	req := new(TenantRequest)
	if !a.decode(w, r, req) {
		return
	}

	tenant, err := a.service.SetupTenant(ctx, identity, req)
	if err != nil {
		a.writeError(w, err, "failed to set up tenant")
		return
	}

	a.write(w, http.StatusCreated, "tenant created", tenant)
}

func (a *API) listRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.listRequests")
	defer span.End()

	requests, err := a.service.ListRequests(ctx, types.RequestStatus(r.URL.Query().Get("status")))
	if err != nil {
		a.writeError(w, err, "failed to list access requests")
		return
	}

	a.write(w, http.StatusOK, "", requests)
}

func (a *API) approveRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.approveRequest")
	defer span.End()

	actor, _ := authentication.GetIdentity(ctx)

	approved, err := a.service.Approve(ctx, actor, chi.URLParam(r, "email"))
	if err != nil {
		a.writeError(w, err, "failed to approve access request")
		return
	}

	a.write(w, http.StatusOK, "access request approved", approved)
}

func (a *API) denyRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.denyRequest")
	defer span.End()

	actor, _ := authentication.GetIdentity(ctx)

	denied, err := a.service.Deny(ctx, actor, chi.URLParam(r, "email"))
	if err != nil {
		a.writeError(w, err, "failed to deny access request")
		return
	}

	a.write(w, http.StatusOK, "access request denied", denied)
}

func (a *API) purgeRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.purgeRequest")
	defer span.End()

	actor, _ := authentication.GetIdentity(ctx)

	if err := a.service.Purge(ctx, actor, chi.URLParam(r, "email")); err != nil {
		a.writeError(w, err, "failed to delete access request")
		return
	}

	a.write(w, http.StatusOK, "access request deleted", nil)
}

func (a *API) createInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "access.API.createInvite")
	defer span.End()

	actor, _ := authentication.GetIdentity(ctx)

	req := new(InviteRequest)
	if !a.decode(w, r, req) {
		return
	}

	invite, err := a.service.CreateInvite(ctx, actor, req)
	if err != nil {
		a.writeError(w, err, "failed to create invite")
		return
	}

	a.write(w, http.StatusCreated, "invite created", invite)
}

func (a *API) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.write(w, http.StatusBadRequest, "invalid request body", nil)
		return false
	}

	return true
}

func (a *API) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		a.write(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotApproved):
		a.write(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, storage.ErrNotFound):
		a.write(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, ErrRequestExists), errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrTenantExists):
		a.write(w, http.StatusConflict, err.Error(), nil)
	default:
		a.logger.Errorf("%s: %v", fallback, err)
		a.write(w, http.StatusInternalServerError, fallback, nil)
	}
}

func (a *API) write(w http.ResponseWriter, status int, message string, data interface{}) {
	if err := httptypes.WriteJSON(w, status, message, data); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		tracer:  tracer,
		logger:  logger,
	}
}
