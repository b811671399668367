// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/tenant-session/internal/logging"
)

// APIKeyHeader carries the shared key configured on the Kratos web hook
// (auth type api_key, in header).
const APIKeyHeader = "Authorization"

type API struct {
	service ServiceInterface
	apiKey  string
	logger  logging.LoggerInterface
}

// NewAPI refuses every hook call when apiKey is empty.
func NewAPI(service ServiceInterface, apiKey string, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		apiKey:  apiKey,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.With(a.requireAPIKey).Post("/webhooks/registration", a.registration)
}

func (a *API) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(APIKeyHeader)
		if a.apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(a.apiKey)) != 1 {
			a.logger.Security().AuthzFailure("webhook", r.URL.Path)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *API) registration(w http.ResponseWriter, r *http.Request) {
	var identity KratosIdentity
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		a.logger.Errorf("failed to decode registration webhook: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := a.service.HandleRegistration(r.Context(), &identity); err != nil {
		a.logger.Errorf("failed to handle registration: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
