// Copyright 2025 Canonical Ltd
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-session/internal/db"
	"github.com/canonical/tenant-session/internal/identity"
	"github.com/canonical/tenant-session/internal/kratos"
	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/storage"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
	"github.com/canonical/tenant-session/pkg/access"
	"github.com/canonical/tenant-session/pkg/authentication"
	"github.com/canonical/tenant-session/pkg/resolver"
	"github.com/canonical/tenant-session/pkg/webhooks"
)

type fakeDB struct{}

func (fakeDB) Statement(context.Context) sq.StatementBuilderType { return sq.StatementBuilder }
func (fakeDB) TxStatement(context.Context) (db.TxInterface, sq.StatementBuilderType, error) {
	return nil, sq.StatementBuilder, nil
}
func (fakeDB) Ping(context.Context) error { return nil }
func (fakeDB) Close()                     {}

//go:generate mockgen -build_flags=--mod=mod -package web -destination ./mock_kratos.go -source=../../internal/kratos/interfaces.go

const testWebhookKey = "kratos-hook-key"

func newTestRouter(t *testing.T, authn *authentication.Middleware, kratosClient kratos.AdminClientInterface) (http.Handler, *storage.MemoryStorage) {
	t.Helper()

	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test", logger)

	store := storage.NewMemoryStorage()
	admins := resolver.NewAdminList("admin@dofo.app")
	r := resolver.NewResolver(store, admins, "member", tracer, monitor, logger)
	accessService := access.NewService(store, admins, 0, tracer, monitor, logger)
	webhookService := webhooks.NewService(store, accessService, tracer, monitor, logger)

	router := NewRouter(
		r,
		accessService,
		webhookService,
		testWebhookKey,
		identity.NewMiddleware(kratosClient, tracer, monitor, logger),
		authn,
		fakeDB{},
		tracer,
		monitor,
		logger,
	)

	return router, store
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, nil, nil)

	for _, path := range []string{"/api/v0/status", "/api/v0/ready", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: expected status %d, got %d", path, http.StatusOK, w.Code)
		}
	}
}

func TestRouter_SignUpToAwaitingApproval(t *testing.T) {
	router, _ := newTestRouter(t, authentication.NewMiddleware(authentication.NewNoopVerifier(), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logging.NewNoopLogger()), logging.NewNoopLogger()), nil)

	body := `{"id":"u1","traits":{"email":"coach@school.com","tenant_name":"Eagles"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/registration", strings.NewReader(body))
	req.Header.Set(webhooks.APIKeyHeader, testWebhookKey)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected registration webhook to succeed, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v0/session", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d without a token, got %d", http.StatusUnauthorized, w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v0/session", nil)
	req.Header.Set("Authorization", "Bearer u1:coach@school.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Data struct {
			State resolver.State `json:"state"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Data.State != resolver.StateAwaitingApproval {
		t.Errorf("expected %q, got %q", resolver.StateAwaitingApproval, resp.Data.State)
	}
}

func TestRouter_AnonymousSession(t *testing.T) {
	router, _ := newTestRouter(t, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Data struct {
			State resolver.State `json:"state"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Data.State != resolver.StateUnauthenticated {
		t.Errorf("expected %q, got %q", resolver.StateUnauthenticated, resp.Data.State)
	}
}

func TestRouter_AdminRequiresSiteAdmin(t *testing.T) {
	router, store := newTestRouter(t, authentication.NewMiddleware(authentication.NewNoopVerifier(), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logging.NewNoopLogger()), logging.NewNoopLogger()), nil)

	if _, err := store.SubmitAccessRequest(context.Background(), &types.AccessRequest{Email: "coach@school.com"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tests := []struct {
		token          string
		expectedStatus int
	}{
		{token: "u1:coach@school.com", expectedStatus: http.StatusForbidden},
		{token: "a1:admin@dofo.app", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/v0/admin/access-requests/coach@school.com/approve", nil)
		req.Header.Set("Authorization", "Bearer "+tt.token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != tt.expectedStatus {
			t.Errorf("%s: expected %d, got %d", tt.token, tt.expectedStatus, w.Code)
		}
	}
}

func TestRouter_AuthenticationIgnoresGatewayHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := logging.NewNoopLogger()
	authn := authentication.NewMiddleware(authentication.NewNoopVerifier(), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)

	mockKratos := NewMockAdminClientInterface(ctrl)
	mockKratos.EXPECT().GetIdentity(gomock.Any(), gomock.Any()).Return(&types.Identity{ID: "admin-id", Email: "admin@dofo.app"}, nil).AnyTimes()

	router, _ := newTestRouter(t, authn, mockKratos)

	tests := []struct {
		name           string
		path           string
		token          string
		expectedStatus int
	}{
		{name: "admin route with header only", path: "/api/v0/admin/access-requests", expectedStatus: http.StatusUnauthorized},
		{name: "session with header only", path: "/api/v0/session", expectedStatus: http.StatusUnauthorized},
		{name: "token identity wins over header", path: "/api/v0/admin/access-requests", token: "u1:coach@school.com", expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set(identity.HeaderName, "admin-id")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestRouter_GatewayHeaderWithoutAuthentication(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockKratos := NewMockAdminClientInterface(ctrl)
	mockKratos.EXPECT().GetIdentity(gomock.Any(), "admin-id").Return(&types.Identity{ID: "admin-id", Email: "admin@dofo.app"}, nil)

	router, _ := newTestRouter(t, nil, mockKratos)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/admin/access-requests", nil)
	req.Header.Set(identity.HeaderName, "admin-id")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected %d, got %d", http.StatusOK, w.Code)
	}
}

func TestRouter_RegistrationWebhookRequiresKey(t *testing.T) {
	router, store := newTestRouter(t, nil, nil)

	body := `{"id":"u1","traits":{"email":"victim@school.com","tenant_name":"Eagles"}}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/registration", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d without the hook key, got %d", http.StatusUnauthorized, w.Code)
	}

	if _, err := store.GetAccessRequest(context.Background(), "victim@school.com"); err == nil {
		t.Errorf("expected no access request to be filed")
	}
}
