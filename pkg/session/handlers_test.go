// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
	"github.com/canonical/tenant-session/pkg/authentication"
	"github.com/canonical/tenant-session/pkg/resolver"
)

type viewResponse struct {
	Data    View   `json:"data"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func TestAPI_GetSession(t *testing.T) {
	coach := &types.Identity{ID: "u1", Email: "coach@school.com"}
	tenant := &types.Tenant{ID: "t1", Name: "Eagles", MemberList: []string{"coach@school.com"}}

	tests := []struct {
		name          string
		identity      *types.Identity
		setupMocks    func(*MockResolverInterface)
		expectedState resolver.State
		expectedMsg   string
	}{
		{
			name:          "anonymous caller",
			setupMocks:    func(*MockResolverInterface) {},
			expectedState: resolver.StateUnauthenticated,
		},
		{
			name:     "ready caller",
			identity: coach,
			setupMocks: func(r *MockResolverInterface) {
				r.EXPECT().Resolve(gomock.Any(), coach).Return(&resolver.Result{Identity: coach, State: resolver.StateReady, Tenant: tenant})
			},
			expectedState: resolver.StateReady,
		},
		{
			name:     "resolution error carries its cause",
			identity: coach,
			setupMocks: func(r *MockResolverInterface) {
				r.EXPECT().Resolve(gomock.Any(), coach).Return(&resolver.Result{
					Identity: coach,
					State:    resolver.StateResolutionError,
					Err:      &resolver.LookupError{Lookup: "access_request", Err: errors.New("connection refused")},
				})
			},
			expectedState: resolver.StateResolutionError,
			expectedMsg:   "access_request lookup failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockResolver := NewMockResolverInterface(ctrl)
			tt.setupMocks(mockResolver)

			mux := chi.NewMux()
			NewAPI(mockResolver, tracing.NewNoopTracer(), logging.NewNoopLogger()).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/session", nil)
			if tt.identity != nil {
				req = req.WithContext(authentication.WithIdentity(req.Context(), tt.identity))
			}
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rr.Code)
			}

			var resp viewResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if resp.Data.State != tt.expectedState {
				t.Errorf("expected state %s, got %s", tt.expectedState, resp.Data.State)
			}

			if resp.Message != tt.expectedMsg {
				t.Errorf("expected message %q, got %q", tt.expectedMsg, resp.Message)
			}
		})
	}
}

func TestAPI_SwitchActiveTenant(t *testing.T) {
	coach := &types.Identity{ID: "u1", Email: "coach@school.com"}
	tenant := &types.Tenant{ID: "t2", Name: "Hawks"}

	tests := []struct {
		name           string
		identity       *types.Identity
		body           string
		setupMocks     func(*MockResolverInterface)
		expectedStatus int
	}{
		{
			name:           "anonymous caller",
			body:           `{"tenant_id":"t2"}`,
			setupMocks:     func(*MockResolverInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing tenant id",
			identity:       coach,
			body:           `{}`,
			setupMocks:     func(*MockResolverInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:     "not a member",
			identity: coach,
			body:     `{"tenant_id":"t3"}`,
			setupMocks: func(r *MockResolverInterface) {
				r.EXPECT().SwitchActiveTenant(gomock.Any(), coach, "t3").Return(nil, resolver.ErrNotAMember)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:     "unknown tenant",
			identity: coach,
			body:     `{"tenant_id":"nope"}`,
			setupMocks: func(r *MockResolverInterface) {
				r.EXPECT().SwitchActiveTenant(gomock.Any(), coach, "nope").Return(nil, resolver.ErrTenantNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:     "switched",
			identity: coach,
			body:     `{"tenant_id":"t2"}`,
			setupMocks: func(r *MockResolverInterface) {
				r.EXPECT().SwitchActiveTenant(gomock.Any(), coach, "t2").Return(tenant, nil)
				r.EXPECT().Resolve(gomock.Any(), coach).Return(&resolver.Result{Identity: coach, State: resolver.StateReady, Tenant: tenant})
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockResolver := NewMockResolverInterface(ctrl)
			tt.setupMocks(mockResolver)

			mux := chi.NewMux()
			NewAPI(mockResolver, tracing.NewNoopTracer(), logging.NewNoopLogger()).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPut, "/api/v0/session/active-tenant", bytes.NewBufferString(tt.body))
			if tt.identity != nil {
				req = req.WithContext(authentication.WithIdentity(req.Context(), tt.identity))
			}
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
		})
	}
}
