// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/types"
	"github.com/canonical/tenant-session/pkg/authentication"
)

//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_kratos.go -source=../kratos/interfaces.go

func TestMiddleware_HTTPMiddleware(t *testing.T) {
	coach := &types.Identity{ID: "user-1", Email: "coach@example.com"}

	tests := []struct {
		name           string
		header         string
		setupMocks     func(*MockAdminClientInterface)
		expectedStatus int
		expectedID     string
	}{
		{
			name:           "no header passes through",
			setupMocks:     func(*MockAdminClientInterface) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "known identity",
			header: "user-1",
			setupMocks: func(k *MockAdminClientInterface) {
				k.EXPECT().GetIdentity(gomock.Any(), "user-1").Return(coach, nil)
			},
			expectedStatus: http.StatusOK,
			expectedID:     "user-1",
		},
		{
			name:   "unknown identity",
			header: "ghost",
			setupMocks: func(k *MockAdminClientInterface) {
				k.EXPECT().GetIdentity(gomock.Any(), "ghost").Return(nil, errors.New("identity not found"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockKratos := NewMockAdminClientInterface(ctrl)
			tt.setupMocks(mockKratos)

			logger := logging.NewNoopLogger()
			m := NewMiddleware(mockKratos, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)

			var seenID string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if identity, ok := authentication.GetIdentity(r.Context()); ok {
					seenID = identity.ID
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v0/session", nil)
			if tt.header != "" {
				req.Header.Set(HeaderName, tt.header)
			}
			rr := httptest.NewRecorder()

			m.HTTPMiddleware(handler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rr.Code)
			}

			if seenID != tt.expectedID {
				t.Errorf("expected identity %q in context, got %q", tt.expectedID, seenID)
			}
		})
	}
}
