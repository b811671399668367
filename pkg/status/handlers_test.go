// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/tracing"
)

//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_status.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go

func TestAPI_Alive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mux := chi.NewMux()
	NewAPI(NewMockPingerInterface(ctrl), tracing.NewNoopTracer(), NewMockMonitorInterface(ctrl), logging.NewNoopLogger()).RegisterEndpoints(mux)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/status", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Data Status `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Data.Status != "ok" {
		t.Errorf("expected ok, got %q", resp.Data.Status)
	}
}

func TestAPI_Ready(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		availability   float64
		expectedStatus int
	}{
		{name: "database reachable", availability: 1, expectedStatus: http.StatusOK},
		{name: "database down", pingErr: errors.New("connection refused"), availability: 0, expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := NewMockPingerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			mockDB.EXPECT().Ping(gomock.Any()).Return(tt.pingErr)
			mockMonitor.EXPECT().SetDependencyAvailability(map[string]string{"component": "database"}, tt.availability).Return(nil)

			mux := chi.NewMux()
			NewAPI(mockDB, tracing.NewNoopTracer(), mockMonitor, logging.NewNoopLogger()).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/ready", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
