// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/tracing"
)

func TestAdminClient_GetIdentityIDByEmail(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectedID  string
		expectedErr error
	}{
		{
			name:       "found",
			body:       `[{"id":"3f1c2d","schema_id":"default","schema_url":"http://kratos/schemas/default","traits":{"email":"coach@school.com"}}]`,
			expectedID: "3f1c2d",
		},
		{
			name:        "no identity",
			body:        `[]`,
			expectedErr: ErrIdentityNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var identifier string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				identifier = r.URL.Query().Get("credentials_identifier")
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			logger := logging.NewNoopLogger()
			c := NewAdminClient(srv.URL, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)

			id, err := c.GetIdentityIDByEmail(context.Background(), " Coach@School.com ")

			if identifier != "coach@school.com" {
				t.Errorf("expected a normalized identifier, got %q", identifier)
			}

			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}

			if id != tt.expectedID {
				t.Errorf("expected id %q, got %q", tt.expectedID, id)
			}
		})
	}
}
