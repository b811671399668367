// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-session/internal/kratos"
)

//go:generate mockgen -build_flags=--mod=mod -package cmd -destination ./mock_kratos.go -source=../internal/kratos/interfaces.go

func TestActorIdentity(t *testing.T) {
	tests := []struct {
		name       string
		withKratos bool
		setupMocks func(*MockAdminClientInterface)
		expectedID string
		expectErr  bool
	}{
		{
			name:       "without kratos",
			expectedID: "cli:admin@dofo.app",
		},
		{
			name:       "kratos identity",
			withKratos: true,
			setupMocks: func(m *MockAdminClientInterface) {
				m.EXPECT().GetIdentityIDByEmail(gomock.Any(), "Admin@dofo.app").Return("3f1c2d", nil)
			},
			expectedID: "3f1c2d",
		},
		{
			name:       "no kratos account",
			withKratos: true,
			setupMocks: func(m *MockAdminClientInterface) {
				m.EXPECT().GetIdentityIDByEmail(gomock.Any(), gomock.Any()).Return("", kratos.ErrIdentityNotFound)
			},
			expectErr: true,
		},
		{
			name:       "kratos unreachable",
			withKratos: true,
			setupMocks: func(m *MockAdminClientInterface) {
				m.EXPECT().GetIdentityIDByEmail(gomock.Any(), gomock.Any()).Return("", errors.New("connection refused"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var client kratos.AdminClientInterface
			if tt.withKratos {
				mockClient := NewMockAdminClientInterface(ctrl)
				tt.setupMocks(mockClient)
				client = mockClient
			}

			actor, err := actorIdentity(context.Background(), client, "Admin@dofo.app")

			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected an error, got actor %+v", actor)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if actor.ID != tt.expectedID {
				t.Errorf("expected id %q, got %q", tt.expectedID, actor.ID)
			}

			if actor.Email != "Admin@dofo.app" {
				t.Errorf("expected the email to be kept, got %q", actor.Email)
			}
		})
	}
}
