// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	KratosPublicURL string `envconfig:"kratos_public_url"`
	KratosAdminURL  string `envconfig:"kratos_admin_url"`

	// WebhookAPIKey is the value Kratos sends in the Authorization header of
	// its web hooks. Hooks are refused while it is empty.
	WebhookAPIKey string `envconfig:"webhook_api_key"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// SiteAdmins is the allow-list of site administrator emails, consulted
	// before any directory lookup.
	SiteAdmins        []string `envconfig:"site_admins"`
	DefaultMemberRole string   `envconfig:"default_member_role" default:"member"`

	TrialLength time.Duration `envconfig:"trial_length" default:"336h"`

	AuthenticationEnabled     bool     `envconfig:"authentication_enabled" default:"false"`
	AuthenticationIssuer      string   `envconfig:"authentication_issuer"`
	AuthenticationJwksURL     string   `envconfig:"authentication_jwks_url"`
	AuthenticationAllowedAuds []string `envconfig:"authentication_allowed_audiences"`
}
