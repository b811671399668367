// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kelseyhightower/envconfig"

	"github.com/canonical/tenant-session/internal/config"
	"github.com/canonical/tenant-session/internal/db"
	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/storage"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/pkg/resolver"
)

// directory bundles what the operator commands need to talk to Postgres
// without starting the HTTP server.
type directory struct {
	specs   *config.EnvSpec
	client  *db.DBClient
	storage *storage.Storage
	admins  *resolver.AdminList

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (d *directory) Close() {
	d.client.Close()
	_ = d.logger.Sync()
}

func (d *directory) resolver() *resolver.Resolver {
	return resolver.NewResolver(d.storage, d.admins, d.specs.DefaultMemberRole, d.tracer, d.monitor, d.logger)
}

func loadSpecs() (*config.EnvSpec, error) {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return nil, fmt.Errorf("issues with environment sourcing: %w", err)
	}

	return specs, nil
}

func dbConfig(specs *config.EnvSpec) db.Config {
	return db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
}

func openDirectory() (*directory, error) {
	specs, err := loadSpecs()
	if err != nil {
		return nil, err
	}

	d := new(directory)
	d.specs = specs
	d.logger = logging.NewLogger(specs.LogLevel)
	d.monitor = monitoring.NewNoopMonitor("tenant-session-cli", d.logger)
	d.tracer = tracing.NewNoopTracer()
	d.admins = resolver.NewAdminList(specs.SiteAdmins...)

	d.client, err = db.NewDBClient(dbConfig(specs), d.tracer, d.monitor, d.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database client: %w", err)
	}

	d.storage = storage.NewStorage(d.client, d.tracer, d.monitor, d.logger)

	return d, nil
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
