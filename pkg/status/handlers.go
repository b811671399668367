// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/tenant-session/internal/http/types"
	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
	"github.com/canonical/tenant-session/internal/tracing"
	"github.com/canonical/tenant-session/internal/version"
)

const readinessTimeout = 2 * time.Second

type Status struct {
	Status    string     `json:"status"`
	BuildInfo *BuildInfo `json:"buildInfo,omitempty"`
}

type BuildInfo struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	Name       string `json:"name"`
}

type API struct {
	db PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/ready", a.ready)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	a.write(w, http.StatusOK, Status{Status: "ok", BuildInfo: buildInfo()})
}

// ready reports 503 while the directory is unreachable, the session state
// of every caller depends on it.
func (a *API) ready(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.ready")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	tags := map[string]string{"component": "database"}

	if err := a.db.Ping(ctx); err != nil {
		a.logger.Errorf("database not reachable: %v", err)
		_ = a.monitor.SetDependencyAvailability(tags, 0)
		a.write(w, http.StatusServiceUnavailable, Status{Status: "unavailable"})
		return
	}

	_ = a.monitor.SetDependencyAvailability(tags, 1)
	a.write(w, http.StatusOK, Status{Status: "ok"})
}

func (a *API) write(w http.ResponseWriter, status int, s Status) {
	if err := types.WriteJSON(w, status, s.Status, s); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}

func buildInfo() *BuildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	b := new(BuildInfo)
	b.Version = version.Version
	b.Name = info.Main.Path

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			b.CommitHash = setting.Value
		}
	}

	return b
}

func NewAPI(db PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.db = db

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
