// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/canonical/tenant-session/internal/logging"
	"github.com/canonical/tenant-session/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime       *prometheus.HistogramVec
	dependencies       *prometheus.GaugeVec
	resolutionOutcomes *prometheus.CounterVec

	logger logging.LoggerInterface
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, value float64) error {
	if m.responseTime == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.responseTime.With(tags).Observe(value)

	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, value float64) error {
	if m.dependencies == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.dependencies.With(tags).Set(value)

	return nil
}

func (m *Monitor) IncResolutionOutcome(tags map[string]string) error {
	if m.resolutionOutcomes == nil {
		return fmt.Errorf("metric not instantiated")
	}

	m.resolutionOutcomes.With(tags).Inc()

	return nil
}

func (m *Monitor) registerHistograms() {
	m.responseTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "http_response_time_seconds",
			Help:        "http_response_time_seconds",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"route", "status"},
	)

	m.registerCollector(m.responseTime)
}

func (m *Monitor) registerGauges() {
	m.dependencies = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name:        "dependency_available",
			Help:        "dependency_available",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"component"},
	)

	m.registerCollector(m.dependencies)
}

func (m *Monitor) registerCounters() {
	m.resolutionOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "session_resolution_outcomes_total",
			Help:        "number of session resolutions by resulting state",
			ConstLabels: prometheus.Labels{"service": m.service},
		},
		[]string{"state"},
	)

	m.registerCollector(m.resolutionOutcomes)
}

func (m *Monitor) registerCollector(c prometheus.Collector) {
	if err := prometheus.Register(c); err != nil {
		m.logger.Errorf("failed to register metric: %v", err)
	}
}

// NewMonitor creates a new Monitor object and registers its collectors on the
// default prometheus registry.
func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.registerHistograms()
	m.registerGauges()
	m.registerCounters()

	return m
}
