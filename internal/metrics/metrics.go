// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package metrics instruments tool calls on both surfaces with Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tfctl/awsmcp/internal/log"
)

const namespace = "awsmcp"

// Surface labels tell the two tool registries apart.
const (
	SurfaceServer  = "server"
	SurfaceToolkit = "toolkit"
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the tool call collectors and the registry they live in. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry          *prometheus.Registry
	lastCallTimestamp prometheus.Gauge
	callsTotal        callCounter
	callDuration      *prometheus.HistogramVec
}

// New builds the collectors and registers them, together with the Go and
// process collectors, on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lastCallTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_call_timestamp_seconds",
				Help:      "Timestamp of the most recent tool call",
			},
		),
		callsTotal: callCounter{prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Number of tool calls by tool, surface and outcome",
			},
			[]string{"tool", "surface", "outcome"},
		)},
		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_call_duration_seconds",
				Help:      "Tool call latency including the AWS round trip",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool", "surface"},
		),
	}

	m.registry.MustRegister(
		m.lastCallTimestamp,
		m.callsTotal,
		m.callDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

type callCounter struct {
	*prometheus.CounterVec
}

func (c callCounter) ok(tool, surface string) {
	c.WithLabelValues(tool, surface, OutcomeOK).Inc()
}

func (c callCounter) failed(tool, surface string) {
	c.WithLabelValues(tool, surface, OutcomeError).Inc()
}

// Observe records one finished call that began at started.
func (m *Metrics) Observe(surface, tool string, started time.Time, failed bool) {
	if m == nil {
		return
	}
	if failed {
		m.callsTotal.failed(tool, surface)
	} else {
		m.callsTotal.ok(tool, surface)
	}
	m.callDuration.WithLabelValues(tool, surface).Observe(time.Since(started).Seconds())
	m.lastCallTimestamp.SetToCurrentTime()
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on address until ctx is done.
func (m *Metrics) Serve(ctx context.Context, address string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("metrics listening: address=%s", address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
