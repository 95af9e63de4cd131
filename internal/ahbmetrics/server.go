// SPDX-License-Identifier: Apache-2.0

// Package ahbmetrics provides HTTP endpoints for metrics and health checks
// around the AHB expression engine.
package ahbmetrics

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker returns whether the process is ready to accept evaluation requests.
type ReadinessChecker func() bool

// Metrics contains the Prometheus metrics emitted by the evaluation pipeline.
type Metrics struct {
	ExpressionsParsedTotal *prometheus.CounterVec
	PackageExpansionsTotal prometheus.Counter
	EvaluationsTotal       *prometheus.CounterVec
	EvaluationDuration     *prometheus.HistogramVec
}

// NewMetrics creates and registers the engine's Prometheus metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ExpressionsParsedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ahbicht_expressions_parsed_total",
				Help: "Total number of AHB or condition expressions parsed, by grammar.",
			},
			[]string{"grammar"},
		),
		PackageExpansionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ahbicht_package_expansions_total",
				Help: "Total number of package-key substitutions performed by the expander.",
			},
		),
		EvaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ahbicht_evaluations_total",
				Help: "Total number of AHB expression evaluations, by outcome.",
			},
			[]string{"fulfilled"},
		),
		EvaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ahbicht_evaluation_duration_seconds",
				Help:    "Duration of a full AHB expression evaluation run.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"fulfilled"},
		),
	}

	reg.MustRegister(m.ExpressionsParsedTotal)
	reg.MustRegister(m.PackageExpansionsTotal)
	reg.MustRegister(m.EvaluationsTotal)
	reg.MustRegister(m.EvaluationDuration)

	return m
}

// Server provides HTTP endpoints for observability (metrics and health probes).
type Server struct {
	addr       string
	listener   net.Listener
	httpServer *http.Server
	registry   *prometheus.Registry
	metrics    *Metrics
	isReady    ReadinessChecker
	running    atomic.Bool
}

// NewServer creates a new metrics/health server.
func NewServer(addr string, readinessChecker ReadinessChecker) *Server {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	metrics := NewMetrics(registry)

	return &Server{
		addr:     addr,
		registry: registry,
		metrics:  metrics,
		isReady:  readinessChecker,
	}
}

// Metrics returns the engine metrics for recording evaluation events.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start begins serving the metrics and health endpoints.
func (s *Server) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("metrics server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener

	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))

	mux.HandleFunc("/healthz/liveness", s.handleLiveness)
	mux.HandleFunc("/healthz/readiness", s.handleReadiness)

	s.httpServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if serveErr := s.httpServer.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("metrics server error", "error", serveErr)
		}
	}()

	slog.Info("metrics server started", "addr", listener.Addr().String())
	return nil
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown metrics server: %w", err)
		}
	}

	s.running.Store(false)
	slog.Info("metrics server stopped")
	return nil
}

// Addr returns the address the server is listening on, or "" if not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if s.isReady == nil || s.isReady() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
		return
	}

	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready\n"))
}
