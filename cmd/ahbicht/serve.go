// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/holomush/ahbicht/internal/ahb/ahbeval"
	"github.com/holomush/ahbicht/internal/ahb/ahbjson"
	"github.com/holomush/ahbicht/internal/ahb/registry"
	"github.com/holomush/ahbicht/internal/ahbconfig"
	"github.com/holomush/ahbicht/internal/ahbmetrics"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
)

// evaluateRequest is the body a client POSTs to /evaluate.
type evaluateRequest struct {
	Format     string         `json:"format"`
	Version    string         `json:"version"`
	Expression string         `json:"expression"`
	EnteredText string        `json:"entered_text"`
	Fields      map[string]any `json:"fields"`
}

func newServeCmd() *cobra.Command {
	var fixtureDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Register the configured (format, version) pairs and serve evaluation requests over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, fixtureDir)
		},
	}

	cmd.Flags().StringVar(&fixtureDir, "fixture-dir", "", "directory of <format>-<version>.yaml fixtures, one per served pair")
	return cmd
}

func runServe(cmd *cobra.Command, fixtureDir string) error {
	cfg, err := ahbconfig.Load(configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	reg := registry.New()
	for _, pair := range cfg.Served {
		fx, err := loadFixture(fixturePathFor(fixtureDir, pair))
		if err != nil {
			return fmt.Errorf("load fixture for %s %s: %w", pair.Format, pair.Version, err)
		}
		bundle := buildBundle(fx)
		if err := reg.Register(pair.Format, pair.Version, bundle.Logic()); err != nil {
			return fmt.Errorf("register %s %s: %w", pair.Format, pair.Version, err)
		}
	}
	cmd.Printf("serving pairs: %v\n", reg.Pairs())

	metricsSrv := ahbmetrics.NewServer(cfg.MetricsAddr, func() bool { return true })
	if err := metricsSrv.Start(); err != nil {
		return fmt.Errorf("start metrics server: %w", err)
	}
	metrics := metricsSrv.Metrics()

	mux := http.NewServeMux()
	mux.HandleFunc("/evaluate", evaluateHandler(reg, metrics))
	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		cmd.Printf("evaluation API listening on %s\n", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(shutdownCtx)
	return metricsSrv.Stop(shutdownCtx)
}

func fixturePathFor(dir string, pair ahbconfig.ServedPair) string {
	if dir == "" {
		return ""
	}
	return dir + "/" + pair.Format + "-" + pair.Version + ".yaml"
}

func evaluateHandler(reg *registry.Registry, metrics *ahbmetrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		bundle, ok := reg.Lookup(req.Format, req.Version)
		if !ok {
			http.Error(w, fmt.Sprintf("no logic bundle registered for %s %s", req.Format, req.Version), http.StatusNotFound)
			return
		}

		runID := ulid.Make().String()
		ec := ahbsdk.EvaluationContext{RunID: runID}
		data := ahbsdk.EvaluatableData{EnteredText: req.EnteredText, Fields: req.Fields}
		if err := ahbjson.ValidateEvaluatableData(data); err != nil {
			http.Error(w, fmt.Sprintf("invalid seed: %v", err), http.StatusBadRequest)
			return
		}

		metrics.ExpressionsParsedTotal.WithLabelValues("ahbgrammar").Inc()
		start := time.Now()
		res, err := ahbeval.Evaluate(r.Context(), runID, req.Expression, bundle, ec, data)
		outcome := "false"
		if err == nil && res.RCResult.Fulfilled {
			outcome = "true"
		}
		metrics.EvaluationsTotal.WithLabelValues(outcome).Inc()
		metrics.EvaluationDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}
}
