// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/holomush/ahbicht/internal/ahb/ahbeval"
	"github.com/holomush/ahbicht/internal/ahb/ahbjson"
	"github.com/holomush/ahbicht/internal/ahbmetrics"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
)

func newEvaluateCmd() *cobra.Command {
	var fixturePath string
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "evaluate <ahb-expression>",
		Short: "Evaluate an AHB expression end to end against a fixture-backed logic bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := loadFixture(fixturePath)
			if err != nil {
				return err
			}
			bundle := buildBundle(fx).Logic()

			runID := ulid.Make().String()
			ec := ahbsdk.EvaluationContext{RunID: runID}
			data := ahbsdk.EvaluatableData{EnteredText: fx.EnteredText, Fields: fx.Fields}
			if err := ahbjson.ValidateEvaluatableData(data); err != nil {
				return fmt.Errorf("validate seed: %w", err)
			}

			var metrics *ahbmetrics.Metrics
			if metricsAddr != "" {
				srv := ahbmetrics.NewServer(metricsAddr, nil)
				if err := srv.Start(); err != nil {
					return fmt.Errorf("start metrics server: %w", err)
				}
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Stop(ctx)
				}()
				metrics = srv.Metrics()
			}

			start := time.Now()
			res, err := ahbeval.Evaluate(cmd.Context(), runID, args[0], bundle, ec, data)
			if metrics != nil {
				outcome := "false"
				if err == nil && res.RCResult.Fulfilled {
					outcome = "true"
				}
				metrics.EvaluationsTotal.WithLabelValues(outcome).Inc()
				metrics.EvaluationDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
			}
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal result: %w", err)
			}
			cmd.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&fixturePath, "fixture", "", "path to a YAML fixture seeding the logic bundle")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address for the duration of the run")
	return cmd
}
