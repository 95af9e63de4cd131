// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/holomush/ahbicht/internal/ahb/condition"
	"github.com/holomush/ahbicht/internal/ahb/keyeval"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
)

func newKeysCmd() *cobra.Command {
	var fixturePath string

	cmd := &cobra.Command{
		Use:   "keys <condition-expression>",
		Short: "Pre-compute every requirement-constraint key a condition expression references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := loadFixture(fixturePath)
			if err != nil {
				return err
			}
			bundle := buildBundle(fx).Logic()

			n, err := condition.Parse(args[0])
			if err != nil {
				return err
			}

			runID := ulid.Make().String()
			ec := ahbsdk.EvaluationContext{RunID: runID}
			data := ahbsdk.EvaluatableData{EnteredText: fx.EnteredText, Fields: fx.Fields}

			results, err := keyeval.Evaluate(cmd.Context(), runID, n, bundle.Rc, data, ec)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal results: %w", err)
			}
			cmd.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&fixturePath, "fixture", "", "path to a YAML fixture seeding the logic bundle")
	return cmd
}
