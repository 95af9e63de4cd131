// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"github.com/holomush/ahbicht/internal/ahb/ahbgrammar"
	"github.com/holomush/ahbicht/internal/ahb/expand"
	"github.com/holomush/ahbicht/internal/ahb/tree"
)

func newExpandCmd() *cobra.Command {
	var fixturePath string

	cmd := &cobra.Command{
		Use:   "expand <ahb-expression>",
		Short: "Parse an AHB expression and expand its package references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := loadFixture(fixturePath)
			if err != nil {
				return err
			}
			bundle := buildBundle(fx).Logic()

			pairs, err := ahbgrammar.Parse(args[0])
			if err != nil {
				return err
			}

			runID := ulid.Make().String()
			for _, pair := range pairs {
				if pair.Tree == nil {
					cmd.Printf("%s: (empty)\n", pair.Indicator)
					continue
				}
				expanded, err := expand.Expand(cmd.Context(), runID, pair.Tree, bundle.Packages)
				if err != nil {
					return err
				}
				b, err := tree.MarshalVerbose(expanded)
				if err != nil {
					return fmt.Errorf("marshal verbose: %w", err)
				}
				cmd.Printf("%s: %s\n", pair.Indicator, string(b))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fixturePath, "fixture", "", "path to a YAML fixture seeding package expansions")
	return cmd
}
