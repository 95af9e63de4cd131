// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holomush/ahbicht/internal/ahb/ahbgrammar"
	"github.com/holomush/ahbicht/internal/ahb/tree"
)

func newParseCmd() *cobra.Command {
	var concise bool

	cmd := &cobra.Command{
		Use:   "parse <ahb-expression>",
		Short: "Parse an AHB expression into its requirement-indicator pairs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := ahbgrammar.Parse(args[0])
			if err != nil {
				return err
			}
			for _, pair := range pairs {
				if pair.Tree == nil {
					cmd.Printf("%s: (empty)\n", pair.Indicator)
					continue
				}
				var rendered string
				if concise {
					b, err := tree.MarshalConcise(pair.Tree)
					if err != nil {
						return fmt.Errorf("marshal concise: %w", err)
					}
					rendered = string(b)
				} else {
					b, err := tree.MarshalVerbose(pair.Tree)
					if err != nil {
						return fmt.Errorf("marshal verbose: %w", err)
					}
					rendered = string(b)
				}
				cmd.Printf("%s: %s\n", pair.Indicator, rendered)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&concise, "concise", false, "use the concise (one-way) serialization form")
	return cmd
}
