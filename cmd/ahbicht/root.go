// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/ahbicht/internal/logging"
)

// version is the CLI's self-reported version, stamped into every log
// line via internal/logging.
const version = "dev"

// Global flags available to all subcommands.
var (
	configFile string
	logFormat  string
)

// NewRootCmd creates the root command for the ahbicht CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ahbicht",
		Short: "ahbicht - condition-expression engine for German energy-market AHBs",
		Long: `ahbicht parses, expands and evaluates Application Handbook (AHB)
condition expressions against a pluggable content-evaluator backend.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetDefault("ahbicht", version, logFormat)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log output format: json or text")

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newExpandCmd())
	cmd.AddCommand(newEvaluateCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newKeysCmd())

	return cmd
}
