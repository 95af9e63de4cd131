// SPDX-License-Identifier: Apache-2.0

// Command ahbicht is the CLI entry point for parsing, expanding and
// evaluating AHB condition expressions against a fixture-backed logic
// bundle.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		slog.Error("ahbicht: command failed", "error", err)
		os.Exit(1)
	}
}
