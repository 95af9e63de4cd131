// SPDX-License-Identifier: Apache-2.0

// Command gen-ahb-schema generates the JSON Schema files for every
// authoritative evaluation-result type.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/holomush/ahbicht/internal/ahb/ahbjson"
)

// schemaFile pairs an output filename with the generator that produces
// its contents.
type schemaFile struct {
	name     string
	generate func() ([]byte, error)
}

func main() {
	files := []schemaFile{
		{"ahb-expression-evaluation-result.schema.json", ahbjson.GenerateAhbExpressionSchema},
		{"requirement-constraint-evaluation-result.schema.json", ahbjson.GenerateRequirementConstraintSchema},
		{"format-constraint-evaluation-result.schema.json", ahbjson.GenerateFormatConstraintSchema},
		{"evaluated-format-constraint.schema.json", ahbjson.GenerateEvaluatedFormatConstraintSchema},
		{"content-evaluation-result.schema.json", ahbjson.GenerateContentEvaluationResultSchema},
	}

	outDir := "schemas"
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	for _, f := range files {
		schema, err := f.generate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", f.name, err)
			os.Exit(1)
		}

		outPath := filepath.Join(outDir, f.name)
		if err := os.WriteFile(outPath, schema, 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated %s\n", outPath)
	}
}
