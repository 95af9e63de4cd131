// SPDX-License-Identifier: Apache-2.0

// Package ahbjson generates the JSON Schemas for the evaluation-result
// types spec §6 calls authoritative, and validates an incoming
// evaluation seed against its schema before a run starts — the same way
// internal/plugin/schema.go reflects and compiles a manifest schema:
// invopop/jsonschema reflects a Go struct into a schema document, and
// santhosh-tekuri/jsonschema/v6 compiles it once (sync.Once) for repeat
// validation.
package ahbjson

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/holomush/ahbicht/internal/ahb/ahberr"
	"github.com/holomush/ahbicht/internal/ahb/result"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
)

// schemaBaseURL prefixes every generated schema's $id.
const schemaBaseURL = "https://ahbicht.holomush.dev/schema/"

// generate reflects v into a named, titled JSON Schema document.
func generate(v any, name, title, description string) ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(v)
	schema.ID = jsonschema.ID(schemaBaseURL + name + ".json")
	schema.Title = title
	schema.Description = description

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, ahberr.EvaluatorFailure("schema.marshal", err)
	}
	return append(data, '\n'), nil
}

// GenerateAhbExpressionSchema reflects result.AhbExpression, the
// top-level per-indicator result (C9), into a JSON Schema document.
func GenerateAhbExpressionSchema() ([]byte, error) {
	return generate(&result.AhbExpression{}, "ahb-expression-evaluation-result",
		"AhbExpressionEvaluationResult",
		"Result of evaluating one AHB expression's requirement-indicator pairs")
}

// GenerateRequirementConstraintSchema reflects result.RequirementConstraint
// (C7's result) into a JSON Schema document.
func GenerateRequirementConstraintSchema() ([]byte, error) {
	return generate(&result.RequirementConstraint{}, "requirement-constraint-evaluation-result",
		"RequirementConstraintEvaluationResult",
		"Result of reducing a condition tree under the requirement-constraint pass")
}

// GenerateFormatConstraintSchema reflects result.FormatConstraint (C8's
// result) into a JSON Schema document.
func GenerateFormatConstraintSchema() ([]byte, error) {
	return generate(&result.FormatConstraint{}, "format-constraint-evaluation-result",
		"FormatConstraintEvaluationResult",
		"Result of evaluating a format-constraint residual expression under two-valued logic")
}

// GenerateEvaluatedFormatConstraintSchema reflects
// result.EvaluatedFormatConstraint into a JSON Schema document.
func GenerateEvaluatedFormatConstraintSchema() ([]byte, error) {
	return generate(&result.EvaluatedFormatConstraint{}, "evaluated-format-constraint",
		"EvaluatedFormatConstraint",
		"A single format-constraint leaf's contribution to an overall FormatConstraint verdict")
}

// GenerateContentEvaluationResultSchema reflects
// result.ContentEvaluationResult into a JSON Schema document.
func GenerateContentEvaluationResultSchema() ([]byte, error) {
	return generate(&result.ContentEvaluationResult{}, "content-evaluation-result",
		"ContentEvaluationResult",
		"A single key's pre-computed content-evaluation state")
}

// GenerateEvaluatableDataSchema reflects ahbsdk.EvaluatableData, the seed
// a host supplies an evaluation run, into a JSON Schema document.
func GenerateEvaluatableDataSchema() ([]byte, error) {
	return generate(&ahbsdk.EvaluatableData{}, "evaluatable-data-seed",
		"EvaluatableDataSeed",
		"The externally-supplied seed data one evaluation run consults")
}

var (
	seedCompileOnce sync.Once
	seedCompiled    *jschema.Schema
	seedCompileErr  error
)

// ValidateEvaluatableData marshals data to JSON and validates it against
// the EvaluatableData schema. cmd/ahbicht's evaluate and serve commands
// run this on every seed before starting an evaluation, so a malformed
// seed is rejected before any suspension-point call is made.
func ValidateEvaluatableData(data ahbsdk.EvaluatableData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return ahberr.EvaluatorFailure("schema.marshal_seed", err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return ahberr.EvaluatorFailure("schema.unmarshal_seed", err)
	}

	sch, err := getCompiledSeedSchema()
	if err != nil {
		return ahberr.EvaluatorFailure("schema.compile", err)
	}
	if err := sch.Validate(decoded); err != nil {
		return ahberr.EvaluatorFailure("schema.validate", err)
	}
	return nil
}

func getCompiledSeedSchema() (*jschema.Schema, error) {
	seedCompileOnce.Do(func() {
		seedCompiled, seedCompileErr = compileSchema(GenerateEvaluatableDataSchema, schemaBaseURL+"evaluatable-data-seed.json")
	})
	return seedCompiled, seedCompileErr
}

func compileSchema(generateFn func() ([]byte, error), id string) (*jschema.Schema, error) {
	schemaBytes, err := generateFn()
	if err != nil {
		return nil, err
	}

	var schemaData any
	if err := json.Unmarshal(schemaBytes, &schemaData); err != nil {
		return nil, ahberr.EvaluatorFailure("schema.unmarshal", err)
	}

	c := jschema.NewCompiler()
	if err := c.AddResource(id, schemaData); err != nil {
		return nil, ahberr.EvaluatorFailure("schema.add_resource", err)
	}
	return c.Compile(id)
}
