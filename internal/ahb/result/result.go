// SPDX-License-Identifier: Apache-2.0

// Package result defines the JSON-serializable outputs of the evaluation
// pipeline: the requirement-constraint result (C7), the format-constraint
// result (C8), and the combined per-indicator result (C9). These are the
// schemas cmd/gen-ahb-schema reflects into JSON Schema.
package result

import "github.com/holomush/ahbicht/internal/ahb/tree"

// RequirementConstraint is the result of reducing a condition tree under
// the requirement-constraint pass (C7).
type RequirementConstraint struct {
	Fulfilled                   bool    `json:"fulfilled"`
	IsConditional                bool    `json:"is_conditional"`
	FormatConstraintsExpression *string `json:"format_constraints_expression,omitempty"`
	Hints                       *string `json:"hints,omitempty"`
}

// FormatConstraint is the result of evaluating a format-constraint
// residual expression under two-valued logic (C8).
type FormatConstraint struct {
	Fulfilled    bool                        `json:"fulfilled"`
	ErrorMessage *string                     `json:"error_message,omitempty"`
	Constraints  []EvaluatedFormatConstraint `json:"constraints,omitempty"`
}

// EvaluatedFormatConstraint is a single FC leaf's contribution to the
// overall FormatConstraint verdict, kept so the error-message policy can
// report which individual constraints failed.
type EvaluatedFormatConstraint struct {
	Key          string `json:"key"`
	Fulfilled    bool   `json:"fulfilled"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ContentEvaluationResult is a single key's evaluated state, used by
// callers that pre-compute all possible content-evaluation results
// (category extractor consumers, see spec §4.4).
type ContentEvaluationResult struct {
	Key       string         `json:"key"`
	Fulfilled tree.Fulfilled `json:"-"`
	// FulfilledName mirrors Fulfilled as its string form for JSON, since
	// Fulfilled's numeric encoding is an implementation detail.
	FulfilledName string `json:"fulfilled"`
}

// NewContentEvaluationResult builds a ContentEvaluationResult, deriving
// FulfilledName from f.
func NewContentEvaluationResult(key string, f tree.Fulfilled) ContentEvaluationResult {
	return ContentEvaluationResult{Key: key, Fulfilled: f, FulfilledName: f.String()}
}

// AhbExpression is the result of evaluating one (indicator, tree) pair
// end to end: the RC pass, then the FC pass over its residual (C9).
type AhbExpression struct {
	RequirementIndicator string                `json:"requirement_indicator"`
	RCResult              RequirementConstraint `json:"rc_result"`
	FCResult               FormatConstraint      `json:"fc_result"`
}

// StringPtr returns nil for an empty string, and a pointer to s
// otherwise — the idiom used throughout this package to encode the
// spec's nullable string fields.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
