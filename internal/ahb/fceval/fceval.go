// SPDX-License-Identifier: Apache-2.0

// Package fceval implements the format-constraint evaluator (C8): it
// parses the residual expression the requirement-constraint pass (C7)
// accumulated, using the same grammar as a condition expression (C2)
// restricted to format-constraint leaves, then reduces it under plain
// two-valued boolean logic. Juxtaposition inside a residual means `and`,
// not the then_also gate/payload semantics C7 gives it.
package fceval

import (
	"context"
	"strings"

	"github.com/holomush/ahbicht/internal/ahb/ahberr"
	"github.com/holomush/ahbicht/internal/ahb/condition"
	"github.com/holomush/ahbicht/internal/ahb/result"
	"github.com/holomush/ahbicht/internal/ahb/suspend"
	"github.com/holomush/ahbicht/internal/ahb/tree"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
)

// Evaluate parses and reduces residual (the format_constraints_expression
// from a requirement-constraint result) against enteredText. An empty
// residual is vacuously satisfied.
func Evaluate(ctx context.Context, runID, residual string, fc ahbsdk.FcEvaluator, ec ahbsdk.EvaluationContext, enteredText string) (result.FormatConstraint, error) {
	if strings.TrimSpace(residual) == "" {
		return result.FormatConstraint{Fulfilled: true}, nil
	}

	n, err := condition.Parse(residual)
	if err != nil {
		return result.FormatConstraint{}, err
	}

	r := &reducer{ctx: ctx, runID: runID, fc: fc, ec: ec, enteredText: enteredText}
	v, err := r.reduce(n)
	if err != nil {
		return result.FormatConstraint{}, err
	}

	if v.fulfilled {
		return result.FormatConstraint{Fulfilled: true, Constraints: v.constraints}, nil
	}
	return result.FormatConstraint{
		Fulfilled:    false,
		ErrorMessage: result.StringPtr(strings.Join(v.falseErrs, "; ")),
		Constraints:  v.constraints,
	}, nil
}

type value struct {
	fulfilled   bool
	falseErrs   []string
	constraints []result.EvaluatedFormatConstraint
}

type reducer struct {
	ctx         context.Context
	runID       string
	fc          ahbsdk.FcEvaluator
	ec          ahbsdk.EvaluationContext
	enteredText string
}

func (r *reducer) reduce(n tree.Node) (value, error) {
	switch x := n.(type) {
	case *tree.FormatConstraint:
		leafResult, err := suspend.Call(r.ctx, r.runID, "ahb.fc_evaluate", x.Key, func(ctx context.Context) (ahbsdk.FcLeafResult, error) {
			lr, err := r.fc.Evaluate(ctx, x.Key, r.enteredText, r.ec)
			if err != nil {
				return ahbsdk.FcLeafResult{}, ahberr.EvaluatorFailure(x.Key, err)
			}
			return lr, nil
		})
		if err != nil {
			return value{}, err
		}
		leaf := result.EvaluatedFormatConstraint{
			Key:          x.Key,
			Fulfilled:    leafResult.Fulfilled,
			ErrorMessage: leafResult.ErrorMessage,
		}
		if leafResult.Fulfilled {
			return value{fulfilled: true, constraints: []result.EvaluatedFormatConstraint{leaf}}, nil
		}
		return value{
			fulfilled:   false,
			falseErrs:   []string{leafResult.ErrorMessage},
			constraints: []result.EvaluatedFormatConstraint{leaf},
		}, nil

	case *tree.Composition:
		left, err := r.reduce(x.Left)
		if err != nil {
			return value{}, err
		}
		right, err := r.reduce(x.Right)
		if err != nil {
			return value{}, err
		}
		errs := append(append([]string{}, left.falseErrs...), right.falseErrs...)
		constraints := append(append([]result.EvaluatedFormatConstraint{}, left.constraints...), right.constraints...)
		switch x.Tag {
		case tree.Or:
			return value{fulfilled: left.fulfilled || right.fulfilled, falseErrs: errs, constraints: constraints}, nil
		case tree.Xor:
			return value{fulfilled: left.fulfilled != right.fulfilled, falseErrs: errs, constraints: constraints}, nil
		default:
			// tree.And and tree.ThenAlso (adjacency) both mean `and`
			// inside a format-constraint residual.
			return value{fulfilled: left.fulfilled && right.fulfilled, falseErrs: errs, constraints: constraints}, nil
		}

	default:
		return value{}, ahberr.NonsensicalComposition("fc_reduce", "non-format-constraint-leaf", "")
	}
}
