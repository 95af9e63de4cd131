// SPDX-License-Identifier: Apache-2.0

// Package ahbeval drives a whole AHB expression string end to end (C9):
// split it into (indicator, condition) pairs (C3), and for each pair in
// order expand packages (C5), reduce under the requirement-constraint
// pass (C7), then the format-constraint pass (C8), short-circuiting on
// the first pair whose requirement constraint is fulfilled.
package ahbeval

import (
	"context"

	"github.com/holomush/ahbicht/internal/ahb/ahbgrammar"
	"github.com/holomush/ahbicht/internal/ahb/expand"
	"github.com/holomush/ahbicht/internal/ahb/fceval"
	"github.com/holomush/ahbicht/internal/ahb/rceval"
	"github.com/holomush/ahbicht/internal/ahb/result"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
)

// Evaluate parses exprString and evaluates its pairs left to right,
// returning the first fulfilled pair's result or, if none fulfils, the
// last pair's.
func Evaluate(ctx context.Context, runID, exprString string, bundle ahbsdk.LogicBundle, ec ahbsdk.EvaluationContext, data ahbsdk.EvaluatableData) (result.AhbExpression, error) {
	pairs, err := ahbgrammar.Parse(exprString)
	if err != nil {
		return result.AhbExpression{}, err
	}

	var last result.AhbExpression
	for _, pair := range pairs {
		rc, fc, err := evaluatePair(ctx, runID, pair, bundle, ec, data)
		if err != nil {
			return result.AhbExpression{}, err
		}

		last = result.AhbExpression{
			RequirementIndicator: pair.Indicator.String(),
			RCResult:             rc,
			FCResult:             fc,
		}
		if rc.Fulfilled {
			return last, nil
		}
	}
	return last, nil
}

func evaluatePair(ctx context.Context, runID string, pair ahbgrammar.Pair, bundle ahbsdk.LogicBundle, ec ahbsdk.EvaluationContext, data ahbsdk.EvaluatableData) (result.RequirementConstraint, result.FormatConstraint, error) {
	if pair.Tree == nil {
		return result.RequirementConstraint{Fulfilled: true, IsConditional: false},
			result.FormatConstraint{Fulfilled: true},
			nil
	}

	expanded, err := expand.Expand(ctx, runID, pair.Tree, bundle.Packages)
	if err != nil {
		return result.RequirementConstraint{}, result.FormatConstraint{}, err
	}

	rc, err := rceval.Evaluate(ctx, runID, expanded, bundle.Rc, bundle.Hints, ec, data)
	if err != nil {
		return result.RequirementConstraint{}, result.FormatConstraint{}, err
	}

	residual := ""
	if rc.FormatConstraintsExpression != nil {
		residual = *rc.FormatConstraintsExpression
	}
	fc, err := fceval.Evaluate(ctx, runID, residual, bundle.Fc, ec, data.EnteredText)
	if err != nil {
		return result.RequirementConstraint{}, result.FormatConstraint{}, err
	}
	return rc, fc, nil
}
