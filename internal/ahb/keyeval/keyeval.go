// SPDX-License-Identifier: Apache-2.0

// Package keyeval answers the pre-computation use spec §4.4 names for the
// category extractor: given a tree and a content evaluator, evaluate
// every requirement-constraint key the tree references independently of
// any particular composition, the way rceval dispatches a single RC leaf,
// and report each as a ContentEvaluationResult. A caller that wants to
// seed a cache ahead of a real evaluation run, or simply introspect what
// a tree's keys resolve to, uses this instead of rceval's full reduction.
package keyeval

import (
	"context"

	"github.com/holomush/ahbicht/internal/ahb/ahberr"
	"github.com/holomush/ahbicht/internal/ahb/category"
	"github.com/holomush/ahbicht/internal/ahb/result"
	"github.com/holomush/ahbicht/internal/ahb/suspend"
	"github.com/holomush/ahbicht/internal/ahb/tree"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
)

// Evaluate extracts every requirement-constraint key category.Extract
// finds in n and evaluates each against rc, returning one
// ContentEvaluationResult per key, sorted by key (category.Extract's
// own ordering).
func Evaluate(ctx context.Context, runID string, n tree.Node, rc ahbsdk.RcEvaluator, data ahbsdk.EvaluatableData, ec ahbsdk.EvaluationContext) ([]result.ContentEvaluationResult, error) {
	keys := category.Extract(n).RequirementConstraints
	out := make([]result.ContentEvaluationResult, 0, len(keys))
	for _, key := range keys {
		f, err := suspend.Call(ctx, runID, "ahb.rc_evaluate", key, func(ctx context.Context) (tree.Fulfilled, error) {
			sdkF, err := rc.Evaluate(ctx, key, data, ec)
			if err != nil {
				return tree.Unset, ahberr.EvaluatorFailure(key, err)
			}
			return fromSDK(sdkF), nil
		})
		if err != nil {
			return nil, err
		}
		out = append(out, result.NewContentEvaluationResult(key, f))
	}
	return out, nil
}

func fromSDK(f ahbsdk.RcFulfilled) tree.Fulfilled {
	switch f {
	case ahbsdk.RCTrue:
		return tree.True
	case ahbsdk.RCFalse:
		return tree.False
	default:
		return tree.Unknown
	}
}
