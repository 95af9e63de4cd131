// SPDX-License-Identifier: Apache-2.0

// Package rceval implements the requirement-constraint evaluator (C7): a
// post-order reduction of an expanded condition tree into a single
// Fulfilled verdict plus the format-constraint residual and hint text
// accumulated along the way. Leaf dispatch goes through the suspend
// package so every content-evaluator call gets tracing, retry and
// cancellation for free; sibling sub-trees reduce concurrently via
// errgroup since the algebra is commutative and ancillary merges are
// canonicalised deterministically regardless of completion order.
package rceval

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/holomush/ahbicht/internal/ahb/algebra"
	"github.com/holomush/ahbicht/internal/ahb/ahberr"
	"github.com/holomush/ahbicht/internal/ahb/result"
	"github.com/holomush/ahbicht/internal/ahb/suspend"
	"github.com/holomush/ahbicht/internal/ahb/tree"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
)

// maxConcurrentLeaves bounds how many RC/Hint leaf lookups one
// evaluation run may have in flight at once. Sibling sub-trees reduce
// concurrently without limit depth-wise, so a wide tree could otherwise
// open one goroutine-plus-I/O-call per leaf simultaneously.
const maxConcurrentLeaves = 16

// Evaluate reduces n to a RequirementConstraint result. n must not be
// nil; an empty-condition pair is the AHB evaluator's (C9) concern, not
// this package's.
func Evaluate(ctx context.Context, runID string, n tree.Node, rc ahbsdk.RcEvaluator, hints ahbsdk.HintsProvider, ec ahbsdk.EvaluationContext, data ahbsdk.EvaluatableData) (result.RequirementConstraint, error) {
	r := &reducer{
		ctx: ctx, runID: runID, rc: rc, hints: hints, ec: ec, data: data,
		sem: semaphore.NewWeighted(maxConcurrentLeaves),
	}
	root, err := r.reduce(n)
	if err != nil {
		return result.RequirementConstraint{}, err
	}

	fulfilled := root.Fulfilled == tree.True || (root.Fulfilled == tree.Neutral && !r.sawRC)
	return result.RequirementConstraint{
		Fulfilled:                    fulfilled,
		IsConditional:                r.sawRC,
		FormatConstraintsExpression: result.StringPtr(root.FormatExpression),
		Hints:                        result.StringPtr(root.Hints),
	}, nil
}

type reducer struct {
	ctx   context.Context
	runID string
	rc    ahbsdk.RcEvaluator
	hints ahbsdk.HintsProvider
	ec    ahbsdk.EvaluationContext
	data  ahbsdk.EvaluatableData
	sem   *semaphore.Weighted
	sawRC bool
}

func (r *reducer) reduce(n tree.Node) (*tree.EvaluatedComposition, error) {
	switch x := n.(type) {
	case *tree.Composition:
		return r.reduceComposition(x)
	case *tree.RequirementConstraint:
		r.sawRC = true
		if err := r.sem.Acquire(r.ctx, 1); err != nil {
			return nil, ahberr.Cancelled(r.runID, err)
		}
		f, err := suspend.Call(r.ctx, r.runID, "ahb.rc_evaluate", x.Key, func(ctx context.Context) (tree.Fulfilled, error) {
			sdkF, err := r.rc.Evaluate(ctx, x.Key, r.data, r.ec)
			if err != nil {
				return tree.Unset, ahberr.EvaluatorFailure(x.Key, err)
			}
			return fromSDK(sdkF), nil
		})
		r.sem.Release(1)
		if err != nil {
			return nil, err
		}
		return &tree.EvaluatedComposition{Fulfilled: f}, nil
	case *tree.Hint:
		if err := r.sem.Acquire(r.ctx, 1); err != nil {
			return nil, ahberr.Cancelled(r.runID, err)
		}
		text, err := suspend.Call(r.ctx, r.runID, "ahb.hint_fetch", x.Key, func(ctx context.Context) (string, error) {
			t, _, err := r.hints.HintText(ctx, x.Key)
			if err != nil {
				return "", ahberr.EvaluatorFailure(x.Key, err)
			}
			return t, nil
		})
		r.sem.Release(1)
		if err != nil {
			return nil, err
		}
		return &tree.EvaluatedComposition{Fulfilled: tree.Neutral, Hints: text}, nil
	case *tree.FormatConstraint:
		return &tree.EvaluatedComposition{Fulfilled: tree.Neutral, FormatExpression: x.Expression}, nil
	case *tree.TimeCondition:
		// Treated as neutral pending clarification of time-condition
		// semantics; see tree.TimeCondition.
		return &tree.EvaluatedComposition{Fulfilled: tree.Neutral}, nil
	case *tree.PackageRef:
		return nil, fmt.Errorf("rceval: unexpanded package leaf %q reached the evaluator", x.Key)
	default:
		return nil, fmt.Errorf("rceval: unhandled node type %T", n)
	}
}

func (r *reducer) reduceComposition(c *tree.Composition) (*tree.EvaluatedComposition, error) {
	var left, right *tree.EvaluatedComposition
	leftSub := &reducer{ctx: r.ctx, runID: r.runID, rc: r.rc, hints: r.hints, ec: r.ec, data: r.data, sem: r.sem}
	rightSub := &reducer{ctx: r.ctx, runID: r.runID, rc: r.rc, hints: r.hints, ec: r.ec, data: r.data, sem: r.sem}

	g, gctx := errgroup.WithContext(r.ctx)
	leftSub.ctx, rightSub.ctx = gctx, gctx
	g.Go(func() error {
		v, err := leftSub.reduce(c.Left)
		if err != nil {
			return err
		}
		left = v
		return nil
	})
	g.Go(func() error {
		v, err := rightSub.reduce(c.Right)
		if err != nil {
			return err
		}
		right = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Each side's reducer only ever sets its own sawRC, so merging here
	// after both goroutines have finished is race-free.
	r.sawRC = r.sawRC || leftSub.sawRC || rightSub.sawRC
	return algebra.Combine(c.Tag, left, right)
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
