// SPDX-License-Identifier: Apache-2.0

// Package expand rewrites package-reference leaves ([kP]) into the
// condition expression they stand for, recursively, until the tree
// contains no package leaves left (C5). It follows the cyclic-package
// guard internal/command/alias.go uses for its AliasCache: no pointers,
// just a visited-set of keys carried along the current expansion chain,
// so the same package key may legally appear in two unrelated branches
// without tripping the cycle check.
package expand

import (
	"context"
	"log/slog"

	"github.com/holomush/ahbicht/internal/ahb/ahberr"
	"github.com/holomush/ahbicht/internal/ahb/condition"
	"github.com/holomush/ahbicht/internal/ahb/suspend"
	"github.com/holomush/ahbicht/internal/ahb/tree"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
)

// maxExpansions backstops a resolver that keeps returning fresh,
// never-before-seen package keys; it is not the cycle check itself
// (spec: "Depth bound is the number of distinct keys encountered; no
// fixed numeric cap" — this is deliberately generous relative to any
// real AHB package depth).
const maxExpansions = 10000

// Expand resolves every package-reference leaf in n, returning a fresh
// tree with no PackageRef nodes left. resolver and the evaluation
// context together answer "what does package key k expand to?".
func Expand(ctx context.Context, runID string, n tree.Node, resolver ahbsdk.PackageResolver) (tree.Node, error) {
	e := &expander{ctx: ctx, runID: runID, resolver: resolver}
	return e.node(n, nil)
}

type expander struct {
	ctx      context.Context
	runID    string
	resolver ahbsdk.PackageResolver
	count    int
}

func (e *expander) node(n tree.Node, chain []string) (tree.Node, error) {
	switch x := n.(type) {
	case nil:
		return nil, nil
	case *tree.Composition:
		left, err := e.node(x.Left, chain)
		if err != nil {
			return nil, err
		}
		right, err := e.node(x.Right, chain)
		if err != nil {
			return nil, err
		}
		return tree.NewComposition(x.Tag, left, right), nil
	case *tree.PackageRef:
		return e.resolveRef(x, chain)
	default:
		// Non-package leaves (RequirementConstraint, Hint,
		// FormatConstraint, TimeCondition) pass through unchanged.
		return n, nil
	}
}

func (e *expander) resolveRef(ref *tree.PackageRef, chain []string) (tree.Node, error) {
	for _, k := range chain {
		if k == ref.Key {
			return nil, ahberr.PackageCycle(append(append([]string{}, chain...), ref.Key))
		}
	}

	e.count++
	if e.count > maxExpansions {
		return nil, ahberr.PackageCycle(append(append([]string{}, chain...), ref.Key))
	}

	expr, err := suspend.Call(e.ctx, e.runID, "ahb.package_resolve", ref.Key, func(ctx context.Context) (string, error) {
		s, ok, err := e.resolver.Resolve(ctx, ref.Key)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ahberr.UnknownPackage(ref.Key)
		}
		return s, nil
	})
	if err != nil {
		return nil, err
	}

	parsed, err := condition.Parse(expr)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(e.ctx, "package substitution", "run_id", e.runID, "key", ref.Key, "expression_length", len(expr))

	return e.node(parsed, append(append([]string{}, chain...), ref.Key))
}
