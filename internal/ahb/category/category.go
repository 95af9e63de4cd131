// SPDX-License-Identifier: Apache-2.0

// Package category walks a parsed condition tree and buckets its leaf
// keys by kind — hint, format constraint, requirement constraint,
// package, time condition — for callers that want to pre-compute every
// content-evaluation result a tree could possibly need (spec §4.4,
// §8 invariant 7).
package category

import (
	"sort"

	"github.com/holomush/ahbicht/internal/ahb/tree"
)

// Sets holds the five disjoint, sorted, deduplicated key sets extracted
// from a tree.
type Sets struct {
	RequirementConstraints []string
	Hints                  []string
	FormatConstraints      []string
	Packages               []string
	TimeConditions         []string
}

// Extract walks n and returns its five category sets.
func Extract(n tree.Node) Sets {
	seen := map[tree.KeyKind]map[string]struct{}{
		tree.KindRequirementConstraint: {},
		tree.KindHint:                  {},
		tree.KindFormatConstraint:      {},
		tree.KindPackage:               {},
		tree.KindTimeCondition:         {},
	}
	walk(n, seen)

	return Sets{
		RequirementConstraints: sortedKeys(seen[tree.KindRequirementConstraint]),
		Hints:                  sortedKeys(seen[tree.KindHint]),
		FormatConstraints:      sortedKeys(seen[tree.KindFormatConstraint]),
		Packages:               sortedKeys(seen[tree.KindPackage]),
		TimeConditions:         sortedKeys(seen[tree.KindTimeCondition]),
	}
}

func walk(n tree.Node, seen map[tree.KeyKind]map[string]struct{}) {
	if n == nil {
		return
	}
	switch x := n.(type) {
	case *tree.RequirementConstraint:
		seen[tree.KindRequirementConstraint][x.Key] = struct{}{}
	case *tree.Hint:
		seen[tree.KindHint][x.Key] = struct{}{}
	case *tree.FormatConstraint:
		seen[tree.KindFormatConstraint][x.Key] = struct{}{}
	case *tree.PackageRef:
		seen[tree.KindPackage][x.Key] = struct{}{}
	case *tree.TimeCondition:
		seen[tree.KindTimeCondition][x.Key] = struct{}{}
	case *tree.Composition:
		walk(x.Left, seen)
		walk(x.Right, seen)
	case *tree.EvaluatedComposition:
		// Already-reduced nodes carry no further keys to classify.
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
