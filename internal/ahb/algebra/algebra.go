// SPDX-License-Identifier: Apache-2.0

// Package algebra implements the multi-valued and/or/xor/then_also tables
// (C6) that the requirement-constraint evaluator (C7) folds a reduced
// tree through. Every combinator takes two already-reduced operands —
// each a Fulfilled value plus whatever format-constraint residual and
// hint text it carries — and returns a fresh combined operand or a
// NonsensicalComposition error.
package algebra

import (
	"sort"
	"strings"

	"github.com/holomush/ahbicht/internal/ahb/ahberr"
	"github.com/holomush/ahbicht/internal/ahb/tree"
)

// Combine applies tag to left and right and returns the combined operand.
func Combine(tag tree.Tag, left, right *tree.EvaluatedComposition) (*tree.EvaluatedComposition, error) {
	switch tag {
	case tree.And:
		return and(left, right)
	case tree.Or:
		return orXor(tag, left, right, orTable)
	case tree.Xor:
		return orXor(tag, left, right, xorTable)
	case tree.ThenAlso:
		return thenAlso(left, right)
	default:
		panic("algebra: unhandled tag")
	}
}

// and implements the U-operator table: NEUTRAL is the identity for a
// non-neutral operand and absorbs into NEUTRAL when both sides are
// neutral. FALSE is absorbing on either side.
func and(left, right *tree.EvaluatedComposition) (*tree.EvaluatedComposition, error) {
	var f tree.Fulfilled
	switch {
	case left.Fulfilled == tree.False || right.Fulfilled == tree.False:
		f = tree.False
	case left.Fulfilled == tree.Neutral:
		f = right.Fulfilled
	case right.Fulfilled == tree.Neutral:
		f = left.Fulfilled
	case left.Fulfilled == tree.Unknown || right.Fulfilled == tree.Unknown:
		f = tree.Unknown
	default:
		f = tree.True
	}
	// A FALSE result means this branch never gates anything downstream:
	// whatever residual or hint text rode along on either side is not
	// reachable and must not surface at the root (spec scenario: a
	// failing AND drops the FC residual and hints of its TRUE sibling).
	if f == tree.False {
		return &tree.EvaluatedComposition{Fulfilled: tree.False}, nil
	}
	return &tree.EvaluatedComposition{
		Fulfilled:        f,
		FormatExpression: mergeResidual(tree.And, left.FormatExpression, right.FormatExpression),
		Hints:            mergeHints(left.Hints, right.Hints),
	}, nil
}

type kleeneTable map[[2]tree.Fulfilled]tree.Fulfilled

var orTable = kleeneTable{
	{tree.True, tree.True}:    tree.True,
	{tree.True, tree.False}:   tree.True,
	{tree.True, tree.Unknown}: tree.True,
	{tree.False, tree.True}:   tree.True,
	{tree.False, tree.False}:  tree.False,
	{tree.False, tree.Unknown}: tree.Unknown,
	{tree.Unknown, tree.True}:  tree.True,
	{tree.Unknown, tree.False}: tree.Unknown,
	{tree.Unknown, tree.Unknown}: tree.Unknown,
}

var xorTable = kleeneTable{
	{tree.True, tree.True}:    tree.False,
	{tree.True, tree.False}:   tree.True,
	{tree.True, tree.Unknown}: tree.Unknown,
	{tree.False, tree.True}:   tree.True,
	{tree.False, tree.False}:  tree.False,
	{tree.False, tree.Unknown}: tree.Unknown,
	{tree.Unknown, tree.True}:  tree.Unknown,
	{tree.Unknown, tree.False}: tree.Unknown,
	{tree.Unknown, tree.Unknown}: tree.Unknown,
}

// orXor implements both the or and xor tables: they share the same
// domain restriction (NEUTRAL on either side is a hard error) and
// differ only in their Kleene table.
func orXor(tag tree.Tag, left, right *tree.EvaluatedComposition, table kleeneTable) (*tree.EvaluatedComposition, error) {
	if left.Fulfilled == tree.Neutral || right.Fulfilled == tree.Neutral {
		return nil, ahberr.NonsensicalComposition(tag.String(), left.Fulfilled.String(), right.Fulfilled.String())
	}
	f := table[[2]tree.Fulfilled{left.Fulfilled, right.Fulfilled}]
	return &tree.EvaluatedComposition{
		Fulfilled:        f,
		FormatExpression: mergeResidual(tag, left.FormatExpression, right.FormatExpression),
		Hints:            mergeHints(left.Hints, right.Hints),
	}, nil
}

// thenAlso implements the left-gate/right-payload table. The left
// operand must be requirement-constraint-valued (T, F or U); a NEUTRAL
// left — e.g. a bare Hint — is an error.
func thenAlso(left, right *tree.EvaluatedComposition) (*tree.EvaluatedComposition, error) {
	switch left.Fulfilled {
	case tree.True:
		return &tree.EvaluatedComposition{
			Fulfilled:        right.Fulfilled,
			FormatExpression: right.FormatExpression,
			Hints:            right.Hints,
		}, nil
	case tree.False:
		return &tree.EvaluatedComposition{Fulfilled: tree.Neutral}, nil
	case tree.Unknown:
		return &tree.EvaluatedComposition{
			Fulfilled:        tree.Unknown,
			FormatExpression: right.FormatExpression,
			Hints:            right.Hints,
		}, nil
	default:
		return nil, ahberr.NonsensicalComposition(tree.ThenAlso.String(), left.Fulfilled.String(), right.Fulfilled.String())
	}
}

// mergeResidual combines two format-constraint residual expressions
// under the outer operator, per the composite-propagation rule: empty
// residuals are the identity, and two non-empty residuals combine as
// "(f_A) <op> (f_B)" with the operands in lexicographic order, so
// concurrently-evaluated siblings merge deterministically.
func mergeResidual(tag tree.Tag, a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if b < a {
		a, b = b, a
	}
	op := map[tree.Tag]string{tree.And: " U ", tree.Or: " O ", tree.Xor: " X "}[tag]
	return "(" + a + ")" + op + "(" + b + ")"
}

// mergeHints concatenates two hint blobs with a newline separator,
// de-duplicating on full text and sorting lexicographically so
// concurrently-evaluated siblings merge deterministically regardless of
// evaluation order (spec invariant: hint accumulation is
// order-insensitive modulo canonical sort).
func mergeHints(a, b string) string {
	seen := make(map[string]struct{})
	var ordered []string
	for _, blob := range []string{a, b} {
		if blob == "" {
			continue
		}
		for _, line := range strings.Split(blob, "\n") {
			if _, ok := seen[line]; ok {
				continue
			}
			seen[line] = struct{}{}
			ordered = append(ordered, line)
		}
	}
	sort.Strings(ordered)
	return strings.Join(ordered, "\n")
}
