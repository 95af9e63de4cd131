// SPDX-License-Identifier: Apache-2.0

// Package ahbgrammar splits a whole AHB expression string into an ordered
// sequence of (requirement indicator, condition expression) pairs and
// hands each condition-expression substring to the condition package
// (C2) to parse. Keeping this split separate from C2 is what the spec
// calls "two grammars, two passes": U, O and X name both a prefix-operator
// indicator and a condition-expression operator, and the only
// unambiguous way to tell them apart is position in the outer string, not
// anything C2's grammar alone can resolve.
package ahbgrammar

import (
	"strings"

	"github.com/holomush/ahbicht/internal/ahb/ahberr"
	"github.com/holomush/ahbicht/internal/ahb/condition"
	"github.com/holomush/ahbicht/internal/ahb/tree"
)

// Pair is one (requirement indicator, condition tree) entry of a parsed
// AHB expression. Tree is nil for a bare indicator with no condition
// expression (spec: "a bare indicator ... yields an empty condition tree
// that evaluates to TRUE").
type Pair struct {
	Indicator tree.RequirementIndicator
	Tree      tree.Node
	RawExpr   string
}

var modalWords = map[string]tree.ModalMark{
	"Muss": tree.Muss,
	"Soll": tree.Soll,
	"Kann": tree.Kann,
}

var prefixWords = map[string]tree.PrefixOperator{
	"X": tree.PrefixX,
	"O": tree.PrefixO,
	"U": tree.PrefixU,
}

// Parse splits s into an ordered list of pairs and parses each condition
// expression substring with the condition grammar (C2).
//
// Disambiguation rule: Muss/Soll/Kann are unambiguous indicator words and
// may start any pair, including ones after the first. X/O/U are only
// recognized as a prefix-operator indicator at the very start of the
// whole string — once inside a condition expression, every occurrence of
// U/O/X is that expression's own operator, consistent with every
// multi-pair example in the spec (all of which split pairs on modal
// marks, never on a second prefix operator).
func Parse(s string) ([]Pair, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, ahberr.Syntax(0, []string{"Muss", "Soll", "Kann", "X", "O", "U"}, nil)
	}

	indicator, ok := leadingIndicator(fields[0])
	if !ok {
		return nil, ahberr.InvalidIndicatorPosition(fields[0], 0)
	}

	var rawPairs []rawPair
	current := indicator
	start := 1
	for i := 1; i < len(fields); i++ {
		if mark, ok := modalWords[fields[i]]; ok {
			rawPairs = append(rawPairs, rawPair{indicator: current, expr: strings.Join(fields[start:i], " ")})
			current = tree.NewModalIndicator(mark)
			start = i + 1
			continue
		}
	}
	rawPairs = append(rawPairs, rawPair{indicator: current, expr: strings.Join(fields[start:], " ")})

	pairs := make([]Pair, 0, len(rawPairs))
	for _, rp := range rawPairs {
		p := Pair{Indicator: rp.indicator, RawExpr: rp.expr}
		if strings.TrimSpace(rp.expr) != "" {
			t, err := condition.Parse(rp.expr)
			if err != nil {
				return nil, err
			}
			p.Tree = t
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

type rawPair struct {
	indicator tree.RequirementIndicator
	expr      string
}

// leadingIndicator classifies the first field of an AHB expression as
// either a modal mark or a prefix operator.
func leadingIndicator(word string) (tree.RequirementIndicator, bool) {
	if mark, ok := modalWords[word]; ok {
		return tree.NewModalIndicator(mark), true
	}
	if prefix, ok := prefixWords[word]; ok {
		return tree.NewPrefixIndicator(prefix), true
	}
	return tree.RequirementIndicator{}, false
}
