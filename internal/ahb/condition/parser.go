// SPDX-License-Identifier: Apache-2.0

package condition

import (
	"github.com/alecthomas/participle/v2"

	"github.com/holomush/ahbicht/internal/ahb/ahberr"
	"github.com/holomush/ahbicht/internal/ahb/tree"
)

// parser is the singleton participle parser instance, built once at
// package init the way internal/access/policy/dsl builds its singleton.
var parser *participle.Parser[Expr]

func init() {
	var err error
	parser, err = NewParser()
	if err != nil {
		panic("condition: failed to build grammar: " + err.Error())
	}
}

// Parse parses a single condition expression string into a tree.Node.
// Whitespace between tokens is ignored. On a grammar failure it returns a
// SyntaxError carrying the offending offset and participle's diagnostic.
func Parse(expr string) (tree.Node, error) {
	ast, err := parser.ParseString("", expr)
	if err != nil {
		return nil, syntaxError(err)
	}
	return Build(ast), nil
}

// syntaxError adapts a participle parse failure to ahberr.Syntax,
// extracting the byte offset when participle's error carries a position.
func syntaxError(err error) error {
	offset := 0
	expected := []string{err.Error()}
	if perr, ok := err.(participle.Error); ok {
		offset = perr.Position().Offset
		expected = []string{perr.Message()}
	}
	return ahberr.Syntax(offset, expected, err)
}

// Build converts a parsed Expr AST into the canonical tree.Node shape,
// folding each left-associative operand chain and collapsing adjacency
// into a then_also composition only when a payload is present.
func Build(e *Expr) tree.Node {
	return buildXor(e)
}

func buildXor(e *Expr) tree.Node {
	return foldLeft(e.Operands, tree.Xor, buildOr)
}

func buildOr(o *OrChain) tree.Node {
	return foldLeft(o.Operands, tree.Or, buildAnd)
}

func buildAnd(a *AndChain) tree.Node {
	return foldLeft(a.Operands, tree.And, buildThenAlso)
}

func buildThenAlso(t *ThenAlso) tree.Node {
	gate := buildPrimary(t.Gate)
	if t.Payload == nil {
		return gate
	}
	return tree.NewComposition(tree.ThenAlso, gate, buildPrimary(t.Payload))
}

func buildPrimary(p *Primary) tree.Node {
	if p.Group != nil {
		return buildXor(p.Group)
	}
	return tree.NewLeaf(rawKey(p.Key))
}

// foldLeft folds a non-empty slice of AST operands into a single
// tree.Node, left-associating successive operands under tag.
func foldLeft[T any](operands []T, tag tree.Tag, build func(T) tree.Node) tree.Node {
	result := build(operands[0])
	for _, operand := range operands[1:] {
		result = tree.NewComposition(tag, result, build(operand))
	}
	return result
}
