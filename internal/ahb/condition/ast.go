// SPDX-License-Identifier: Apache-2.0

// Package condition defines the grammar for a single condition
// expression — brackets, U/O/X operators, parentheses, and adjacency —
// and compiles it to the canonical tree.Node shape the rest of the
// pipeline operates on. It is built with participle, the same way
// internal/access/policy/dsl builds the ABAC policy grammar: a
// lexer.MustSimple token set plus typed AST structs with parser struct
// tags, one precedence level per Go type.
package condition

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// conditionLexer tokenizes a condition expression. Order matters: longer
// patterns must come before shorter ones that share a prefix.
var conditionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Key", Pattern: `\[[0-9]+[A-Za-z]?\]`},
	{Name: "OpAnd", Pattern: `U`},
	{Name: "OpOr", Pattern: `O`},
	{Name: "OpXor", Pattern: `X`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Expr is the top level of the grammar: a left-associative xor chain,
// the lowest-precedence operator.
//
// Grammar: expr = or_chain (X or_chain)*
type Expr struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Operands []*OrChain     `parser:"@@ (OpXor @@)*" json:"operands"`
}

// OrChain is a left-associative chain joined by O, binding tighter than X.
//
// Grammar: or_chain = and_chain (O and_chain)*
type OrChain struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Operands []*AndChain    `parser:"@@ (OpOr @@)*" json:"operands"`
}

// AndChain is a left-associative chain joined by U, binding tighter than
// O.
//
// Grammar: and_chain = then_also (U then_also)*
type AndChain struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Operands []*ThenAlso    `parser:"@@ (OpAnd @@)*" json:"operands"`
}

// ThenAlso is adjacency of two primaries: a requirement gate followed,
// with no operator between them, by an optional format-constraint
// payload. Adjacency binds tighter than any of U/O/X.
//
// Grammar: then_also = primary primary?
type ThenAlso struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Gate    *Primary       `parser:"@@" json:"gate"`
	Payload *Primary       `parser:"@@?" json:"payload,omitempty"`
}

// Primary is a parenthesized sub-expression or a single bracketed key.
//
// Grammar: primary = "(" expr ")" | key
type Primary struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Group *Expr          `parser:"  '(' @@ ')'" json:"group,omitempty"`
	Key   string         `parser:"| @Key" json:"key,omitempty"`
}

// NewParser constructs a participle parser for the condition grammar.
// MaxLookahead backtracks so the optional adjacency payload in ThenAlso
// does not need a distinguishing first token.
func NewParser() (*participle.Parser[Expr], error) {
	return participle.Build[Expr](
		participle.Lexer(conditionLexer),
		participle.UseLookahead(participle.MaxLookahead),
	)
}

// rawKey strips the surrounding brackets from a Key token's literal text.
func rawKey(bracketed string) string {
	return strings.TrimSuffix(strings.TrimPrefix(bracketed, "["), "]")
}
