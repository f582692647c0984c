package rem

import "strings"

// Node is one level of a value tree: a Token, a Space list or a Comma list
type Node interface {
	isNode()
}

// Space is a space-separated sequence, e.g. "1px solid red"
type Space []Node

func (Space) isNode() {}

// Comma is a comma-separated collection, e.g. "44px auto, 50% 312px"
type Comma []Node

func (Comma) isNode() {}

// Value is a full value expression: a tree plus its trailing decoration.
//
// Gaps holds the separator text as written: Gaps[i] precedes the i-th token
// of the tree and the last entry follows the final token. Values built by
// hand leave it nil and render with canonical " " and ", " separators.
type Value struct {
	Root       Node
	Decoration string // "!important" as written, or empty
	Gaps       []string
}

// Declaration is a property and its value
type Declaration struct {
	Property string
	Value    Value
}

// Map rebuilds a tree with fn applied to every token.
// The result has exactly the shape of the input.
func Map(n Node, fn func(Token) Token) Node {
	switch n := n.(type) {
	case Token:
		return fn(n)
	case Space:
		out := make(Space, len(n))
		for i, child := range n {
			out[i] = Map(child, fn)
		}
		return out
	case Comma:
		out := make(Comma, len(n))
		for i, child := range n {
			out[i] = Map(child, fn)
		}
		return out
	}
	return n
}

// Walk calls fn for every token in the tree, left to right
func Walk(n Node, fn func(Token)) {
	switch n := n.(type) {
	case Token:
		fn(n)
	case Space:
		for _, child := range n {
			Walk(child, fn)
		}
	case Comma:
		for _, child := range n {
			Walk(child, fn)
		}
	}
}

// Convert converts every px/pt length in a tree to rem
func Convert(n Node, ctx Context) Node {
	return Map(n, ctx.ConvertToken)
}

// Fallback renders every px/pt length in a tree as rounded px
func Fallback(n Node, ctx Context) Node {
	return Map(n, ctx.FallbackToken)
}

// ConvertValue converts a value, carrying its decoration over untouched
func ConvertValue(v Value, ctx Context) Value {
	return Value{Root: Convert(v.Root, ctx), Decoration: v.Decoration, Gaps: v.Gaps}
}

// FallbackValue is ConvertValue for the px fallback declaration
func FallbackValue(v Value, ctx Context) Value {
	return Value{Root: Fallback(v.Root, ctx), Decoration: v.Decoration, Gaps: v.Gaps}
}

// ConvertDeclarations converts each declaration with the policy of its own property.
// Order is preserved.
func ConvertDeclarations(decls []Declaration, opts Options) []Declaration {
	out := make([]Declaration, len(decls))
	for i, decl := range decls {
		out[i] = Declaration{
			Property: decl.Property,
			Value:    ConvertValue(decl.Value, opts.Context(decl.Property)),
		}
	}
	return out
}

// HasLength reports whether a value holds at least one px/pt length
func HasLength(v Value) bool {
	found := false
	Walk(v.Root, func(t Token) {
		if t.Convertible() {
			found = true
		}
	})
	return found
}

// String renders the value as CSS text
func (v Value) String() string {
	var sb strings.Builder
	if v.Gaps != nil && len(v.Gaps) == countTokens(v.Root)+1 {
		renderGaps(&sb, v.Root, v.Gaps)
	} else {
		render(&sb, v.Root)
	}

	if v.Decoration != "" {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.Decoration)
	}
	return sb.String()
}

// render writes a node with the separator of its level
func render(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case Token:
		sb.WriteString(n.Text)
	case Space:
		for i, child := range n {
			if i > 0 {
				sb.WriteByte(' ')
			}
			render(sb, child)
		}
	case Comma:
		for i, child := range n {
			if i > 0 {
				sb.WriteString(", ")
			}
			render(sb, child)
		}
	}
}

// renderGaps writes the tokens of a tree with the separators they were parsed with
func renderGaps(sb *strings.Builder, n Node, gaps []string) {
	i := 0
	Walk(n, func(t Token) {
		sb.WriteString(gaps[i])
		sb.WriteString(t.Text)
		i++
	})
	sb.WriteString(gaps[i])
}

func countTokens(n Node) int {
	count := 0
	Walk(n, func(Token) { count++ })
	return count
}
