package rem

import (
	"strings"
	"unicode"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// lexToken is a lexer token with its text copied out of the input buffer
type lexToken struct {
	tt   css.TokenType
	text string
}

func lex(expr string) []lexToken {
	lexer := css.NewLexer(parse.NewInputString(expr))

	var tokens []lexToken
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			return tokens
		}
		tokens = append(tokens, lexToken{tt: tt, text: string(data)})
	}
}

// Parse reads a value expression into a tree.
//
// Commas split groups and whitespace splits tokens inside a group, both only
// outside parentheses: a function call like rgba(0, 0, 0, .5) stays one
// opaque atom. Every !important is lifted into the decoration. The tree is
// as shallow as the text allows: one group is not wrapped in a Comma and one
// token is not wrapped in a Space. Empty groups (doubled, leading or trailing
// commas) add no node; their commas stay in Gaps. Parse never fails; a
// fragment it cannot split (unbalanced parentheses) becomes a single opaque
// token.
func Parse(expr string) Value {
	var (
		value  Value
		groups [][]Node
		group  []Node
		gaps   []string
		atom   strings.Builder
		gap    strings.Builder // separator text since the last atom
		depth  int
		lifted bool // a decoration was just removed from between two atoms
	)

	add := func(n Node) {
		gaps = append(gaps, gap.String())
		gap.Reset()
		lifted = false
		group = append(group, n)
	}
	flush := func() {
		if atom.Len() > 0 {
			add(Classify(atom.String()))
			atom.Reset()
		}
	}

	tokens := lex(expr)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if depth == 0 {
			switch tok.tt {
			case css.WhitespaceToken:
				flush()
				if !lifted || gap.Len() == 0 {
					gap.WriteString(tok.text)
				}
				continue
			case css.CommaToken:
				flush()
				gap.WriteString(tok.text)
				if len(group) > 0 {
					groups = append(groups, group)
				}
				group = nil
				continue
			case css.CommentToken:
				flush()
				add(Opaque(tok.text))
				continue
			case css.DelimToken:
				if j, ok := importantAt(tokens, i); ok {
					flush()
					if value.Decoration == "" {
						value.Decoration = "!" + tokens[j].text
					}
					i = j
					lifted = true
					continue
				}
			}
		}

		switch tok.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}
		atom.WriteString(tok.text)
	}

	flush()
	if len(group) > 0 {
		groups = append(groups, group)
	}

	value.Root = buildTree(groups)
	if len(gaps) > 0 {
		// Whitespace around the whole expression is not part of the value
		gaps[0] = strings.TrimLeftFunc(gaps[0], unicode.IsSpace)
		value.Gaps = append(gaps, strings.TrimRightFunc(gap.String(), unicode.IsSpace))
	}
	return value
}

// importantAt reports whether tokens[i] starts "!important" and returns the
// index of the "important" ident
func importantAt(tokens []lexToken, i int) (int, bool) {
	if tokens[i].tt != css.DelimToken || tokens[i].text != "!" {
		return 0, false
	}

	j := i + 1
	for j < len(tokens) && tokens[j].tt == css.WhitespaceToken {
		j++
	}

	if j < len(tokens) && tokens[j].tt == css.IdentToken && strings.EqualFold(tokens[j].text, "important") {
		return j, true
	}
	return 0, false
}

func buildTree(groups [][]Node) Node {
	switch len(groups) {
	case 0:
		return nil
	case 1:
		return sequence(groups[0])
	}

	out := make(Comma, len(groups))
	for i, group := range groups {
		out[i] = sequence(group)
	}
	return out
}

func sequence(group []Node) Node {
	if len(group) == 1 {
		return group[0]
	}
	return Space(group)
}
