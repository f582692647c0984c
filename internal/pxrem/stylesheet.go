package pxrem

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"github.com/yacobolo/pxrem/internal/rem"
)

// sheetToken is a lexer token with its position in the source
type sheetToken struct {
	tt     css.TokenType
	text   string
	line   int // 1-based
	column int // 1-based, in bytes
}

// rewriteState maintains context while rewriting a stylesheet
type rewriteState struct {
	tokens   []sheetToken
	lines    []string // Source lines for change context
	filename string
	opts     rem.Options
	out      strings.Builder
	changes  []Change
}

// declSpan locates a declaration in the token stream
type declSpan struct {
	property int // Index of the property name
	colon    int // Index of the ':'
	end      int // Index of the terminating ';' or '}', or len(tokens)
}

// Rewrite converts the px/pt lengths of every declaration in a stylesheet.
// Only declarations whose value contains a px or pt length are touched;
// selectors, at-rules, comments, whitespace and all other declarations are
// copied byte for byte. Invalid options leave the content unchanged.
func Rewrite(content, filename string, opts rem.Options) (string, []Change) {
	if opts.Validate() != nil {
		return content, nil
	}

	s := &rewriteState{
		tokens:   lexStylesheet(content),
		lines:    strings.Split(content, "\n"),
		filename: filename,
		opts:     opts,
	}
	s.out.Grow(len(content))

	depth := 0
	statementStart := false

	for i := 0; i < len(s.tokens); {
		tok := s.tokens[i]

		switch tok.tt {
		case css.LeftBraceToken:
			depth++
			statementStart = true
		case css.RightBraceToken:
			if depth > 0 {
				depth--
			}
			statementStart = depth > 0
		case css.SemicolonToken:
			statementStart = depth > 0
		case css.WhitespaceToken, css.CommentToken:
			// Does not end a statement start
		case css.IdentToken, css.CustomPropertyNameToken:
			if depth > 0 && statementStart {
				if next, ok := s.rewriteDeclaration(i); ok {
					i = next
					continue
				}
			}
			statementStart = false
		default:
			statementStart = false
		}

		s.out.WriteString(tok.text)
		i++
	}

	return s.out.String(), s.changes
}

// lexStylesheet tokenizes content, tracking line and column of each token
func lexStylesheet(content string) []sheetToken {
	lexer := css.NewLexer(parse.NewInputString(content))

	var tokens []sheetToken
	line, column := 1, 1
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal - just break
			break
		}

		text := string(data)
		tokens = append(tokens, sheetToken{tt: tt, text: text, line: line, column: column})

		for i := 0; i < len(text); i++ {
			if text[i] == '\n' {
				line++
				column = 1
			} else {
				column++
			}
		}
	}

	return tokens
}

// rewriteDeclaration emits the converted form of the declaration starting at
// index i and returns the index to continue from. It reports false when the
// tokens are not a declaration that needs converting; nothing is emitted then.
func (s *rewriteState) rewriteDeclaration(i int) (int, bool) {
	span, ok := s.scanDeclaration(i)
	if !ok {
		return 0, false
	}

	raw := strings.TrimSpace(s.join(span.colon+1, span.end))
	original := rem.Parse(raw)
	if !rem.HasLength(original) {
		return 0, false
	}

	// A px declaration directly followed by the same property without px/pt
	// lengths is an existing fallback pair
	if s.followedByFallbackPartner(span) {
		return 0, false
	}

	property := s.tokens[i].text
	ctx := s.opts.Context(property)
	lines := rem.Assemble(property, original, rem.ConvertValue(original, ctx), ctx)

	s.out.WriteString(strings.Join(lines, s.separator(i)))
	s.changes = append(s.changes, Change{
		File:     s.filename,
		Line:     s.tokens[i].line,
		Column:   s.tokens[i].column,
		Property: property,
		Before:   raw,
		After:    lines,
		Source:   s.sourceLine(s.tokens[i].line),
	})

	// The assembled declarations carry their own ';'
	if span.end < len(s.tokens) && s.tokens[span.end].tt == css.SemicolonToken {
		return span.end + 1, true
	}
	return span.end, true
}

// scanDeclaration finds "property : value" starting at index i.
// Running into '{' first means the tokens were a nested selector such as
// "a:hover {", not a declaration.
func (s *rewriteState) scanDeclaration(i int) (declSpan, bool) {
	colon := s.skipTrivia(i + 1)
	if colon >= len(s.tokens) || s.tokens[colon].tt != css.ColonToken {
		return declSpan{}, false
	}

	parens := 0
	k := colon + 1
	for ; k < len(s.tokens); k++ {
		switch s.tokens[k].tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			parens++
		case css.RightParenthesisToken, css.RightBracketToken:
			if parens > 0 {
				parens--
			}
		case css.SemicolonToken, css.RightBraceToken:
			if parens == 0 {
				return declSpan{property: i, colon: colon, end: k}, true
			}
		case css.LeftBraceToken:
			if parens == 0 {
				return declSpan{}, false
			}
		}
	}

	return declSpan{property: i, colon: colon, end: k}, true
}

// followedByFallbackPartner reports whether the next declaration after span
// sets the same property to a value without px/pt lengths
func (s *rewriteState) followedByFallbackPartner(span declSpan) bool {
	if span.end >= len(s.tokens) || s.tokens[span.end].tt != css.SemicolonToken {
		return false
	}

	next := s.skipTrivia(span.end + 1)
	if next >= len(s.tokens) || s.tokens[next].text != s.tokens[span.property].text {
		return false
	}

	partner, ok := s.scanDeclaration(next)
	if !ok {
		return false
	}

	return !rem.HasLength(rem.Parse(s.join(partner.colon+1, partner.end)))
}

// skipTrivia returns the index of the first non-whitespace, non-comment token at or after i
func (s *rewriteState) skipTrivia(i int) int {
	for i < len(s.tokens) && (s.tokens[i].tt == css.WhitespaceToken || s.tokens[i].tt == css.CommentToken) {
		i++
	}
	return i
}

// join concatenates the text of tokens[from:to]
func (s *rewriteState) join(from, to int) string {
	var sb strings.Builder
	for _, tok := range s.tokens[from:to] {
		sb.WriteString(tok.text)
	}
	return sb.String()
}

// separator places a second declaration on its own line with the same
// indentation as the first, or on the same line when the first shares its line
func (s *rewriteState) separator(i int) string {
	if i > 0 && s.tokens[i-1].tt == css.WhitespaceToken {
		ws := s.tokens[i-1].text
		if idx := strings.LastIndexByte(ws, '\n'); idx >= 0 {
			return "\n" + ws[idx+1:]
		}
	}
	return " "
}

func (s *rewriteState) sourceLine(line int) string {
	if line < 1 || line > len(s.lines) {
		return ""
	}
	return strings.TrimRight(s.lines[line-1], "\r")
}
