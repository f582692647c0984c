// Package rem converts px and pt lengths inside CSS values to rem units.
//
// A value is parsed into a small tree (tokens, space lists, comma lists),
// every length token is rounded and converted according to the property it
// belongs to, and the tree is rendered back with its original shape. Tokens
// that are not px/pt lengths are never touched.
package rem

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Kind classifies a value token
type Kind int

const (
	// KindOpaque is anything that is not a number: keywords, colors, URLs, percentages, functions
	KindOpaque Kind = iota
	// KindUnitless is a bare number such as 0 or 1.5
	KindUnitless
	// KindLength is a number with an explicit unit
	KindLength
)

// Unit is the unit of a length token
type Unit string

// Supported units. Classify only ever produces px and pt lengths; rem is the
// unit of converted tokens.
const (
	UnitNone Unit = ""
	UnitPx   Unit = "px"
	UnitPt   Unit = "pt"
	UnitRem  Unit = "rem"
)

// Token is a single value atom.
// Text always holds the exact text to render; Magnitude and Unit are only
// meaningful for KindLength and KindUnitless tokens.
type Token struct {
	Text string
	Kind Kind
	// Magnitude is the value in Unit. A conversion that prints as zero at the
	// configured precision yields the unitless "0" with Magnitude 0, even when
	// the exact result was not zero.
	Magnitude float64
	Unit      Unit
}

func (Token) isNode() {}

// String returns the token text
func (t Token) String() string {
	return t.Text
}

// Convertible reports whether the token is a px or pt length
func (t Token) Convertible() bool {
	return t.Kind == KindLength && (t.Unit == UnitPx || t.Unit == UnitPt)
}

// Opaque wraps text as a token that is never converted
func Opaque(text string) Token {
	return Token{Text: text, Kind: KindOpaque}
}

// Classify decides what kind of atom text is.
// Only a single CSS dimension token with a px or pt unit (any case) is a
// length. A single number token is unitless. Everything else is opaque.
func Classify(text string) Token {
	lexer := css.NewLexer(parse.NewInputString(text))

	tt, data := lexer.Next()
	if next, _ := lexer.Next(); next != css.ErrorToken {
		// More than one lexer token: a compound atom like 12px/1.5
		return Opaque(text)
	}

	switch tt {
	case css.DimensionToken:
		if magnitude, unit, ok := parseLength(string(data)); ok {
			return Token{Text: text, Kind: KindLength, Magnitude: magnitude, Unit: unit}
		}
	case css.NumberToken:
		if magnitude, err := strconv.ParseFloat(string(data), 64); err == nil {
			return Token{Text: text, Kind: KindUnitless, Magnitude: magnitude}
		}
	}

	return Opaque(text)
}

// parseLength splits a dimension like "20.5PX" into magnitude and unit
func parseLength(dimension string) (float64, Unit, bool) {
	if len(dimension) < 3 {
		return 0, UnitNone, false
	}

	number, suffix := dimension[:len(dimension)-2], strings.ToLower(dimension[len(dimension)-2:])

	var unit Unit
	switch suffix {
	case "px":
		unit = UnitPx
	case "pt":
		unit = UnitPt
	default:
		return 0, UnitNone, false
	}

	// "5ppx" lexes as a dimension with unit "ppx"; ParseFloat rejects "5p"
	magnitude, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, UnitNone, false
	}

	return magnitude, unit, true
}
