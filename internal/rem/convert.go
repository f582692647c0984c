package rem

import (
	"math"
	"strconv"
	"strings"
)

// Round snaps a magnitude to the nearest integer, halves away from zero
func Round(magnitude float64) float64 {
	return math.Round(magnitude)
}

// ToPixels converts a px or pt magnitude to px (1pt = 4/3 px)
func ToPixels(magnitude float64, unit Unit) float64 {
	if unit == UnitPt {
		// Multiply first: 12pt must come out as exactly 16px
		return magnitude * 4 / 3
	}
	return magnitude
}

// ToRem converts a px or pt magnitude to rem for the given base font size in px.
// It reports false when the base font size is not a usable divisor.
func ToRem(magnitude float64, unit Unit, baseFontSize float64) (float64, bool) {
	if !validBase(baseFontSize) {
		return 0, false
	}
	return ToPixels(magnitude, unit) / baseFontSize, true
}

func validBase(baseFontSize float64) bool {
	return baseFontSize > 0 && !math.IsInf(baseFontSize, 0) && !math.IsNaN(baseFontSize)
}

// ConvertToken converts a single px/pt token to rem.
// Non-length tokens, and every token when the base font size is unusable,
// come back unchanged.
func (c Context) ConvertToken(t Token) Token {
	if !t.Convertible() || !validBase(c.BaseFontSize) {
		return t
	}

	remValue := c.pixels(t) / c.BaseFontSize
	text := FormatNumber(remValue, c.Precision)
	if text == "0" {
		// A zero length needs no unit
		return Token{Text: "0", Kind: KindUnitless}
	}

	return Token{Text: text + string(UnitRem), Kind: KindLength, Magnitude: remValue, Unit: UnitRem}
}

// FallbackToken renders a px/pt token for the px fallback declaration.
// Rounding follows the context; pt is expressed in px. A px token already
// written in canonical form keeps its original text, case included.
func (c Context) FallbackToken(t Token) Token {
	if !t.Convertible() {
		return t
	}

	px := c.pixels(t)
	text := FormatNumber(px, c.Precision) + string(UnitPx)
	if strings.EqualFold(text, t.Text) {
		return t
	}

	return Token{
		Text:      text,
		Kind:      KindLength,
		Magnitude: px,
		Unit:      UnitPx,
	}
}

// pixels returns the px magnitude of a length, rounded in px space when the
// context asks for it
func (c Context) pixels(t Token) float64 {
	px := ToPixels(t.Magnitude, t.Unit)
	if c.Round {
		px = Round(px)
	}
	return px
}

// FormatNumber prints a magnitude the way CSS authors write it: no exponent,
// no trailing zeros, no trailing dot, no negative zero. Precision is the
// maximum number of fraction digits; zero means DefaultPrecision and a
// negative precision prints the shortest exact representation.
func FormatNumber(v float64, precision int) string {
	if precision == 0 {
		precision = DefaultPrecision
	}
	if precision < 0 {
		precision = -1
	}

	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}

	if s == "-0" {
		return "0"
	}
	return s
}
