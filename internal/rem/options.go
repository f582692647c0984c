package rem

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults used by DefaultOptions
const (
	DefaultBaseFontSize = 16.0
	DefaultPrecision    = 5
)

// ErrInvalidBaseFontSize is returned when the base font size is not a positive length
var ErrInvalidBaseFontSize = errors.New("base font size must be a positive px or pt length")

// Mode selects which declarations are emitted for a converted property
type Mode string

const (
	// ModeRem emits only the rem declaration
	ModeRem Mode = "rem"
	// ModePxRem emits a px fallback declaration followed by the rem declaration
	ModePxRem Mode = "px-rem"
)

// ParseMode reads a mode name from configuration
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rem", "rem-only":
		return ModeRem, nil
	case "px-rem", "px+rem", "fallback":
		return ModePxRem, nil
	default:
		return ModeRem, fmt.Errorf("unknown output mode %q (want rem or px-rem)", s)
	}
}

// Options is the process-wide conversion configuration
type Options struct {
	BaseFontSize float64  // Root font size in px (default: 16)
	Mode         Mode     // Emitted declarations (default: rem)
	Precision    int      // Max fraction digits in output; 0 = default (5), negative = shortest exact
	Exceptions   []string // Extra properties converted at full precision
}

// DefaultOptions returns a 16px base, rem-only configuration
func DefaultOptions() Options {
	return Options{
		BaseFontSize: DefaultBaseFontSize,
		Mode:         ModeRem,
		Precision:    DefaultPrecision,
	}
}

// Validate checks the options once, at configuration time
func (o Options) Validate() error {
	if !validBase(o.BaseFontSize) {
		return fmt.Errorf("%w: got %v", ErrInvalidBaseFontSize, o.BaseFontSize)
	}
	if _, err := ParseMode(string(o.Mode)); err != nil {
		return err
	}
	return nil
}

// ShouldRound applies the property policy plus the configured exceptions
func (o Options) ShouldRound(property string) bool {
	if !ShouldRound(property) {
		return false
	}
	for _, exception := range o.Exceptions {
		if exception == property {
			return false
		}
	}
	return true
}

// Context builds the conversion context for one property
func (o Options) Context(property string) Context {
	mode := o.Mode
	if mode == "" {
		mode = ModeRem
	}
	return Context{
		BaseFontSize: o.BaseFontSize,
		Mode:         mode,
		Precision:    o.Precision,
		Round:        o.ShouldRound(property),
	}
}

// Context carries everything a single conversion needs.
// It is a value: build one per call with Options.Context and discard it.
type Context struct {
	BaseFontSize float64
	Mode         Mode
	Precision    int
	Round        bool
}

// ParseFontSize reads a base font size such as "16px", "12pt" or "16".
// A unitless value is taken as px.
func ParseFontSize(s string) (float64, error) {
	token := Classify(strings.TrimSpace(s))

	var px float64
	switch {
	case token.Convertible():
		px = ToPixels(token.Magnitude, token.Unit)
	case token.Kind == KindUnitless:
		px = token.Magnitude
	default:
		return 0, fmt.Errorf("%w: got %q", ErrInvalidBaseFontSize, s)
	}

	if !validBase(px) {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidBaseFontSize, s)
	}
	return px, nil
}
