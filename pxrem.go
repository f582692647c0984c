// Package pxrem converts px and pt lengths in CSS values to rem.
//
// Lengths are divided by a base font size (16px by default). Keywords,
// colors, percentages, unitless numbers and function calls pass through
// untouched, and the shape of the value (space and comma separated lists,
// a trailing !important) is preserved.
//
// # Values
//
// Convert a single value:
//
//	out, err := pxrem.Convert("margin", "44px auto, 50% 312px", pxrem.DefaultOptions())
//	// out == "2.75rem auto, 50% 19.5rem"
//
// Emit declarations with a px fallback for engines without rem support:
//
//	opts := pxrem.DefaultOptions()
//	opts.Mode = pxrem.ModePxRem
//	lines, err := pxrem.Declare("margin", "20px", opts)
//	// lines == []string{"margin: 20px;", "margin: 1.25rem;"}
//
// # Stylesheets
//
// Rewrite every declaration of a stylesheet:
//
//	css, changes, err := pxrem.Rewrite(content, "main.css", opts)
//
// # CLI Tool
//
// pxrem also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/pxrem/cmd/pxrem@latest
package pxrem

import (
	sheet "github.com/yacobolo/pxrem/internal/pxrem"
	"github.com/yacobolo/pxrem/internal/rem"
)

// Options configures a conversion
type Options = rem.Options

// Mode selects the emitted declarations
type Mode = rem.Mode

// Output modes
const (
	ModeRem   = rem.ModeRem
	ModePxRem = rem.ModePxRem
)

// Change records one rewritten stylesheet declaration
type Change = sheet.Change

// ErrInvalidBaseFontSize is returned for a non-positive or non-finite base font size
var ErrInvalidBaseFontSize = rem.ErrInvalidBaseFontSize

// Property is a property name with its value as written
type Property struct {
	Name  string
	Value string
}

// DefaultOptions returns a 16px base, rem-only configuration
func DefaultOptions() Options {
	return rem.DefaultOptions()
}

// ParseMode reads a mode name such as "rem" or "px-rem"
func ParseMode(s string) (Mode, error) {
	return rem.ParseMode(s)
}

// Convert returns value with its px and pt lengths converted to rem,
// rounded according to the policy of property
func Convert(property, value string, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	return rem.ConvertValue(rem.Parse(value), opts.Context(property)).String(), nil
}

// Declare returns the declarations emitted for property: one rem declaration,
// or the px fallback followed by the rem declaration in px-rem mode
func Declare(property, value string, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return rem.Declare(property, value, opts), nil
}

// DeclareAll emits the declarations of several properties in order
func DeclareAll(properties []Property, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	decls := make([]rem.Declaration, len(properties))
	for i, p := range properties {
		decls[i] = rem.Declaration{Property: p.Name, Value: rem.Parse(p.Value)}
	}
	return rem.DeclareAll(decls, opts), nil
}

// Rewrite converts every declaration of a stylesheet and reports the changes.
// Content without px or pt lengths is returned unchanged.
func Rewrite(content, filename string, opts Options) (string, []Change, error) {
	if err := opts.Validate(); err != nil {
		return "", nil, err
	}
	out, changes := sheet.Rewrite(content, filename, opts)
	return out, changes, nil
}
