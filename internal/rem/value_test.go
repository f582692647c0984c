package rem

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestConvertValue(t *testing.T) {
	opts := DefaultOptions()

	tests := []struct {
		name     string
		property string
		expr     string
		want     string
	}{
		{"single length", "margin", "20px", "1.25rem"},
		{"keeps structure", "margin", "44px auto, 50% 312px", "2.75rem auto, 50% 19.5rem"},
		{"keeps decoration", "border", "7px solid #f90 !important", "0.4375rem solid #f90 !important"},
		{"rounds by default", "padding", "20.3px", "1.25rem"},
		{"font-size keeps precision", "font-size", "20.3px", "1.26875rem"},
		{"letter-spacing keeps precision", "letter-spacing", "0.5px", "0.03125rem"},
		{"word-spacing keeps precision", "word-spacing", "1.5px", "0.09375rem"},
		{"opaque only", "background", "auto, inherit, url(x.png)", "auto, inherit, url(x.png)"},
		{"unitless left alone", "line-height", "1.5", "1.5"},
		{"zero", "margin", "0px", "0"},
		{"points", "font-size", "12pt", "1rem"},
		{"shadow", "box-shadow", "0 2px 4px rgba(0, 0, 0, .5)", "0 0.125rem 0.25rem rgba(0, 0, 0, .5)"},
		{"empty", "margin", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertValue(Parse(tt.expr), opts.Context(tt.property))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestConvert_PreservesShape(t *testing.T) {
	ctx := DefaultOptions().Context("margin")

	// Nested single-element lists stay nested
	in := Comma{Space{Classify("16px")}, Space{Comma{Classify("auto")}}}
	want := Comma{
		Space{Token{Text: "1rem", Kind: KindLength, Magnitude: 1, Unit: UnitRem}},
		Space{Comma{Opaque("auto")}},
	}

	if diff := cmp.Diff(Node(want), Convert(in, ctx)); diff != "" {
		t.Errorf("Convert mismatch (-want +got):\n%s", diff)
	}
}

func TestConvert_OpaqueTreeIsIdentical(t *testing.T) {
	in := Parse("auto, inherit, url(x.png)")
	got := ConvertValue(in, DefaultOptions().Context("background"))

	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("opaque tree changed (-in +got):\n%s", diff)
	}
}

func TestConvert_NilTree(t *testing.T) {
	assert.Nil(t, Convert(nil, DefaultOptions().Context("margin")))
}

func TestConvertDeclarations(t *testing.T) {
	decls := []Declaration{
		{Property: "margin", Value: Parse("20.3px")},
		{Property: "font-size", Value: Parse("20.3px")},
		{Property: "color", Value: Parse("red")},
	}

	got := ConvertDeclarations(decls, DefaultOptions())

	var rendered []string
	for _, decl := range got {
		rendered = append(rendered, decl.Property+"="+decl.Value.String())
	}
	assert.Equal(t, []string{"margin=1.25rem", "font-size=1.26875rem", "color=red"}, rendered)
}

func TestHasLength(t *testing.T) {
	assert.True(t, HasLength(Parse("auto 10px")))
	assert.True(t, HasLength(Parse("1pt")))
	assert.True(t, HasLength(Parse("0px")))
	assert.False(t, HasLength(Parse("auto, inherit")))
	assert.False(t, HasLength(Parse("1.25rem")))
	assert.False(t, HasLength(Parse("")))
}
