package opentypefont

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func TestFixedToFloat(t *testing.T) {
	cases := []struct {
		v    fixed.Int26_6
		want float64
	}{
		{0, 0},
		{64, 1},
		{32, 0.5},
		{fixed.I(12), 12},
	}
	for _, c := range cases {
		if got := fixedToFloat(c.v); got != c.want {
			t.Errorf("fixedToFloat(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestOpenRejectsInvalidData(t *testing.T) {
	d := New()
	if _, err := d.Open([]byte("not a font"), 16); err == nil {
		t.Error("expected an error parsing non-font bytes")
	}
}

func TestSystemFontsEmpty(t *testing.T) {
	d := New()
	if got := d.SystemFonts(); got != nil {
		t.Errorf("SystemFonts() = %v, want nil", got)
	}
}

func TestResolveSystemFontAlwaysFails(t *testing.T) {
	d := New()
	if _, err := d.ResolveSystemFont("Arial"); err == nil {
		t.Error("expected ResolveSystemFont to always fail, this backend never resolves system fonts")
	}
}

func TestBorderGlyphAlwaysMisses(t *testing.T) {
	f := &Font{}
	if _, ok := f.BorderGlyph('A', 2); ok {
		t.Error("expected BorderGlyph to always report no native stroke support")
	}
}

func TestFontMetricsReflectDecodedValues(t *testing.T) {
	f := &Font{lineHeight: 20, ascender: 16, descender: 4}
	if f.LineHeight() != 20 {
		t.Errorf("LineHeight() = %v, want 20", f.LineHeight())
	}
	if f.Ascender() != 16 {
		t.Errorf("Ascender() = %v, want 16", f.Ascender())
	}
	if f.Descender() != 4 {
		t.Errorf("Descender() = %v, want 4", f.Descender())
	}
}
