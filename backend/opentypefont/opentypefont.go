// Package opentypefont is a reference atres.Decoder backed by
// golang.org/x/image/font/opentype, the only TrueType/OpenType stack the
// example corpus exercises.
package opentypefont

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/phanxgames/atres"
)

// Decoder opens TrueType/OpenType font files via golang.org/x/image.
type Decoder struct{}

// New returns a ready-to-use Decoder. It carries no state of its own;
// every opened font gets an independent opentypefont.Font.
func New() *Decoder { return &Decoder{} }

// Open parses data as an OpenType/TrueType font and returns a face
// rasterized at the given pixel height.
func (d *Decoder) Open(data []byte, height float64) (atres.DecoderFont, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("opentypefont: parse: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    height,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("opentypefont: new face: %w", err)
	}
	m := face.Metrics()
	return &Font{
		face:       face,
		lineHeight: fixedToFloat(m.Height),
		ascender:   fixedToFloat(m.Ascent),
		descender:  fixedToFloat(m.Descent),
	}, nil
}

// SystemFonts reports no installed system fonts: enumerating OS font
// directories is platform-specific and none of the example corpus touches
// it, so this reference backend leaves the list empty rather than
// guessing at paths (DESIGN.md).
func (d *Decoder) SystemFonts() []atres.SystemFontInfo { return nil }

// ResolveSystemFont always fails; see SystemFonts.
func (d *Decoder) ResolveSystemFont(name string) ([]byte, error) {
	return nil, fmt.Errorf("opentypefont: system font resolution not supported, got %q", name)
}

// Font rasterizes individual glyphs on demand via font.Face.Glyph, which
// internally drives golang.org/x/image/vector — atres never touches the
// vector rasterizer directly, only the alpha mask it produces.
type Font struct {
	face font.Face

	lineHeight float64
	ascender   float64
	descender  float64
}

func (f *Font) LineHeight() float64 { return f.lineHeight }
func (f *Font) Ascender() float64   { return f.ascender }
func (f *Font) Descender() float64  { return f.descender }

// Glyph rasterizes r at the origin and extracts its alpha mask.
func (f *Font) Glyph(r rune) (atres.RenderedGlyph, bool) {
	dr, mask, maskp, advance, ok := f.face.Glyph(fixed.P(0, 0), r)
	if !ok || dr.Empty() {
		return atres.RenderedGlyph{}, false
	}
	w, h := dr.Dx(), dr.Dy()
	pixels := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
			pixels[y*w+x] = byte(a >> 8)
		}
	}
	return atres.RenderedGlyph{
		Pixels:    pixels,
		Width:     w,
		Height:    h,
		Advance:   fixedToFloat(advance),
		BearingX:  float64(dr.Min.X),
		TopOffset: float64(-dr.Min.Y),
		Ascender:  f.ascender,
		Descender: f.descender,
	}, true
}

// BorderGlyph always reports no native stroke support: golang.org/x/image
// has no outline-stroking API, so DynamicFont falls back to Prerender
// dilation automatically (font_dynamic.go's borderCharacter).
func (f *Font) BorderGlyph(r rune, thickness float64) (atres.RenderedBorderGlyph, bool) {
	return atres.RenderedBorderGlyph{}, false
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
