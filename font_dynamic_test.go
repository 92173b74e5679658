package atres

import "testing"

type fakeRasterizer struct {
	caps       Capabilities
	created    []*fakeTexture
	writeCalls int
}

func (r *fakeRasterizer) Capabilities() Capabilities { return r.caps }

func (r *fakeRasterizer) CreateTexture(w, h int, format PixelFormat, initial Color) (Texture, error) {
	tex := &fakeTexture{loaded: true}
	r.created = append(r.created, tex)
	return tex, nil
}

func (r *fakeRasterizer) WriteImage(tex Texture, dstX, dstY, width, height int, format PixelFormat, pixels []byte) error {
	r.writeCalls++
	return nil
}

func (r *fakeRasterizer) DestroyTexture(tex Texture) {
	if t, ok := tex.(*fakeTexture); ok {
		t.loaded = false
	}
}

func (r *fakeRasterizer) SetBlendMode(mode BlendMode) {}
func (r *fakeRasterizer) SetColorMode(mode ColorMode) {}
func (r *fakeRasterizer) RenderTriangles(tex Texture, vertices []Vertex, color Color) {}
func (r *fakeRasterizer) RenderLines(vertices []Vertex, color Color) {}

type fakeDecoderFont struct {
	glyphs     map[rune]RenderedGlyph
	lineHeight float64
	ascender   float64
	descender  float64
}

func (f *fakeDecoderFont) Glyph(r rune) (RenderedGlyph, bool) {
	g, ok := f.glyphs[r]
	return g, ok
}
func (f *fakeDecoderFont) BorderGlyph(r rune, thickness float64) (RenderedBorderGlyph, bool) {
	return RenderedBorderGlyph{}, false
}
func (f *fakeDecoderFont) LineHeight() float64 { return f.lineHeight }
func (f *fakeDecoderFont) Ascender() float64   { return f.ascender }
func (f *fakeDecoderFont) Descender() float64  { return f.descender }

func newTestDynamicFont() (*DynamicFont, *fakeRasterizer) {
	raster := &fakeRasterizer{caps: Capabilities{SupportsAlphaTextures: false, NativeFormat: FormatRGBA}}
	decoded := &fakeDecoderFont{
		glyphs: map[rune]RenderedGlyph{
			'A': {Pixels: make([]byte, 10*10), Width: 10, Height: 10, Advance: 12, BearingX: 0, TopOffset: 8, Ascender: 10, Descender: 2},
		},
		lineHeight: 14, ascender: 10, descender: 2,
	}
	f := &DynamicFont{
		Font:      newFont("body", FontKindDynamic),
		decoder:   decoded,
		raster:    raster,
		pageW:     defaultPageSize,
		pageH:     defaultPageSize,
		rawGlyphs: make(map[rune]RenderedGlyph),
	}
	f.Height = 12
	f.LineHeight = 14
	f.Descender = 2
	return f, raster
}

func TestDynamicFontCharacterRasterizesOnFirstUse(t *testing.T) {
	f, raster := newTestDynamicFont()
	def, ok := f.character('A')
	if !ok {
		t.Fatal("expected glyph 'A' to rasterize successfully")
	}
	if len(f.glyphPages) != 1 {
		t.Fatalf("got %d glyph pages, want 1 after first insertion", len(f.glyphPages))
	}
	if raster.writeCalls != 1 {
		t.Errorf("WriteImage calls = %d, want 1", raster.writeCalls)
	}
	if def.Advance != 12 {
		t.Errorf("Advance = %v, want 12", def.Advance)
	}
}

func TestDynamicFontCharacterCachesSecondLookup(t *testing.T) {
	f, raster := newTestDynamicFont()
	f.character('A')
	writesAfterFirst := raster.writeCalls
	f.character('A')
	if raster.writeCalls != writesAfterFirst {
		t.Errorf("WriteImage called again on cached lookup: %d vs %d", raster.writeCalls, writesAfterFirst)
	}
}

func TestDynamicFontCharacterMissReturnsFalse(t *testing.T) {
	f, _ := newTestDynamicFont()
	if _, ok := f.character('Z'); ok {
		t.Error("expected no glyph for an undecoded rune")
	}
}

func TestDynamicFontUsesRGBAWhenAlphaUnsupported(t *testing.T) {
	f, _ := newTestDynamicFont()
	f.character('A')
	if f.glyphPages[0].Format != FormatRGBA {
		t.Errorf("page format = %v, want RGBA since the fake rasterizer reports no alpha support", f.glyphPages[0].Format)
	}
}

func TestBuildStructuringElementSquareIsFullyOpaque(t *testing.T) {
	px, size := buildStructuringElement(BorderPrerenderSquare, 2)
	if size != 5 {
		t.Fatalf("size = %v, want 5 (1+2*ceil(2))", size)
	}
	for _, v := range px {
		if v != 255 {
			t.Errorf("square structuring element has a non-opaque pixel: %v", v)
			break
		}
	}
}

func TestBuildStructuringElementCircleFadesAtEdges(t *testing.T) {
	px, size := buildStructuringElement(BorderPrerenderCircle, 2)
	center := size / 2
	if px[center*size+center] == 0 {
		t.Error("expected circle structuring element center to be opaque")
	}
	if px[0] != 0 && px[0] > px[center*size+center] {
		t.Error("expected corner to be less opaque than center")
	}
}

func TestDilateGrowsBoundingBox(t *testing.T) {
	src := []byte{0, 0, 0, 0, 255, 0, 0, 0, 0} // 3x3 single bright pixel at center
	se, seSize := buildStructuringElement(BorderPrerenderSquare, 1)
	dst, dw, dh := dilate(src, 3, 3, se, seSize)
	if dw != 5 || dh != 5 {
		t.Fatalf("got %dx%d, want 5x5 (3x3 + 2*pad of 1)", dw, dh)
	}
	nonZero := 0
	for _, v := range dst {
		if v != 0 {
			nonZero++
		}
	}
	if nonZero <= 1 {
		t.Errorf("expected dilation to spread the single lit pixel to its neighbors, got %d nonzero pixels", nonZero)
	}
}

func TestSameThicknessPageToleratesSmallDifference(t *testing.T) {
	page := newBorderTextureContainer(&fakeTexture{loaded: true}, FormatAlpha, 64, 64, 2.0)
	if !page.sameThicknessPage(2.005) {
		t.Error("expected thickness within tolerance to match")
	}
	if page.sameThicknessPage(2.5) {
		t.Error("expected thickness outside tolerance not to match")
	}
}
