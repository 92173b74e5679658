package atres

import "math"

// safeSpace and characterSpace are packing constants; don't change these,
// they're the values the historical source settled on after tuning across
// a variety of fonts (§4.2).
const (
	safeSpace      = 2
	characterSpace = 0
)

const defaultPageSize = 512

// DynamicFont rasterizes characters on demand via a Decoder, packing them
// into glyph (and, depending on BorderMode, border) atlas pages (§3, §4.2).
type DynamicFont struct {
	Font

	decoder  DecoderFont
	raster   Rasterizer
	pageW    int
	pageH    int
	fileData []byte

	// rawGlyphs retains the decoder's raw alpha bitmap for each inserted
	// codepoint so Prerender border modes can dilate it without reading
	// pixels back from the (possibly GPU-resident) atlas texture.
	rawGlyphs map[rune]RenderedGlyph
}

// NewDynamicFont opens fileData with decoder at the given base height and
// returns a DynamicFont backed by raster for atlas page allocation.
func NewDynamicFont(name string, fileData []byte, height float64, decoder Decoder, raster Rasterizer) (*DynamicFont, error) {
	df, err := decoder.Open(fileData, height)
	if err != nil {
		return nil, err
	}
	f := &DynamicFont{
		Font:      newFont(name, FontKindDynamic),
		decoder:   df,
		raster:    raster,
		pageW:     defaultPageSize,
		pageH:     defaultPageSize,
		fileData:  fileData,
		rawGlyphs: make(map[rune]RenderedGlyph),
	}
	f.Height = height
	f.LineHeight = df.LineHeight()
	f.Ascender = df.Ascender()
	f.Descender = df.Descender()
	return f, nil
}

// character returns the CharacterDefinition for r, rasterizing and
// inserting it into the atlas on first use (§4.2).
func (f *DynamicFont) character(r rune) (CharacterDefinition, bool) {
	for _, page := range f.glyphPages {
		if c, ok := page.Characters[r]; ok {
			return c, true
		}
	}
	g, ok := f.decoder.Glyph(r)
	if !ok {
		return CharacterDefinition{}, false
	}
	def, ok := f.insertGlyph(r, g)
	if ok {
		f.rawGlyphs[r] = g
	}
	return def, ok
}

// insertGlyph computes the glyph's safe box and packs it into the current
// (or a new) glyph page (§4.2 steps 2-4).
func (f *DynamicFont) insertGlyph(r rune, g RenderedGlyph) (CharacterDefinition, bool) {
	lineOffset := math.Ceil(f.Height - f.Descender)
	offsetY := math.Max(lineOffset-g.TopOffset, 0)
	bearingY := -math.Min(lineOffset-g.TopOffset, 0)

	charWidth := g.Width + safeSpace*2
	charHeight := g.Height + safeSpace*2 + int(offsetY)

	page, pageIdx, x, y, err := f.allocateGlyphSpace(charWidth, charHeight)
	if err != nil {
		logf("atres: font %q: atlas growth failed for U+%04X: %v", f.Name, r, err)
		return CharacterDefinition{}, false
	}

	writeX, writeY := x+safeSpace, y+safeSpace+int(offsetY)
	if err := f.writeGlyphBitmap(page, writeX, writeY, g); err != nil {
		logf("atres: font %q: write glyph U+%04X: %v", f.Name, r, err)
		return CharacterDefinition{}, false
	}

	def := CharacterDefinition{
		Page:     pageIdx,
		Rect:     Rect{X: float64(x), Y: float64(y), Width: float64(charWidth), Height: float64(charHeight)},
		Advance:  g.Advance,
		BearingX: g.BearingX,
		BearingY: lineOffset + g.Ascender + bearingY,
		OffsetY:  offsetY,
	}
	page.Characters[r] = def
	return def, true
}

// allocateGlyphSpace finds room for a w×h box in an existing glyph page,
// advancing to a new row, or allocates a brand-new page (§4.2 step 3).
func (f *DynamicFont) allocateGlyphSpace(w, h int) (page *TextureContainer, idx int, x, y int, err error) {
	w += characterSpace * 2
	h += characterSpace * 2
	if len(f.glyphPages) > 0 {
		page = f.glyphPages[len(f.glyphPages)-1]
		if sameRow, nextRow := page.fits(w, h); sameRow || nextRow {
			x, y = page.advance(w, h)
			return page, len(f.glyphPages) - 1, x, y, nil
		}
	}
	page, err = f.newGlyphPage()
	if err != nil {
		return nil, 0, 0, 0, err
	}
	x, y = page.advance(w, h)
	return page, len(f.glyphPages) - 1, x, y, nil
}

func (f *DynamicFont) newGlyphPage() (*TextureContainer, error) {
	format := FormatRGBA
	if f.allowAlphaTextures && f.raster.Capabilities().SupportsAlphaTextures {
		format = FormatAlpha
	}
	tex, err := f.raster.CreateTexture(f.pageW, f.pageH, format, Color{})
	if err != nil {
		return nil, err
	}
	page := newTextureContainer(tex, format, f.pageW, f.pageH)
	f.glyphPages = append(f.glyphPages, page)
	return page, nil
}

// writeGlyphBitmap broadcasts g's alpha bitmap into page at (x, y), in
// whatever format the page was allocated with (§4.2: "RGB=255" broadcast
// when the page is RGBA rather than single-channel Alpha).
func (f *DynamicFont) writeGlyphBitmap(page *TextureContainer, x, y int, g RenderedGlyph) error {
	if g.Width == 0 || g.Height == 0 {
		return nil
	}
	switch page.Format {
	case FormatAlpha:
		return f.raster.WriteImage(page.Texture, x, y, g.Width, g.Height, FormatAlpha, g.Pixels)
	default:
		rgba := make([]byte, g.Width*g.Height*4)
		for i, a := range g.Pixels {
			rgba[i*4+0] = 255
			rgba[i*4+1] = 255
			rgba[i*4+2] = 255
			rgba[i*4+3] = a
		}
		return f.raster.WriteImage(page.Texture, x, y, g.Width, g.Height, FormatRGBA, rgba)
	}
}

// borderCharacter returns the BorderCharacterDefinition for r at the
// current border mode/thickness, rasterizing and inserting it on first
// use. Software mode has no atlas entry and always reports ok=false; the
// sequence builder handles Software borders by offset-copying the base
// glyph instead (§4.2).
func (f *DynamicFont) borderCharacter(r rune, thickness float64) (BorderCharacterDefinition, bool) {
	if f.borderMode == BorderSoftware {
		return BorderCharacterDefinition{}, false
	}
	for _, page := range f.borderPages {
		if !page.sameThicknessPage(thickness) {
			continue
		}
		if c, ok := page.BorderCharacters[r]; ok {
			return c, true
		}
	}

	var pixels []byte
	var w, h int
	var offX, offY float64
	switch f.borderMode {
	case BorderNative:
		bg, ok := f.decoder.BorderGlyph(r, thickness)
		if !ok {
			logf("atres: font %q: decoder cannot stroke U+%04X natively, falling back to Prerender", f.Name, r)
			return f.borderCharacterPrerender(r, thickness, BorderPrerenderSquare)
		}
		pixels, w, h, offX, offY = bg.Pixels, bg.Width, bg.Height, bg.OffsetX, bg.OffsetY
	default:
		return f.borderCharacterPrerender(r, thickness, f.borderMode)
	}
	return f.insertBorderGlyph(r, thickness, pixels, w, h, offX, offY)
}

func (f *DynamicFont) borderCharacterPrerender(r rune, thickness float64, mode BorderMode) (BorderCharacterDefinition, bool) {
	base, ok := f.rawGlyphs[r]
	if !ok {
		base, ok = f.decoder.Glyph(r)
		if !ok {
			return BorderCharacterDefinition{}, false
		}
		f.rawGlyphs[r] = base
	}
	se, seSize := buildStructuringElement(mode, thickness)
	dilated, dw, dh := dilate(base.Pixels, base.Width, base.Height, se, seSize)
	pad := seSize / 2
	return f.insertBorderGlyph(r, thickness, dilated, dw, dh, base.BearingX-float64(pad), -float64(pad))
}

func (f *DynamicFont) insertBorderGlyph(r rune, thickness float64, pixels []byte, w, h int, offX, offY float64) (BorderCharacterDefinition, bool) {
	charWidth := w + safeSpace*2
	charHeight := h + safeSpace*2

	page, err := f.findOrCreateBorderPage(thickness, charWidth, charHeight)
	if err != nil {
		logf("atres: font %q: border atlas growth failed for U+%04X: %v", f.Name, r, err)
		return BorderCharacterDefinition{}, false
	}
	x, y := page.advance(charWidth, charHeight)
	if err := f.writeBorderBitmap(&page.TextureContainer, x+safeSpace, y+safeSpace, w, h, pixels); err != nil {
		logf("atres: font %q: write border U+%04X: %v", f.Name, r, err)
		return BorderCharacterDefinition{}, false
	}

	def := BorderCharacterDefinition{
		CharacterDefinition: CharacterDefinition{
			Rect:     Rect{X: float64(x), Y: float64(y), Width: float64(charWidth), Height: float64(charHeight)},
			BearingX: offX,
			BearingY: offY,
		},
		Thickness: thickness,
	}
	page.BorderCharacters[r] = def
	return def, true
}

func (f *DynamicFont) findOrCreateBorderPage(thickness float64, w, h int) (*BorderTextureContainer, error) {
	for _, page := range f.borderPages {
		if !page.sameThicknessPage(thickness) {
			continue
		}
		if sameRow, nextRow := page.fits(w, h); sameRow || nextRow {
			return page, nil
		}
	}
	format := FormatAlpha
	if !f.raster.Capabilities().SupportsAlphaTextures {
		format = FormatRGBA
	}
	tex, err := f.raster.CreateTexture(f.pageW, f.pageH, format, Color{})
	if err != nil {
		return nil, err
	}
	page := newBorderTextureContainer(tex, format, f.pageW, f.pageH, thickness)
	f.borderPages = append(f.borderPages, page)
	return page, nil
}

func (page *BorderTextureContainer) sameThicknessPage(t float64) bool {
	d := page.Thickness - t
	return d > -thicknessTolerance && d < thicknessTolerance
}

func (f *DynamicFont) writeBorderBitmap(page *TextureContainer, x, y, w, h int, pixels []byte) error {
	if w == 0 || h == 0 {
		return nil
	}
	if page.Format == FormatAlpha {
		return f.raster.WriteImage(page.Texture, x, y, w, h, FormatAlpha, pixels)
	}
	rgba := make([]byte, w*h*4)
	for i, a := range pixels {
		rgba[i*4+0] = 255
		rgba[i*4+1] = 255
		rgba[i*4+2] = 255
		rgba[i*4+3] = a
	}
	return f.raster.WriteImage(page.Texture, x, y, w, h, FormatRGBA, rgba)
}

// --- border structuring elements and dilation (§4.2) --------------------

// buildStructuringElement returns a size×size grayscale alpha mask used
// to dilate a glyph's alpha channel into a border shape.
func buildStructuringElement(mode BorderMode, thickness float64) (pixels []byte, size int) {
	size = 1 + 2*int(math.Ceil(thickness))
	pixels = make([]byte, size*size)
	center := float64(size-1) / 2

	switch mode {
	case BorderPrerenderSquare:
		for i := range pixels {
			pixels[i] = 255
		}
	case BorderPrerenderCircle:
		for yy := 0; yy < size; yy++ {
			for xx := 0; xx < size; xx++ {
				dx := float64(xx) - center
				dy := float64(yy) - center
				dist := math.Hypot(dx, dy)
				a := clamp01(thickness + 1 - dist)
				pixels[yy*size+xx] = byte(a * 255)
			}
		}
	case BorderPrerenderDiamond:
		for yy := 0; yy < size; yy++ {
			for xx := 0; xx < size; xx++ {
				dx := math.Abs(float64(xx) - center)
				dy := math.Abs(float64(yy) - center)
				a := clamp01(thickness + 1 - (dx + dy))
				pixels[yy*size+xx] = byte(a * 255)
			}
		}
	}
	return pixels, size
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// dilate performs grayscale morphological dilation of src (srcW×srcH,
// one byte per pixel) by the structuring element se (seSize×seSize),
// returning a padded result.
func dilate(src []byte, srcW, srcH int, se []byte, seSize int) (dst []byte, dstW, dstH int) {
	pad := seSize / 2
	dstW = srcW + 2*pad
	dstH = srcH + 2*pad
	dst = make([]byte, dstW*dstH)
	for sy := 0; sy < srcH; sy++ {
		for sx := 0; sx < srcW; sx++ {
			v := int(src[sy*srcW+sx])
			if v == 0 {
				continue
			}
			for ky := 0; ky < seSize; ky++ {
				for kx := 0; kx < seSize; kx++ {
					w := int(se[ky*seSize+kx])
					if w == 0 {
						continue
					}
					contrib := v * w / 255
					idx := (sy+ky)*dstW + (sx + kx)
					if contrib > int(dst[idx]) {
						dst[idx] = byte(contrib)
					}
				}
			}
		}
	}
	return dst, dstW, dstH
}
