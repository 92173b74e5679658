package atres

// RenderedGlyph is the per-codepoint rasterization result a Decoder
// produces for DynamicFont (§4.2 step 1).
type RenderedGlyph struct {
	// Pixels is a row-major single-channel (alpha) bitmap, Width*Height
	// bytes.
	Pixels []byte
	Width  int
	Height int

	Advance   float64
	BearingX  float64
	LeftOffset float64
	TopOffset  float64
	Ascender   float64
	Descender  float64
}

// RenderedBorderGlyph is the Native-border-mode counterpart to
// RenderedGlyph: a decoder that can stroke outlines directly returns one
// of these instead of atres generating a Prerender dilation itself (§4.2).
type RenderedBorderGlyph struct {
	Pixels []byte
	Width  int
	Height int

	// OffsetX/OffsetY describe how the (typically larger) stroked bitmap
	// is positioned relative to the unstroked glyph's origin.
	OffsetX float64
	OffsetY float64
}

// SystemFontInfo describes one installed system font as enumerated by
// Decoder.SystemFonts.
type SystemFontInfo struct {
	Name string
	Path string
}

// Decoder is the external collaborator that turns font file bytes into
// rasterized glyphs and metrics (§1, §6). atres's core package never
// imports an implementation of this interface; see backend/opentypefont
// for a reference adapter built on golang.org/x/image.
type Decoder interface {
	// Open parses font file bytes at a requested base pixel height,
	// returning a handle used by subsequent Glyph/BorderGlyph/LineHeight/
	// Ascender/Descender calls. height is advisory; exact per-glyph
	// metrics come from Glyph.
	Open(data []byte, height float64) (DecoderFont, error)

	// SystemFonts enumerates installed system fonts available without an
	// explicit file. Nothing in the atres package calls it; it is exposed
	// for the host application.
	SystemFonts() []SystemFontInfo

	// ResolveSystemFont resolves a family name to file bytes.
	ResolveSystemFont(name string) ([]byte, error)
}

// DecoderFont is a font file opened by Decoder.Open, ready to rasterize
// individual codepoints on demand.
type DecoderFont interface {
	// Glyph rasterizes a single codepoint at the font's configured
	// height, or reports ok=false if the font has no such glyph.
	Glyph(r rune) (g RenderedGlyph, ok bool)

	// BorderGlyph rasterizes a stroked variant of r at the given
	// thickness for BorderNative mode, or reports ok=false if the
	// decoder cannot stroke directly (the font then falls back to
	// square Prerender dilation).
	BorderGlyph(r rune, thickness float64) (g RenderedBorderGlyph, ok bool)

	// LineHeight, Ascender and Descender report font-wide metrics at the
	// height passed to Open.
	LineHeight() float64
	Ascender() float64
	Descender() float64
}
