package atres

import (
	"strconv"
	"strings"
)

// FontKind distinguishes the three Font variants described in §3.
type FontKind uint8

const (
	FontKindBitmap FontKind = iota
	FontKindDynamic
	FontKindIcon
)

// Font is a named source of glyph bitmaps and metrics at a base pixel
// height (§3). BitmapFont, DynamicFont and IconFont all embed Font.
type Font struct {
	Name string
	Kind FontKind

	Height     float64
	LineHeight float64
	Ascender   float64
	Descender  float64

	// baseScale is fixed at load time (from a Scale= definition key);
	// scale is mutable and reset to 1.0 on every registry lookup, then
	// multiplied by a caller-supplied name:scale suffix (§3, §9).
	baseScale float64
	scale     float64

	StrikeThroughOffset float64
	UnderlineOffset     float64
	ItalicSkewRatio     float64

	borderMode BorderMode

	glyphPages  []*TextureContainer
	borderPages []*BorderTextureContainer

	// allowAlphaTextures is false for IconFont (§4.2); icons always use
	// RGBA pages since they're typically full-color art, not glyph masks.
	allowAlphaTextures bool
}

func newFont(name string, kind FontKind) Font {
	return Font{
		Name:               name,
		Kind:               kind,
		baseScale:          1,
		scale:              1,
		allowAlphaTextures: true,
	}
}

// Scale returns the font's current transient scale multiplier.
func (f *Font) Scale() float64 { return f.scale }

// resetScale restores the transient scale to 1.0; called by the registry
// on every lookup before applying a name:scale suffix (§3).
func (f *Font) resetScale() { f.scale = 1 }

// effectiveHeight/LineHeight/etc multiply the raw stored value by
// scale*baseScale, matching the historical source's Font::getHeight family.
func (f *Font) effectiveHeight() float64     { return f.Height * f.scale * f.baseScale }
func (f *Font) effectiveLineHeight() float64 { return f.LineHeight * f.scale * f.baseScale }
func (f *Font) effectiveDescender() float64  { return f.Descender * f.scale * f.baseScale }
func (f *Font) effectiveStrikeThroughOffset() float64 {
	return f.StrikeThroughOffset * f.scale * f.baseScale
}
func (f *Font) effectiveUnderlineOffset() float64 {
	return f.UnderlineOffset * f.scale * f.baseScale
}

// BorderMode returns the font's configured border rendering mode.
func (f *Font) BorderMode() BorderMode { return f.borderMode }

// SetBorderMode configures how this font renders outlines. BitmapFont
// cannot rasterize new border bitmaps (it has no decoder), so any mode
// other than Software is rejected with a warning and a no-op on any font
// that is not a DynamicFont; a DynamicFont also accepts the Prerender*
// and Native modes.
func (f *Font) SetBorderMode(mode BorderMode) {
	if f.Kind != FontKindDynamic && mode != BorderSoftware {
		logf("atres: font %q: border mode %v requires a DynamicFont; keeping Software", f.Name, mode)
		return
	}
	if mode != f.borderMode {
		f.borderPages = nil
	}
	f.borderMode = mode
}

// GetTextures returns every rasterizer texture backing this font, glyph
// pages first then border pages, for callers that need to enumerate GPU
// resources (e.g. eviction bookkeeping).
func (f *Font) GetTextures() []Texture {
	out := make([]Texture, 0, len(f.glyphPages)+len(f.borderPages))
	for _, p := range f.glyphPages {
		out = append(out, p.Texture)
	}
	for _, p := range f.borderPages {
		out = append(out, p.Texture)
	}
	return out
}

// allTexturesLoaded reports whether every page this font currently owns
// still reports itself as loaded (§4.7 TextureInvalid).
func (f *Font) allTexturesLoaded() bool {
	for _, p := range f.glyphPages {
		if p.Texture != nil && !p.Texture.Loaded() {
			return false
		}
	}
	for _, p := range f.borderPages {
		if p.Texture != nil && !p.Texture.Loaded() {
			return false
		}
	}
	return true
}

// splitNameScale parses a lookup name of the form "base:scale" into its
// base name and multiplier (§3, §4.2). A name without a colon, or with a
// non-numeric suffix, returns the whole string and scale 1.0 unchanged.
func splitNameScale(name string) (base string, scale float64) {
	idx := strings.LastIndexByte(name, ':')
	if idx < 0 {
		return name, 1
	}
	suffix := name[idx+1:]
	v, err := strconv.ParseFloat(suffix, 64)
	if err != nil {
		return name, 1
	}
	return name[:idx], v
}
