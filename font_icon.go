package atres

import "fmt"

// IconFont treats named resources (not codepoints) as glyphs, sharing the
// dynamic-font atlas packing mechanism but keyed by name instead of rune
// (§3). Icons always use RGBA pages since they're typically full-color
// art rather than a single-channel mask (§4.2).
type IconFont struct {
	Font

	raster Rasterizer
	// loadIcon resolves an icon name to a decoded RGBA bitmap; supplied
	// by the host application (file lookup is explicitly out of scope,
	// §1).
	loadIcon func(name string) (pixels []byte, width, height int, err error)

	spacing  float64
	bearingX float64
	offsetY  float64
}

// NewIconFont creates an IconFont that resolves icon names via loadIcon.
func NewIconFont(name string, raster Rasterizer, spacing, bearingX, offsetY float64, loadIcon func(string) ([]byte, int, int, error)) *IconFont {
	f := &IconFont{
		Font:     newFont(name, FontKindIcon),
		raster:   raster,
		loadIcon: loadIcon,
		spacing:  spacing,
		bearingX: bearingX,
		offsetY:  offsetY,
	}
	f.allowAlphaTextures = false
	return f
}

// icon returns the IconDefinition for name, rasterizing and inserting it
// into the atlas on first use.
func (f *IconFont) icon(name string) (IconDefinition, bool) {
	for _, page := range f.glyphPages {
		if c, ok := page.Icons[name]; ok {
			return c, true
		}
	}
	pixels, w, h, err := f.loadIcon(name)
	if err != nil {
		logf("atres: icon font %q: load %q: %v", f.Name, name, err)
		return IconDefinition{}, false
	}
	return f.insertIcon(name, pixels, w, h)
}

func (f *IconFont) insertIcon(name string, rgba []byte, w, h int) (IconDefinition, bool) {
	charWidth := w + safeSpace*2
	charHeight := h + safeSpace*2

	var page *TextureContainer
	if len(f.glyphPages) > 0 {
		last := f.glyphPages[len(f.glyphPages)-1]
		if sameRow, nextRow := last.fits(charWidth, charHeight); sameRow || nextRow {
			page = last
		}
	}
	pageIdx := len(f.glyphPages) - 1
	if page == nil {
		tex, err := f.raster.CreateTexture(f.pageSize(), f.pageSize(), FormatRGBA, Color{})
		if err != nil {
			logf("atres: icon font %q: atlas growth failed for %q: %v", f.Name, name, err)
			return IconDefinition{}, false
		}
		page = newTextureContainer(tex, FormatRGBA, f.pageSize(), f.pageSize())
		f.glyphPages = append(f.glyphPages, page)
		pageIdx = len(f.glyphPages) - 1
	}
	x, y := page.advance(charWidth, charHeight)
	if err := f.raster.WriteImage(page.Texture, x+safeSpace, y+safeSpace, w, h, FormatRGBA, rgba); err != nil {
		logf("atres: icon font %q: write %q: %v", f.Name, name, err)
		return IconDefinition{}, false
	}
	def := IconDefinition{
		Page:     pageIdx,
		Rect:     Rect{X: float64(x), Y: float64(y), Width: float64(charWidth), Height: float64(charHeight)},
		Advance:  float64(w) + f.spacing,
		BearingX: f.bearingX,
		OffsetY:  f.offsetY,
	}
	page.Icons[name] = def
	return def, true
}

func (f *IconFont) pageSize() int { return defaultPageSize }

var errIconNotFound = fmt.Errorf("atres: icon not found")
