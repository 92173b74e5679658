package atres

// thicknessTolerance is the bucket width within which two border
// thicknesses are considered the same atlas entry (§4.2 invariants).
const thicknessTolerance = 0.01

// CharacterDefinition locates one rasterized glyph inside an atlas page
// and carries the metrics needed to place it (§3).
type CharacterDefinition struct {
	Page    int
	Rect    Rect
	Advance float64
	// BearingX/BearingY are the offsets from the pen position to the
	// bitmap's top-left corner; BearingY is measured from the baseline,
	// stored here already flipped to a downward-positive convention.
	BearingX float64
	BearingY float64
	// OffsetY is the extra top padding the atlas insertion computed
	// (max(lineOffset-topOffset, 0)); see font_dynamic.go.
	OffsetY float64
}

// BorderCharacterDefinition is the border counterpart to
// CharacterDefinition: multiple entries may exist per codepoint, one per
// distinct Thickness within thicknessTolerance (§3).
type BorderCharacterDefinition struct {
	CharacterDefinition
	Thickness float64
}

func (b BorderCharacterDefinition) sameThickness(t float64) bool {
	d := b.Thickness - t
	return d > -thicknessTolerance && d < thicknessTolerance
}

// IconDefinition is CharacterDefinition keyed by name instead of
// codepoint (§3).
type IconDefinition = CharacterDefinition

// BorderIconDefinition is BorderCharacterDefinition keyed by name (§3).
type BorderIconDefinition = BorderCharacterDefinition

// TextureContainer is one atlas page: a rasterizer texture, a packing pen
// cursor, and the glyphs/icons it owns (§3, §4.2).
type TextureContainer struct {
	Texture Texture
	Format  PixelFormat
	Width   int
	Height  int

	PenX, PenY int
	RowHeight  int

	// Characters maps codepoint to its slot in this page.
	Characters map[rune]CharacterDefinition
	// Icons maps icon name to its slot in this page (IconFont only).
	Icons map[string]IconDefinition
}

func newTextureContainer(tex Texture, format PixelFormat, width, height int) *TextureContainer {
	return &TextureContainer{
		Texture:    tex,
		Format:     format,
		Width:      width,
		Height:     height,
		Characters: make(map[rune]CharacterDefinition),
		Icons:      make(map[string]IconDefinition),
	}
}

// fits reports whether a w×h box can be placed in the current row without
// starting a new row, and whether starting a new row would still fit on
// this page (§4.2 step 3).
func (c *TextureContainer) fits(w, h int) (sameRow, nextRow bool) {
	sameRow = c.PenX+w <= c.Width && c.PenY+max(c.RowHeight, h) <= c.Height
	nextRow = c.PenY+c.RowHeight+h <= c.Height
	return
}

// advance places a w×h box, growing the row/page pen cursors, and returns
// the top-left corner to write the bitmap at. Caller must have already
// checked fits.
func (c *TextureContainer) advance(w, h int) (x, y int) {
	if c.PenX+w > c.Width {
		c.PenX = 0
		c.PenY += c.RowHeight
		c.RowHeight = h
	} else if h > c.RowHeight {
		c.RowHeight = h
	}
	x, y = c.PenX, c.PenY
	c.PenX += w
	return
}

// BorderTextureContainer is a TextureContainer additionally keyed by the
// border thickness it was generated for (§3).
type BorderTextureContainer struct {
	TextureContainer
	Thickness        float64
	BorderCharacters map[rune]BorderCharacterDefinition
	BorderIcons      map[string]BorderIconDefinition
}

func newBorderTextureContainer(tex Texture, format PixelFormat, width, height int, thickness float64) *BorderTextureContainer {
	return &BorderTextureContainer{
		TextureContainer: *newTextureContainer(tex, format, width, height),
		Thickness:        thickness,
		BorderCharacters: make(map[rune]BorderCharacterDefinition),
		BorderIcons:      make(map[string]BorderIconDefinition),
	}
}
