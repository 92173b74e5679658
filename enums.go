package atres

// Horizontal selects horizontal line alignment within a rectangle.
type Horizontal uint8

const (
	HorizontalLeft Horizontal = iota
	HorizontalCenter
	HorizontalRight
	HorizontalJustified
	HorizontalLeftWrapped
	HorizontalRightWrapped
	HorizontalCenterWrapped
	HorizontalJustifiedWrapped
	HorizontalLeftWrappedUntrimmed
	HorizontalRightWrappedUntrimmed
	HorizontalCenterWrappedUntrimmed
	HorizontalJustifiedWrappedUntrimmed
)

// isWrapped reports whether h is one of the *Wrapped or *WrappedUntrimmed
// variants, meaning the line wrapper may break lines at rect.Width.
func (h Horizontal) isWrapped() bool {
	return h >= HorizontalLeftWrapped
}

// isUntrimmed reports whether h is one of the *WrappedUntrimmed variants,
// meaning leading/trailing whitespace words are kept rather than trimmed.
func (h Horizontal) isUntrimmed() bool {
	return h >= HorizontalLeftWrappedUntrimmed
}

// isLeft reports whether h resolves to left alignment (trimmed or not).
func (h Horizontal) isLeft() bool {
	switch h {
	case HorizontalLeft, HorizontalLeftWrapped, HorizontalLeftWrappedUntrimmed:
		return true
	}
	return false
}

// isCenter reports whether h resolves to center alignment.
func (h Horizontal) isCenter() bool {
	switch h {
	case HorizontalCenter, HorizontalCenterWrapped, HorizontalCenterWrappedUntrimmed:
		return true
	}
	return false
}

// isRight reports whether h resolves to right alignment.
func (h Horizontal) isRight() bool {
	switch h {
	case HorizontalRight, HorizontalRightWrapped, HorizontalRightWrappedUntrimmed:
		return true
	}
	return false
}

// isJustified reports whether h resolves to justified alignment.
func (h Horizontal) isJustified() bool {
	switch h {
	case HorizontalJustified, HorizontalJustifiedWrapped, HorizontalJustifiedWrappedUntrimmed:
		return true
	}
	return false
}

// Vertical selects vertical block alignment within a rectangle.
type Vertical uint8

const (
	VerticalTop Vertical = iota
	VerticalCenter
	VerticalBottom
)

// TextEffect selects the per-character overlay effect an enclosing tag
// scope applies: none, a drop shadow, or an outline border. Only one can
// be active at a time (§9 glossary: "effect mode").
type TextEffect uint8

const (
	EffectNone TextEffect = iota
	EffectShadow
	EffectBorder
)

// BorderMode selects how a font renders glyph outlines.
type BorderMode uint8

const (
	// BorderSoftware draws 8 offset copies of the base glyph at render
	// time; no atlas entry is created.
	BorderSoftware BorderMode = iota
	// BorderNative asks the decoder to rasterize a stroked glyph directly.
	BorderNative
	// BorderPrerenderSquare dilates the glyph alpha with a square
	// structuring element and caches the result in a border page.
	BorderPrerenderSquare
	// BorderPrerenderCircle dilates with an anti-aliased circular
	// structuring element.
	BorderPrerenderCircle
	// BorderPrerenderDiamond dilates with a Manhattan-distance diamond
	// structuring element.
	BorderPrerenderDiamond
)

// isPrerender reports whether m bakes a border into an atlas page (Native
// or one of the Prerender modes), as opposed to Software which draws
// offset copies at render time with no atlas entry.
func (m BorderMode) isPrerender() bool {
	return m != BorderSoftware
}

// TagType enumerates the markup events produced by Parse (§4.1) and
// consumed by the tag state machine (§4.5).
type TagType uint8

const (
	TagEscape TagType = iota
	TagFont
	TagIcon
	TagColor
	TagScale
	TagNoEffect
	TagShadow
	TagBorder
	TagStrikeThrough
	TagUnderline
	TagItalic
	TagHide
	TagIgnoreFormatting
	TagClose
	TagCloseConsume
)
