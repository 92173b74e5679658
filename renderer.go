package atres

// Renderer is the public entry point (§6): it owns a font registry, the
// renderer-level defaults markup tags override, and the four caches that
// keep repeated DrawText/MakeRenderLines calls cheap (§4.7).
type Renderer struct {
	raster   Rasterizer
	registry *FontRegistry
	opts     layoutOptions
	seqCfg   sequenceConfig

	defaultHorizontal Horizontal
	defaultVertical   Vertical

	textCache             *cache[RenderText]
	textUnformattedCache  *cache[RenderText]
	linesCache            *cache[[]RenderLine]
	linesUnformattedCache *cache[[]RenderLine]

	cacheSize int
}

// NewRenderer constructs a Renderer backed by raster, with library
// defaults matching §9: no shadow/border, 1px underline/strike-through,
// left-wrapped horizontal alignment, top vertical alignment.
func NewRenderer(raster Rasterizer) *Renderer {
	r := &Renderer{
		raster:            raster,
		registry:          newFontRegistry(),
		defaultHorizontal: HorizontalLeftWrapped,
		defaultVertical:   VerticalTop,
		cacheSize:         defaultCacheSize,
	}
	r.seqCfg = sequenceConfig{
		shadowColor:        Color{A: 1},
		shadowOffset:       Vec2{X: 1, Y: 1},
		borderColor:        Color{A: 1},
		borderThickness:    1,
		strikeThroughColor: ColorWhite,
		strikeThroughThick: 1,
		underlineColor:     ColorWhite,
		underlineThick:     1,
	}
	r.initCaches()
	return r
}

func (r *Renderer) initCaches() {
	revalid := func(rt RenderText) bool { return renderTextUsable(rt) }
	r.textCache = newCache[RenderText](r.cacheSize, revalid)
	r.textUnformattedCache = newCache[RenderText](r.cacheSize, revalid)
	r.linesCache = newCache[[]RenderLine](r.cacheSize, nil)
	r.linesUnformattedCache = newCache[[]RenderLine](r.cacheSize, nil)
}

// --- font management (§6) ------------------------------------------------

// RegisterFont adds font to the registry. If allowDefault is true and no
// default font is set, font becomes the default used when no explicit
// font name is given.
func (r *Renderer) RegisterFont(font fontHandle, allowDefault bool) error {
	if err := r.registry.Register(font, allowDefault); err != nil {
		return err
	}
	r.ClearCache()
	return nil
}

// RegisterFontAlias makes alias resolve to the same font as name.
func (r *Renderer) RegisterFontAlias(name, alias string) {
	r.registry.RegisterAlias(name, alias)
	r.ClearCache()
}

// UnregisterFont removes name (and its aliases) from the registry.
func (r *Renderer) UnregisterFont(name string) {
	r.registry.Unregister(name)
	r.ClearCache()
}

// HasFont reports whether name is registered.
func (r *Renderer) HasFont(name string) bool { return r.registry.Has(name) }

// DestroyAllFonts removes every registered font.
func (r *Renderer) DestroyAllFonts() {
	r.registry.DestroyAll()
	r.ClearCache()
}

// --- drawing (§6) ---------------------------------------------------------

// DrawText parses markup in text, lays it out against rect using the
// default font, and returns batched draw sequences, using the cache when
// an identical call was already made (§4.7). color tints the whole draw
// (white leaves glyphs unmodified) and offset nudges every line's origin;
// offset is part of the cache key, so a different offset is a different
// cache entry.
func (r *Renderer) DrawText(rect Rect, text string, h Horizontal, v Vertical, color Color, offset Vec2) RenderText {
	return r.drawTextWithFont(rect, "", text, h, v, color, offset)
}

// DrawTextWithFont is DrawText but starts the tag state machine with
// fontName active instead of the registry default, so a leading [f=...]
// tag isn't required to pick a non-default font.
func (r *Renderer) DrawTextWithFont(rect Rect, fontName, text string, h Horizontal, v Vertical, color Color, offset Vec2) RenderText {
	return r.drawTextWithFont(rect, fontName, text, h, v, color, offset)
}

func (r *Renderer) drawTextWithFont(rect Rect, fontName, text string, h Horizontal, v Vertical, color Color, offset Vec2) RenderText {
	key := textFingerprint(text, rect.Width, rect.Height, h, v, fontName, color, offset)
	if cached, ok := r.textCache.get(key); ok {
		return r.translate(cached, rect)
	}

	clean, tags := Parse(text)
	lineHeight, descender := r.fontMetrics(fontName)
	words := createWords(rect, clean, tags, r.opts, r.registry, fontName)
	lines := createLines(rect, words, lineLayoutParams{horizontal: h, vertical: v, offset: offset, lineHeight: lineHeight, descender: descender})

	cfg := r.seqCfg
	cfg.defaultFont = fontName
	cfg.defaultColor = color
	rt := createRenderText(rect, clean, lines, tags, r.registry, cfg)
	r.textCache.put(key, rt)
	return rt
}

// DrawTextUnformatted skips markup parsing entirely: text is drawn
// literally, with no tag-driven color/effect/font changes (§6, §7
// MarkupInUnformatted: a literal '[' is exactly what's drawn). color and
// offset behave exactly as in DrawText.
func (r *Renderer) DrawTextUnformatted(rect Rect, text string, h Horizontal, v Vertical, color Color, offset Vec2) RenderText {
	return r.drawTextUnformattedWithFont(rect, "", text, h, v, color, offset)
}

// DrawTextUnformattedWithFont is DrawTextUnformatted naming an explicit
// font instead of the registry default.
func (r *Renderer) DrawTextUnformattedWithFont(rect Rect, fontName, text string, h Horizontal, v Vertical, color Color, offset Vec2) RenderText {
	return r.drawTextUnformattedWithFont(rect, fontName, text, h, v, color, offset)
}

func (r *Renderer) drawTextUnformattedWithFont(rect Rect, fontName, text string, h Horizontal, v Vertical, color Color, offset Vec2) RenderText {
	key := textFingerprint(text, rect.Width, rect.Height, h, v, fontName, color, offset)
	if cached, ok := r.textUnformattedCache.get(key); ok {
		return r.translate(cached, rect)
	}

	var noTags []FormatTag
	lineHeight, descender := r.fontMetrics(fontName)
	words := createWords(rect, text, noTags, r.opts, r.registry, fontName)
	lines := createLines(rect, words, lineLayoutParams{horizontal: h, vertical: v, offset: offset, lineHeight: lineHeight, descender: descender})

	cfg := r.seqCfg
	cfg.defaultFont = fontName
	cfg.defaultColor = color
	rt := createRenderText(rect, text, lines, noTags, r.registry, cfg)
	r.textUnformattedCache.put(key, rt)
	return rt
}

// translate shifts a cached RenderText's geometry so it renders at rect's
// current origin; DrawText's fingerprint deliberately ignores rect.X/Y so
// a widget that moves but keeps the same size and text still hits cache.
func (r *Renderer) translate(rt RenderText, rect Rect) RenderText {
	if len(rt.Lines) == 0 {
		return rt
	}
	shiftX := rect.X - firstLineOriginX(rt.Lines)
	shiftY := rect.Y - firstLineOriginY(rt.Lines)
	if shiftX == 0 && shiftY == 0 {
		return rt
	}
	out := rt
	out.Lines = append([]RenderLine(nil), rt.Lines...)
	for i := range out.Lines {
		out.Lines[i].Rect = out.Lines[i].Rect.translated(shiftX, shiftY)
	}
	shiftSeqs := func(seqs []RenderSequence) []RenderSequence {
		cp := make([]RenderSequence, len(seqs))
		for i, s := range seqs {
			v := make([]Vertex, len(s.Vertices))
			for j, vv := range s.Vertices {
				vv.X += shiftX
				vv.Y += shiftY
				v[j] = vv
			}
			cp[i] = RenderSequence{Texture: s.Texture, Color: s.Color, MultiplyAlpha: s.MultiplyAlpha, Vertices: v}
		}
		return cp
	}
	shiftLining := func(seqs []RenderLiningSequence) []RenderLiningSequence {
		cp := make([]RenderLiningSequence, len(seqs))
		for i, s := range seqs {
			v := make([]Vertex, len(s.Vertices))
			for j, vv := range s.Vertices {
				vv.X += shiftX
				vv.Y += shiftY
				v[j] = vv
			}
			cp[i] = RenderLiningSequence{Color: s.Color, Vertices: v}
		}
		return cp
	}
	out.TextSequences = shiftSeqs(rt.TextSequences)
	out.ShadowSequences = shiftSeqs(rt.ShadowSequences)
	out.BorderSequences = shiftSeqs(rt.BorderSequences)
	out.TextLiningSequences = shiftLining(rt.TextLiningSequences)
	out.ShadowLiningSequences = shiftLining(rt.ShadowLiningSequences)
	out.BorderLiningSequences = shiftLining(rt.BorderLiningSequences)
	return out
}

func firstLineOriginX(lines []RenderLine) float64 {
	min := lines[0].Rect.X
	for _, l := range lines {
		if l.Rect.X < min {
			min = l.Rect.X
		}
	}
	return min
}

func firstLineOriginY(lines []RenderLine) float64 {
	return lines[0].Rect.Y
}

// --- lines only, no sequence build (§6) ------------------------------------

// MakeRenderLines lays out text with markup parsing but stops before
// building draw sequences, for callers that only need measurements
// (scroll extents, hit testing).
func (r *Renderer) MakeRenderLines(rect Rect, text string, h Horizontal, v Vertical) []RenderLine {
	key := linesFingerprint(text, rect.Width, rect.Height, h, v)
	if cached, ok := r.linesCache.get(key); ok {
		return cached
	}
	clean, tags := Parse(text)
	lineHeight, descender := r.fontMetrics("")
	words := createWords(rect, clean, tags, r.opts, r.registry, "")
	lines := createLines(rect, words, lineLayoutParams{horizontal: h, vertical: v, lineHeight: lineHeight, descender: descender})
	r.linesCache.put(key, lines)
	return lines
}

// MakeRenderLinesUnformatted is MakeRenderLines without markup parsing.
func (r *Renderer) MakeRenderLinesUnformatted(rect Rect, text string, h Horizontal, v Vertical) []RenderLine {
	key := linesFingerprint(text, rect.Width, rect.Height, h, v)
	if cached, ok := r.linesUnformattedCache.get(key); ok {
		return cached
	}
	lineHeight, descender := r.fontMetrics("")
	words := createWords(rect, text, nil, r.opts, r.registry, "")
	lines := createLines(rect, words, lineLayoutParams{horizontal: h, vertical: v, lineHeight: lineHeight, descender: descender})
	r.linesUnformattedCache.put(key, lines)
	return lines
}

// --- measurement (§6) ------------------------------------------------------

// GetTextWidth returns the widest line's advance when text is laid out
// unwrapped against an effectively infinite-width rect.
func (r *Renderer) GetTextWidth(text, fontName string) float64 {
	rect := Rect{Width: 1e9, Height: 1e9}
	clean, tags := Parse(text)
	words := createWords(rect, clean, tags, r.opts, r.registry, fontName)
	lineHeight, descender := r.fontMetrics(fontName)
	lines := createLines(rect, words, lineLayoutParams{horizontal: HorizontalLeft, vertical: VerticalTop, lineHeight: lineHeight, descender: descender})
	max := 0.0
	for _, l := range lines {
		if l.Advance > max {
			max = l.Advance
		}
	}
	return max
}

// GetTextAdvanceX is GetTextWidth for text guaranteed to be a single word
// with no newlines (e.g. one already-wrapped word needing remeasurement).
func (r *Renderer) GetTextAdvanceX(text, fontName string) float64 {
	return r.GetTextWidth(text, fontName)
}

// GetTextHeight returns the total block height text would occupy when
// wrapped to rectW.
func (r *Renderer) GetTextHeight(text string, rectW float64, fontName string) float64 {
	rect := Rect{Width: rectW, Height: 1e9}
	clean, tags := Parse(text)
	words := createWords(rect, clean, tags, r.opts, r.registry, fontName)
	lineHeight, descender := r.fontMetrics(fontName)
	lines := createLines(rect, words, lineLayoutParams{horizontal: HorizontalLeftWrapped, vertical: VerticalTop, lineHeight: lineHeight, descender: descender})
	return float64(len(lines)) * lineHeight
}

// GetFittingText truncates text, appending "..." as needed, so it fits
// within rect.Width on a single unwrapped line.
func (r *Renderer) GetFittingText(rect Rect, text, fontName string) string {
	return r.fitText(rect, text, fontName, true)
}

// GetFittingTextUnformatted is GetFittingText without markup parsing.
func (r *Renderer) GetFittingTextUnformatted(rect Rect, text, fontName string) string {
	return r.fitText(rect, text, fontName, false)
}

func (r *Renderer) fitText(rect Rect, text, fontName string, formatted bool) string {
	measure := func(s string) float64 {
		if formatted {
			return r.GetTextWidth(s, fontName)
		}
		clean := s
		words := createWords(rect, clean, nil, r.opts, r.registry, fontName)
		lineHeight, descender := r.fontMetrics(fontName)
		lines := createLines(Rect{Width: 1e9, Height: 1e9}, words, lineLayoutParams{horizontal: HorizontalLeft, vertical: VerticalTop, lineHeight: lineHeight, descender: descender})
		if len(lines) == 0 {
			return 0
		}
		return lines[0].Advance
	}
	if measure(text) <= rect.Width {
		return text
	}
	const ellipsis = "..."
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := string(runes[:n]) + ellipsis
		if measure(candidate) <= rect.Width {
			return candidate
		}
	}
	return ellipsis
}

func (r *Renderer) fontMetrics(fontName string) (lineHeight, descender float64) {
	handle, ok := r.registry.Get(fontName)
	if !ok {
		return 0, 0
	}
	fb := handle.fontBase()
	return fb.effectiveLineHeight(), fb.effectiveDescender()
}

// --- cache & default configuration (§4.7, §9) ------------------------------

// ClearCache discards every cached layout/sequence result. Called
// automatically whenever a setter below changes something that would make
// stale cache entries wrong.
func (r *Renderer) ClearCache() {
	r.textCache.clear()
	r.textUnformattedCache.clear()
	r.linesCache.clear()
	r.linesUnformattedCache.clear()
}

// SetCacheSize changes the eviction threshold for all four caches.
func (r *Renderer) SetCacheSize(n int) {
	r.cacheSize = n
	r.textCache.setLimit(n)
	r.textUnformattedCache.setLimit(n)
	r.linesCache.setLimit(n)
	r.linesUnformattedCache.setLimit(n)
}

// SetDefaultHorizontal/SetDefaultVertical store a default alignment on the
// Renderer. DrawText and MakeRenderLines take their alignment as an
// argument and do not read these values.
func (r *Renderer) SetDefaultHorizontal(h Horizontal) { r.defaultHorizontal = h }
func (r *Renderer) SetDefaultVertical(v Vertical)     { r.defaultVertical = v }

// SetShadowOffset/SetShadowColor set the defaults a bare [s] tag (no
// payload) falls back to.
func (r *Renderer) SetShadowOffset(offset Vec2) { r.seqCfg.shadowOffset = offset; r.ClearCache() }
func (r *Renderer) SetShadowColor(c Color)       { r.seqCfg.shadowColor = c; r.ClearCache() }

// SetBorderColor/SetBorderThickness set the defaults a bare [b] tag falls
// back to.
func (r *Renderer) SetBorderColor(c Color)          { r.seqCfg.borderColor = c; r.ClearCache() }
func (r *Renderer) SetBorderThickness(t float64)    { r.seqCfg.borderThickness = t; r.ClearCache() }

// SetStrikeThroughColor/Thickness and SetUnderlineColor/Thickness set the
// defaults a bare [t]/[u] tag falls back to.
func (r *Renderer) SetStrikeThroughColor(c Color)     { r.seqCfg.strikeThroughColor = c; r.ClearCache() }
func (r *Renderer) SetStrikeThroughThickness(t float64) {
	r.seqCfg.strikeThroughThick = t
	r.ClearCache()
}
func (r *Renderer) SetUnderlineColor(c Color) { r.seqCfg.underlineColor = c; r.ClearCache() }
func (r *Renderer) SetUnderlineThickness(t float64) {
	r.seqCfg.underlineThick = t
	r.ClearCache()
}

// SetGlobalOffsets controls whether shadow/border offsets are treated as
// screen-space pixels (true) or scaled by the active font scale (false,
// the default) (§9 open question).
func (r *Renderer) SetGlobalOffsets(v bool) { r.seqCfg.globalOffsets = v; r.ClearCache() }

// SetUseLegacyLineBreakParsing/SetUseIdeographWords switch the word
// builder's punctuation/ideograph handling (§4.3, §9).
func (r *Renderer) SetUseLegacyLineBreakParsing(v bool) {
	r.opts.useLegacyLineBreakParsing = v
	r.ClearCache()
}
func (r *Renderer) SetUseIdeographWords(v bool) {
	r.opts.useIdeographWords = v
	r.ClearCache()
}
