package atres

import (
	"math"
	"unicode/utf8"
)

// RenderSequence is a draw batch of textured vertices sharing one texture,
// color, and alpha-multiply mode (§3, §4.6).
type RenderSequence struct {
	Texture       Texture
	Color         Color
	MultiplyAlpha bool
	Vertices      []Vertex
}

// RenderLiningSequence is the untextured counterpart used for
// strike-through/underline overlays (§3).
type RenderLiningSequence struct {
	Color    Color
	Vertices []Vertex
}

// RenderText is the final per-call layout artifact: three textured
// sequence lists (shadow, border, text) plus their corresponding lining
// overlays, ready to be drawn back-to-front in that order (§3, §4.6).
type RenderText struct {
	Lines []RenderLine

	ShadowSequences []RenderSequence
	BorderSequences []RenderSequence
	TextSequences   []RenderSequence

	ShadowLiningSequences []RenderLiningSequence
	BorderLiningSequences []RenderLiningSequence
	TextLiningSequences   []RenderLiningSequence
}

// sequenceConfig carries the renderer-level defaults that seed the tag
// state machine for a createRenderText call (§9: owned state on the
// Renderer value, passed explicitly rather than read from a shared
// singleton).
type sequenceConfig struct {
	defaultFont         string
	defaultColor        Color
	shadowOffset        Vec2
	shadowColor         Color
	borderColor         Color
	borderThickness     float64
	strikeThroughColor  Color
	strikeThroughThick  float64
	underlineColor      Color
	underlineThick      float64
	globalOffsets       bool
}

// batchBuilder accumulates one open RenderSequence and flushes it to dst
// whenever the (texture, color, multiplyAlpha) key changes (§4.6 step 3).
type batchBuilder struct {
	tex           Texture
	color         Color
	multiplyAlpha bool
	vertices      []Vertex
	open          bool
	dst           *[]RenderSequence
}

func (b *batchBuilder) ensure(tex Texture, color Color, multiplyAlpha bool) {
	if b.open && b.tex == tex && b.color == color && b.multiplyAlpha == multiplyAlpha {
		return
	}
	b.flush()
	b.tex, b.color, b.multiplyAlpha, b.open = tex, color, multiplyAlpha, true
}

func (b *batchBuilder) add(v ...Vertex) {
	b.vertices = append(b.vertices, v...)
}

func (b *batchBuilder) flush() {
	if b.open && len(b.vertices) > 0 {
		*b.dst = append(*b.dst, RenderSequence{Texture: b.tex, Color: b.color, MultiplyAlpha: b.multiplyAlpha, Vertices: b.vertices})
	}
	b.vertices = nil
	b.open = false
}

type liningBuilder struct {
	color    Color
	vertices []Vertex
	open     bool
	dst      *[]RenderLiningSequence
}

func (b *liningBuilder) ensure(color Color) {
	if b.open && b.color == color {
		return
	}
	b.flush()
	b.color, b.open = color, true
}

func (b *liningBuilder) add(v ...Vertex) {
	b.vertices = append(b.vertices, v...)
}

func (b *liningBuilder) flush() {
	if b.open && len(b.vertices) > 0 {
		*b.dst = append(*b.dst, RenderLiningSequence{Color: b.color, Vertices: b.vertices})
	}
	b.vertices = nil
	b.open = false
}

// createRenderText converts a wrapped, aligned layout into batched draw
// sequences, inserting shadow/border/strike-through/underline geometry
// per the active tag state at each character (§4.6).
func createRenderText(rect Rect, cleanText string, lines []RenderLine, tags []FormatTag, registry *FontRegistry, cfg sequenceConfig) RenderText {
	rt := RenderText{Lines: lines}

	text := &batchBuilder{dst: &rt.TextSequences}
	shadow := &batchBuilder{dst: &rt.ShadowSequences}
	border := &batchBuilder{dst: &rt.BorderSequences}
	textLining := &liningBuilder{dst: &rt.TextLiningSequences}
	shadowLining := &liningBuilder{dst: &rt.ShadowLiningSequences}
	borderLining := &liningBuilder{dst: &rt.BorderLiningSequences}

	defaultColor := cfg.defaultColor
	if defaultColor == (Color{}) {
		defaultColor = ColorWhite
	}
	state := newTagState(cfg.defaultFont, defaultColor, cfg.shadowOffset, cfg.shadowColor, cfg.borderColor, cfg.borderThickness,
		cfg.strikeThroughThick, cfg.underlineThick)
	state.strikeThroughColor = cfg.strikeThroughColor
	state.underlineColor = cfg.underlineColor
	tagIdx := 0
	applyUpTo := func(pos int) {
		for tagIdx < len(tags) && tags[tagIdx].Start <= pos {
			state.apply(tags[tagIdx])
			tagIdx++
		}
	}

	for li := range lines {
		line := &lines[li]
		for wi := range line.Words {
			w := &line.Words[wi]
			wordX := line.Rect.X + line.WordX[wi]

			if w.IsNewline {
				applyUpTo(w.Start + 1)
				continue
			}
			if w.IsWhitespace {
				applyUpTo(w.Start + len(w.Text))
				continue
			}
			if w.IsIcon {
				applyUpTo(w.Start)
				emitIcon(registry, &state, text, wordX, line.Rect.Y, line.Rect.Height, w)
				applyUpTo(w.Start + len(w.Text))
				continue
			}

			pos := w.Start
			for ci, r := range []rune(w.Text) {
				applyUpTo(pos)
				if ci >= len(w.CharXs) {
					pos += utf8.RuneLen(r)
					continue
				}
				x := wordX + w.CharXs[ci]
				y := line.Rect.Y
				h := w.CharHeights[ci]

				if r != ' ' && r != '\t' && r != unicodeZeroWidthSpace {
					emitChar(registry, &state, text, shadow, border, textLining, shadowLining, borderLining,
						x, y, line.Rect.Height, h, r, cfg, rect)
				}
				pos += utf8.RuneLen(r)
			}
			applyUpTo(w.Start + len(w.Text))
		}
	}

	text.flush()
	shadow.flush()
	border.flush()
	textLining.flush()
	shadowLining.flush()
	borderLining.flush()

	optimizeSequences(&rt.TextSequences)
	optimizeSequences(&rt.ShadowSequences)
	optimizeSequences(&rt.BorderSequences)
	optimizeLiningSequences(&rt.TextLiningSequences)
	optimizeLiningSequences(&rt.ShadowLiningSequences)
	optimizeLiningSequences(&rt.BorderLiningSequences)

	return rt
}

func emitIcon(registry *FontRegistry, state *tagState, text *batchBuilder, x, lineY, lineHeight float64, w *RenderWord) {
	if registry == nil || state.iconFont == "" {
		return
	}
	handle, ok := registry.Get(state.iconFont)
	if !ok {
		return
	}
	icon, ok := handle.(*IconFont)
	if !ok {
		return
	}
	def, ok := icon.icon(w.IconName)
	if !ok {
		return
	}
	y := lineY + (lineHeight-def.Rect.Height*state.scale)/2 + def.OffsetY*state.scale
	page := icon.glyphPages[def.Page]
	quad := buildQuad(x, y, def.Rect.Width*state.scale, def.Rect.Height*state.scale, def.Rect, page.Width, page.Height, ColorWhite)
	text.ensure(page.Texture, ColorWhite, true)
	text.add(quad...)
}

// emitChar places one glyph's text quad and, depending on the active
// effect/lining flags, its shadow/border/strike-through/underline
// geometry (§4.6 steps 2-9).
func emitChar(registry *FontRegistry, state *tagState,
	text, shadow, border *batchBuilder,
	textLining, shadowLining, borderLining *liningBuilder,
	x, y, lineHeight, charHeight float64, r rune, cfg sequenceConfig, bounds Rect) {

	if registry == nil {
		return
	}
	handle, ok := registry.Get(state.fontName)
	if !ok {
		return
	}
	def, ok := lookupCharacter(handle, r)
	if !ok {
		return
	}
	font := handle.fontBase()
	pages := font.glyphPages
	if def.Page < 0 || def.Page >= len(pages) {
		return
	}
	page := pages[def.Page]

	gy := y + def.OffsetY*state.scale
	quad := buildQuad(x, gy, def.Rect.Width*state.scale, def.Rect.Height*state.scale, def.Rect, page.Width, page.Height, state.color)
	text.ensure(page.Texture, state.color, true)
	text.add(quad...)

	offsetScale := state.scale
	if cfg.globalOffsets {
		offsetScale = 1
	}

	switch state.effect {
	case EffectShadow:
		sx := x + state.shadowOffset.X*offsetScale
		sy := gy + state.shadowOffset.Y*offsetScale
		sq := buildQuad(sx, sy, def.Rect.Width*state.scale, def.Rect.Height*state.scale, def.Rect, page.Width, page.Height, state.shadowColor)
		shadow.ensure(page.Texture, state.shadowColor, true)
		shadow.add(sq...)

	case EffectBorder:
		emitBorder(handle, border, x, gy, def, page, r, state, cfg)
	}

	if state.strikeThroughActive {
		t := state.strikeThroughThickness * state.scale
		sy := y + (charHeight-t)/2 + font.effectiveStrikeThroughOffset()
		emitLining(textLining, x, sy, def.Advance0(state), t, state.strikeThroughColor, bounds)
	}
	if state.underlineActive {
		t := state.underlineThickness * state.scale
		sy := y + charHeight + font.effectiveUnderlineOffset()
		emitLining(textLining, x, sy, def.Advance0(state), t, state.underlineColor, bounds)
	}
}

// Advance0 returns the glyph's advance width scaled by state's active
// scale; a tiny helper kept on CharacterDefinition so emitChar reads
// naturally at call sites.
func (c CharacterDefinition) Advance0(state tagState) float64 {
	return c.Advance * state.scale
}

func emitBorder(handle fontHandle, border *batchBuilder, x, y float64, def CharacterDefinition, page *TextureContainer, r rune, state *tagState, cfg sequenceConfig) {
	font := handle.fontBase()
	if font.borderMode == BorderSoftware {
		t := state.borderThickness * state.scale
		diag := t * math.Sqrt2 / 2
		offsets := [][2]float64{
			{-diag, -diag}, {diag, -diag}, {-diag, diag}, {diag, diag},
			{-t, 0}, {t, 0}, {0, -t}, {0, t},
		}
		border.ensure(page.Texture, state.borderColor, true)
		for _, o := range offsets {
			q := buildQuad(x+o[0], y+o[1], def.Rect.Width*state.scale, def.Rect.Height*state.scale, def.Rect, page.Width, page.Height, state.borderColor)
			border.add(q...)
		}
		return
	}

	df, ok := handle.(*DynamicFont)
	if !ok {
		return
	}
	bdef, ok := df.borderCharacter(r, state.borderThickness)
	if !ok {
		return
	}
	for _, p := range df.borderPages {
		if !p.sameThicknessPage(state.borderThickness) {
			continue
		}
		if _, has := p.BorderCharacters[r]; !has {
			continue
		}
		bx := x + bdef.BearingX*state.scale
		by := y + bdef.BearingY*state.scale
		q := buildQuad(bx, by, bdef.Rect.Width*state.scale, bdef.Rect.Height*state.scale, bdef.Rect, p.Width, p.Height, state.borderColor)
		border.ensure(p.Texture, state.borderColor, false)
		border.add(q...)
		return
	}
}

func emitLining(dst *liningBuilder, x, y, width, thickness float64, color Color, bounds Rect) {
	if thickness <= 0 || width <= 0 {
		return
	}
	clipped, ok := Rect{X: x, Y: y, Width: width, Height: thickness}.clip(bounds)
	if !ok || clipped.Width <= 0 || clipped.Height <= 0 {
		return
	}
	dst.ensure(color)
	dst.add(plainQuad(clipped.X, clipped.Y, clipped.Width, clipped.Height, color)...)
}

// buildQuad emits six vertices (two triangles) for a w×h textured quad at
// (x, y), sampling from the atlas rect src within a page of the given
// dimensions.
func buildQuad(x, y, w, h float64, src Rect, pageW, pageH int, color Color) []Vertex {
	u0 := src.X / float64(pageW)
	v0 := src.Y / float64(pageH)
	u1 := (src.X + src.Width) / float64(pageW)
	v1 := (src.Y + src.Height) / float64(pageH)

	tl := Vertex{X: x, Y: y, U: u0, V: v0, Color: color}
	tr := Vertex{X: x + w, Y: y, U: u1, V: v0, Color: color}
	bl := Vertex{X: x, Y: y + h, U: u0, V: v1, Color: color}
	br := Vertex{X: x + w, Y: y + h, U: u1, V: v1, Color: color}
	return []Vertex{tl, tr, bl, tr, br, bl}
}

// plainQuad emits six untextured vertices (U/V unused by the lining
// renderer) for a lining overlay rectangle.
func plainQuad(x, y, w, h float64, color Color) []Vertex {
	tl := Vertex{X: x, Y: y, Color: color}
	tr := Vertex{X: x + w, Y: y, Color: color}
	bl := Vertex{X: x, Y: y + h, Color: color}
	br := Vertex{X: x + w, Y: y + h, Color: color}
	return []Vertex{tl, tr, bl, tr, br, bl}
}

// optimizeSequences greedily merges sequences sharing (texture,
// color-with-alpha-ignored, multiplyAlpha) (§4.6).
func optimizeSequences(seqs *[]RenderSequence) {
	src := *seqs
	var out []RenderSequence
	used := make([]bool, len(src))
	for i := range src {
		if used[i] {
			continue
		}
		merged := src[i]
		used[i] = true
		for j := i + 1; j < len(src); j++ {
			if used[j] {
				continue
			}
			if src[j].Texture == merged.Texture && src[j].MultiplyAlpha == merged.MultiplyAlpha &&
				src[j].Color.hex(true) == merged.Color.hex(true) {
				merged.Vertices = append(merged.Vertices, src[j].Vertices...)
				used[j] = true
			}
		}
		out = append(out, merged)
	}
	*seqs = out
}

// optimizeLiningSequences merges lining sequences by color only (§4.6).
func optimizeLiningSequences(seqs *[]RenderLiningSequence) {
	src := *seqs
	var out []RenderLiningSequence
	used := make([]bool, len(src))
	for i := range src {
		if used[i] {
			continue
		}
		merged := src[i]
		used[i] = true
		for j := i + 1; j < len(src); j++ {
			if used[j] {
				continue
			}
			if src[j].Color.hex(true) == merged.Color.hex(true) {
				merged.Vertices = append(merged.Vertices, src[j].Vertices...)
				used[j] = true
			}
		}
		out = append(out, merged)
	}
	*seqs = out
}
