package atres

import (
	"unicode/utf8"

	"golang.org/x/text/width"
)

// RenderWord is a contiguous run of text of one "kind": a whitespace run,
// a non-whitespace run, a single icon placeholder, or a single explicit
// newline (§3).
type RenderWord struct {
	Text  string
	Rect  Rect // local origin (0,0); Width/Height are the word's box
	Start int  // byte offset into the whole clean text
	Count int  // rune count
	Spaces int // count of whitespace runes (equals Count for a whitespace word)

	IsWhitespace bool
	IsNewline    bool
	IsIcon       bool
	IconName     string

	Advance  float64
	BearingX float64

	// CharXs[i] is the x offset of the i-th rune's pen position, relative
	// to the word's local origin; CharAdvanceXs[i] is that rune's advance
	// width; CharHeights[i] is the scaled line height of that rune's font
	// (used by the sequence builder to place strike-through and underline
	// lining); SegmentWidths[i] is the cumulative
	// width through rune i, inclusive.
	CharXs        []float64
	CharAdvanceXs []float64
	CharHeights   []float64
	SegmentWidths []float64

	TooLong bool
}

// layoutOptions are the renderer-level tunables that affect word and line
// building (§4.3, §4.4, §9).
type layoutOptions struct {
	useLegacyLineBreakParsing bool
	useIdeographWords         bool
}

// wordBuilder accumulates createWords's scratch state. atres is
// single-threaded (§5), so one builder is reused per call rather than
// shared across calls.
type wordBuilder struct {
	opts     layoutOptions
	registry *FontRegistry
	rectW    float64
}

// createWords walks cleanText in codepoints, tracking the active tag
// state (§4.5), and segments it into alternating whitespace/non-whitespace
// runs, icon placeholders, and explicit newlines (§4.3). defaultFont seeds
// the tag state machine so measurements reflect the font a DrawText call
// would actually use before any [f=...] tag overrides it.
func createWords(rect Rect, cleanText string, tags []FormatTag, opts layoutOptions, registry *FontRegistry, defaultFont string) []RenderWord {
	b := &wordBuilder{opts: opts, registry: registry, rectW: rect.Width}
	return b.build(cleanText, tags, defaultFont)
}

func (b *wordBuilder) build(text string, tags []FormatTag, defaultFont string) []RenderWord {
	var words []RenderWord
	state := newTagState(defaultFont, ColorWhite, Vec2{}, Color{A: 1}, Color{A: 1}, 1, 1, 1)
	tagIdx := 0

	i := 0
	n := len(text)
	for i < n {
		for tagIdx < len(tags) && tags[tagIdx].Start <= i {
			state.apply(tags[tagIdx])
			tagIdx++
		}

		r, size := utf8.DecodeRuneInString(text[i:])

		switch {
		case r == '\n':
			words = append(words, RenderWord{
				Text: "\n", Start: i, Count: 1, Spaces: 0, IsNewline: true,
			})
			i += size

		case string(r) == iconPlaceholder:
			name := b.currentIconName(tags, i)
			w := RenderWord{Text: string(r), Start: i, Count: 1, IsIcon: true, IconName: name}
			b.measureIconWord(&w, state)
			words = append(words, w)
			i += size

		case isSpace(r):
			w, consumed := b.buildWhitespaceRun(text, i, tags, &tagIdx, &state)
			words = append(words, w)
			i += consumed

		default:
			w, consumed := b.buildNonSpaceRun(text, i, tags, &tagIdx, &state)
			words = append(words, w)
			i += consumed
		}
	}
	return words
}

// currentIconName reads the Data of the most recent Icon tag at or before
// byte offset i (the tag state machine doesn't track icon names as a
// resolvable string once consumed into the icon font slot).
func (b *wordBuilder) currentIconName(tags []FormatTag, i int) string {
	name := ""
	for _, t := range tags {
		if t.Start > i {
			break
		}
		if t.Type == TagIcon {
			name = t.Data
		}
	}
	return name
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == unicodeZeroWidthSpace
}

const unicodeZeroWidthSpace = rune(0x200B)

func (b *wordBuilder) buildWhitespaceRun(text string, start int, tags []FormatTag, tagIdx *int, state *tagState) (RenderWord, int) {
	w := RenderWord{Start: start, IsWhitespace: true}
	i := start
	n := len(text)
	for i < n {
		for *tagIdx < len(tags) && tags[*tagIdx].Start <= i {
			state.apply(tags[*tagIdx])
			*tagIdx++
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isSpace(r) || string(r) == iconPlaceholder {
			break
		}
		b.appendChar(&w, r, *state)
		w.Spaces++
		i += size
		if r == unicodeZeroWidthSpace {
			// zero-width space never forces a break by itself; continue
			// the run, matching the source's pen-advance-but-no-visible-
			// width treatment (§4.6 "zero-width characters").
		}
	}
	w.Text = text[start:i]
	return w, i - start
}

func (b *wordBuilder) buildNonSpaceRun(text string, start int, tags []FormatTag, tagIdx *int, state *tagState) (RenderWord, int) {
	w := RenderWord{Start: start}
	i := start
	n := len(text)
	sincePunctuation := 0
	prevIdeoOrPunct := false
	for i < n {
		for *tagIdx < len(tags) && tags[*tagIdx].Start <= i {
			state.apply(tags[*tagIdx])
			*tagIdx++
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		if isSpace(r) || r == '\n' || string(r) == iconPlaceholder {
			break
		}

		punct := isPunctuation(r)
		ideo := isIdeograph(r)

		if w.Count > 0 {
			if b.opts.useLegacyLineBreakParsing {
				if punct {
					break
				}
			} else if b.opts.useIdeographWords {
				// an ideograph/punctuation char starts a new word unless it
				// is punctuation kept open by the check below
				if (ideo || punct) && !prevIdeoOrPunct {
					break
				}
			} else if punct && sincePunctuation >= 2 {
				break
			}
		}

		b.appendChar(&w, r, *state)
		i += size
		if punct {
			sincePunctuation = 0
		} else {
			sincePunctuation++
		}

		// A single ideograph/punctuation char under ideograph-word mode is
		// its own word: stop immediately after appending it, unless the
		// next char is punctuation too, which then joins this word.
		prevIdeoOrPunct = ideo || punct
		if b.opts.useIdeographWords && prevIdeoOrPunct && !nextIsPunctuation(text, i) {
			break
		}
	}
	w.Text = text[start:i]
	if w.Advance > b.rectW && b.rectW > 0 {
		w.TooLong = true
		logf("atres: word %q does not fit in rect width %.1f", w.Text, b.rectW)
	}
	return w, i - start
}

// appendChar accounts for one rune's width contribution (§4.3): advance
// scaled by the active font scale (no kerning is applied between runes),
// with a correction when bearingX is negative so overhangs don't corrupt
// downstream measurements.
func (b *wordBuilder) appendChar(w *RenderWord, r rune, state tagState) {
	font, def, height, ok := b.resolveChar(state, r)
	if !ok {
		w.Count++
		w.CharXs = append(w.CharXs, w.Advance)
		w.CharAdvanceXs = append(w.CharAdvanceXs, 0)
		w.CharHeights = append(w.CharHeights, 0)
		w.SegmentWidths = append(w.SegmentWidths, w.Advance)
		return
	}
	_ = font
	scale := state.scale
	ax := def.Advance*scale + 0 // kerning
	aw := def.Rect.Width*scale + def.BearingX*scale

	charX := w.Advance
	if def.BearingX < 0 {
		shift := -def.BearingX * scale
		charX += shift
		for i := range w.CharXs {
			w.CharXs[i] += shift
		}
		w.BearingX += shift
	}

	adv := ax
	if aw > adv {
		adv = aw
	}

	w.Count++
	w.CharXs = append(w.CharXs, charX)
	w.CharAdvanceXs = append(w.CharAdvanceXs, adv)
	w.CharHeights = append(w.CharHeights, height*scale)
	w.Advance += adv
	w.SegmentWidths = append(w.SegmentWidths, w.Advance)
	if w.Advance > w.Rect.Width {
		w.Rect.Width = w.Advance
	}
	if height*scale > w.Rect.Height {
		w.Rect.Height = height * scale
	}
}

// resolveChar looks up the active font's CharacterDefinition for r,
// triggering atlas insertion for DynamicFont (§4.2).
func (b *wordBuilder) resolveChar(state tagState, r rune) (fontHandle, CharacterDefinition, float64, bool) {
	if b.registry == nil {
		return nil, CharacterDefinition{}, 0, false
	}
	handle, ok := b.registry.Get(state.fontName)
	if !ok {
		return nil, CharacterDefinition{}, 0, false
	}
	def, ok := lookupCharacter(handle, r)
	if !ok {
		logf("atres: no glyph for U+%04X in font %q", r, handle.fontBase().Name)
		return handle, CharacterDefinition{}, 0, false
	}
	return handle, def, handle.fontBase().effectiveLineHeight(), true
}

func (b *wordBuilder) measureIconWord(w *RenderWord, state tagState) {
	if b.registry == nil || state.iconFont == "" {
		return
	}
	handle, ok := b.registry.Get(state.iconFont)
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
	w.Advance = def.Advance * state.scale
	w.BearingX = def.BearingX
	w.Rect = Rect{Width: w.Advance, Height: def.Rect.Height * state.scale}
	w.CharXs = []float64{0}
	w.CharAdvanceXs = []float64{w.Advance}
	w.CharHeights = []float64{def.Rect.Height * state.scale}
	w.SegmentWidths = []float64{w.Advance}
}

// lookupCharacter dispatches to the right font variant's character(r).
func lookupCharacter(handle fontHandle, r rune) (CharacterDefinition, bool) {
	switch f := handle.(type) {
	case *BitmapFont:
		return f.character(r)
	case *DynamicFont:
		return f.character(r)
	default:
		return CharacterDefinition{}, false
	}
}

func nextIsPunctuation(text string, i int) bool {
	if i >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return isPunctuation(r)
}

// isIdeograph reports whether r falls in one of the CJK/kana blocks
// treated as word units under useIdeographWords (§4.3, §9 SUPPLEMENTED #1).
// The hand-coded blocks cover the historical source's original set; runes
// outside them still count as ideographs when Unicode's East Asian Width
// property reports them Wide or Fullwidth, so extension blocks the
// historical source never anticipated (e.g. CJK Ext. C-G, wide symbols)
// still break into their own words.
func isIdeograph(r rune) bool {
	switch {
	case r >= 0x3040 && r <= 0x309F: // Hiragana
		return true
	case r >= 0x30A0 && r <= 0x30FF: // Katakana
		return true
	case r >= 0x3400 && r <= 0x4DBF: // CJK Extension A
		return true
	case r >= 0x4E00 && r <= 0x9FFF: // CJK Unified Ideographs
		return true
	case r >= 0xF900 && r <= 0xFAFF: // CJK Compatibility Ideographs
		return true
	case r >= 0x20000 && r <= 0x2A6DF: // CJK Extension B
		return true
	case r >= 0x2F800 && r <= 0x2FA1F: // CJK Compatibility Supplement
		return true
	}
	p, _ := width.LookupRune(r)
	switch p.Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

// isPunctuation is the exact hand-coded codepoint set from the historical
// source's IS_PUNCTUATION_CHAR macro, reproduced verbatim rather than
// inferred from Unicode categories (§9 open question, resolved in
// DESIGN.md/SPEC_FULL.md §E).
func isPunctuation(r rune) bool {
	switch r {
	case 0x2015, 0x2025, 0x2026,
		0x3000, 0x3001, 0x3002,
		0x3009, 0x300B, 0x300D, 0x300F, 0x3011, 0x3015, 0x3017, 0x3019, 0x301B, 0x301C,
		0x30FB, 0x30FC,
		0x4E00,
		0xFF01, 0xFF09, 0xFF0C, 0xFF1A, 0xFF1E, 0xFF1F, 0xFF3D, 0xFF5D, 0xFF60, 0xFF63:
		return true
	}
	return false
}
