package atres

// RenderLine is an ordered run of words forming one output line (§3).
type RenderLine struct {
	Words []RenderWord
	// WordX[i] is the x offset (within Rect) where Words[i] begins. Built
	// alongside word placement and adjusted again by justification.
	WordX []float64

	Rect       Rect
	Start      int
	Count      int
	Spaces     int
	Advance    float64
	Terminated bool
}

// lineLayoutParams bundles the font metrics createLines needs beyond the
// words themselves.
type lineLayoutParams struct {
	horizontal Horizontal
	vertical   Vertical
	offset     Vec2
	lineHeight float64
	descender  float64
}

// createLines groups words into lines honoring wrap width and explicit
// newlines, trims whitespace at wrapped line boundaries, then applies
// vertical and horizontal alignment (§4.4).
func createLines(rect Rect, words []RenderWord, p lineLayoutParams) []RenderLine {
	lines := packLines(rect, words, p.horizontal)
	for i := range lines {
		if p.horizontal.isWrapped() && !p.horizontal.isUntrimmed() {
			trimLine(&lines[i])
		}
	}
	placeLines(lines, rect, p)
	lines = verticalCorrection(lines, rect, p)
	lines = removeOutOfBoundLines(lines, rect)
	horizontalCorrection(lines, rect, p.horizontal)
	return lines
}

// packLines implements the §4.4 wrapping loop.
func packLines(rect Rect, words []RenderWord, h Horizontal) []RenderLine {
	var lines []RenderLine
	var cur RenderLine
	cur.Start = 0
	if len(words) > 0 {
		cur.Start = words[0].Start
	}

	flush := func(terminated bool) {
		cur.Terminated = terminated
		lines = append(lines, cur)
		cur = RenderLine{}
	}

	i := 0
	for i < len(words) {
		w := words[i]

		if w.IsNewline {
			cur.Terminated = true
			flush(true)
			if i+1 < len(words) {
				cur.Start = words[i+1].Start
			}
			i++
			continue
		}

		if len(cur.Words) == 0 && w.IsWhitespace && h.isWrapped() && !h.isUntrimmed() {
			i++
			continue
		}

		if h.isWrapped() && len(cur.Words) > 0 && cur.Advance+w.Advance > rect.Width {
			flush(false)
			continue // reprocess w as the start of the new line
		}

		cur.WordX = append(cur.WordX, cur.Advance)
		cur.Words = append(cur.Words, w)
		cur.Advance += w.Advance
		cur.Count += w.Count
		if w.IsWhitespace {
			cur.Spaces += w.Count
		}
		i++
	}
	if len(cur.Words) > 0 || len(lines) == 0 {
		cur.Terminated = true
		lines = append(lines, cur)
	}
	return lines
}

// trimLine pops leading and trailing whitespace words from a wrapped,
// non-untrimmed line (§4.4).
func trimLine(line *RenderLine) {
	for len(line.Words) > 0 && line.Words[0].IsWhitespace {
		w := line.Words[0]
		line.Words = line.Words[1:]
		line.WordX = line.WordX[1:]
		line.Advance -= w.Advance
		line.Count -= w.Count
		line.Spaces -= w.Count
		shiftWordX(line, w.Advance)
	}
	for len(line.Words) > 0 && line.Words[len(line.Words)-1].IsWhitespace {
		last := len(line.Words) - 1
		w := line.Words[last]
		line.Words = line.Words[:last]
		line.WordX = line.WordX[:last]
		line.Advance -= w.Advance
		line.Count -= w.Count
		line.Spaces -= w.Count
	}
}

func shiftWordX(line *RenderLine, dx float64) {
	for i := range line.WordX {
		line.WordX[i] -= dx
	}
}

// placeLines assigns each line's Rect from the wrap-time advance plus the
// base offset; vertical/horizontal corrections adjust this afterward.
func placeLines(lines []RenderLine, rect Rect, p lineLayoutParams) {
	for i := range lines {
		lines[i].Rect = Rect{
			X:      rect.X + p.offset.X,
			Y:      rect.Y + p.offset.Y + float64(i)*p.lineHeight,
			Width:  lines[i].Advance,
			Height: p.lineHeight,
		}
	}
}

// verticalCorrection shifts every line's Y so the whole block sits per
// p.vertical within rect (§4.4).
func verticalCorrection(lines []RenderLine, rect Rect, p lineLayoutParams) []RenderLine {
	blockHeight := float64(len(lines)) * p.lineHeight
	var shift float64
	switch p.vertical {
	case VerticalCenter:
		shift = ((rect.Height - p.descender) - blockHeight) / 2
	case VerticalBottom:
		shift = rect.Height - blockHeight - p.descender
	}
	if shift == 0 {
		return lines
	}
	for i := range lines {
		lines[i].Rect.Y += shift
	}
	return lines
}

// removeOutOfBoundLines drops lines whose rect doesn't intersect rect,
// except zero-size lines (kept to preserve text indices) (§4.4).
func removeOutOfBoundLines(lines []RenderLine, rect Rect) []RenderLine {
	out := lines[:0]
	for _, l := range lines {
		if l.Rect.Width == 0 && l.Rect.Height == 0 {
			out = append(out, l)
			continue
		}
		if l.Rect.Intersects(rect) {
			out = append(out, l)
		}
	}
	return out
}

// horizontalCorrection translates (or, for Justified, redistributes word
// spacing within) each line per h (§4.4).
func horizontalCorrection(lines []RenderLine, rect Rect, h Horizontal) {
	for i := range lines {
		l := &lines[i]
		switch {
		case h.isJustified():
			justifyLine(l, rect)
		case h.isRight():
			l.Rect.X += rect.Width - l.Advance
		case h.isCenter():
			l.Rect.X += (rect.Width - l.Advance) / 2
		default: // left
		}
	}
}

// justifyLine distributes (rect.Width - line.Advance) across the line's
// non-trailing whitespace words. A terminated (last) line falls back to
// left alignment; a line with no whitespace words is centered instead
// (§4.4, §9 open question resolved in SPEC_FULL.md §E).
func justifyLine(l *RenderLine, rect Rect) {
	if l.Terminated {
		return // left fallback: no shift
	}
	trailingSpaces := trailingWhitespaceCount(l.Words)
	justifiable := l.Spaces - trailingSpaces
	if justifiable <= 0 {
		l.Rect.X += (rect.Width - l.Advance) / 2
		return
	}
	extra := rect.Width - l.Advance
	perSpace := extra / float64(justifiable)

	shift := 0.0
	seen := 0
	for i, w := range l.Words {
		l.WordX[i] += shift
		if w.IsWhitespace {
			seen++
			if seen <= justifiable {
				shift += perSpace * float64(w.Count)
			}
		}
	}
	l.Advance += extra
	l.Rect.Width = l.Advance
}

func trailingWhitespaceCount(words []RenderWord) int {
	n := 0
	for i := len(words) - 1; i >= 0; i-- {
		if !words[i].IsWhitespace {
			break
		}
		n += words[i].Count
	}
	return n
}
