package atres

import (
	"strconv"
	"strings"
)

// parseFloat is a thin strconv.ParseFloat wrapper so callers in this file
// don't repeat the bit-size argument.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// tagState is the shared stack-based evaluator described in §4.5, used
// identically by the word builder and the sequence builder to track the
// currently active markup attributes as they scan through a tag list.
type tagState struct {
	fontName string
	iconFont string

	color Color
	scale float64

	effect       TextEffect
	shadowColor  Color
	shadowOffset Vec2

	borderColor     Color
	borderThickness float64

	strikeThroughActive    bool
	strikeThroughColor     Color
	strikeThroughThickness float64

	underlineActive    bool
	underlineColor     Color
	underlineThickness float64

	italicActive bool
	hideActive   bool

	// stack holds a snapshot of the attribute a tag changed, pushed on
	// open and restored on close, one entry per currently-open tag
	// (§4.5: "push the current value... on close, pop and restore").
	stack []tagSnapshot
}

// tagSnapshot is a saved attribute value plus which tag type it belongs
// to, so a Close event knows which field to restore.
type tagSnapshot struct {
	tagType TagType
	state   tagState
}

func newTagState(defaultFont string, defaultColor Color, defaultShadowOffset Vec2, defaultShadowColor Color,
	defaultBorderColor Color, defaultBorderThickness float64,
	defaultStrikeThroughThickness, defaultUnderlineThickness float64) tagState {
	return tagState{
		fontName:               defaultFont,
		color:                  defaultColor,
		scale:                  1,
		shadowColor:            defaultShadowColor,
		shadowOffset:           defaultShadowOffset,
		borderColor:            defaultBorderColor,
		borderThickness:        defaultBorderThickness,
		strikeThroughThickness: defaultStrikeThroughThickness,
		underlineThickness:     defaultUnderlineThickness,
	}
}

// snapshot captures the mutable fields (everything but the stack itself)
// so they can be restored verbatim on Close.
func (s *tagState) snapshot() tagState {
	cp := *s
	cp.stack = nil
	return cp
}

// restore replaces the mutable fields from a prior snapshot, keeping the
// current stack (which the caller pops separately).
func (s *tagState) restore(snap tagState) {
	stack := s.stack
	*s = snap
	s.stack = stack
}

// apply advances the state machine past one FormatTag (§4.5). For an
// [i:name] tag it only records the tag's Data as the active icon font
// name; the lookup itself happens in the sequence/word builder.
func (s *tagState) apply(tag FormatTag) {
	switch tag.Type {
	case TagEscape:
		// no state change; the literal '[' was already emitted by Parse.

	case TagFont:
		s.push(tag.Type)
		s.fontName = tag.Data

	case TagIcon:
		s.push(tag.Type)
		s.iconFont = tag.Data

	case TagColor:
		s.push(tag.Type)
		if c, ok := resolveColor(tag.Data); ok {
			s.color = c
		}

	case TagScale:
		s.push(tag.Type)
		if v, ok := parseFloatLoose(tag.Data); ok {
			s.scale = v
		}

	case TagNoEffect:
		s.push(tag.Type)
		s.effect = EffectNone

	case TagShadow:
		s.push(tag.Type)
		s.effect = EffectShadow
		if c, x, y, ok := parseColorAndVec2(tag.Data); ok {
			s.shadowColor = c
			s.shadowOffset = Vec2{X: x, Y: y}
		}

	case TagBorder:
		s.push(tag.Type)
		s.effect = EffectBorder
		if c, t, ok := parseColorAndFloat(tag.Data); ok {
			s.borderColor = c
			s.borderThickness = t
		}

	case TagStrikeThrough:
		s.push(tag.Type)
		s.strikeThroughActive = true
		if c, t, ok := parseColorAndFloat(tag.Data); ok {
			s.strikeThroughColor = c
			s.strikeThroughThickness = t
		}

	case TagUnderline:
		s.push(tag.Type)
		s.underlineActive = true
		if c, t, ok := parseColorAndFloat(tag.Data); ok {
			s.underlineColor = c
			s.underlineThickness = t
		}

	case TagItalic:
		s.push(tag.Type)
		s.italicActive = true

	case TagHide:
		s.push(tag.Type)
		s.hideActive = true

	case TagIgnoreFormatting:
		s.push(tag.Type)

	case TagClose, TagCloseConsume:
		s.pop()
	}
}

// push saves the current attribute values before a tag mutates them.
func (s *tagState) push(t TagType) {
	s.stack = append(s.stack, tagSnapshot{tagType: t, state: s.snapshot()})
}

// pop restores the most recently pushed snapshot. Mismatched closes never
// reach here: Parse already filtered them out (§4.1).
func (s *tagState) pop() {
	if len(s.stack) == 0 {
		return
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.restore(top.state)
}

func parseFloatLoose(v string) (float64, bool) {
	f, err := parseFloat(strings.TrimSpace(v))
	if err != nil {
		logf("atres: markup: bad numeric payload %q: %v", v, err)
		return 0, false
	}
	return f, true
}

// parseColorAndVec2 parses a "COLOR,X,Y" shadow payload (§4.5).
func parseColorAndVec2(payload string) (Color, float64, float64, bool) {
	parts := strings.Split(payload, ",")
	if len(parts) != 3 {
		logf("atres: markup: bad shadow payload %q", payload)
		return Color{}, 0, 0, false
	}
	c, ok := resolveColor(strings.TrimSpace(parts[0]))
	if !ok {
		return Color{}, 0, 0, false
	}
	x, err1 := parseFloat(strings.TrimSpace(parts[1]))
	y, err2 := parseFloat(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil {
		logf("atres: markup: bad shadow offset in %q", payload)
		return Color{}, 0, 0, false
	}
	return c, x, y, true
}

// parseColorAndFloat parses a "COLOR,THICKNESS" border/strike-through/
// underline payload (§4.5).
func parseColorAndFloat(payload string) (Color, float64, bool) {
	parts := strings.Split(payload, ",")
	if len(parts) != 2 {
		logf("atres: markup: bad payload %q", payload)
		return Color{}, 0, false
	}
	c, ok := resolveColor(strings.TrimSpace(parts[0]))
	if !ok {
		return Color{}, 0, false
	}
	t, err := parseFloat(strings.TrimSpace(parts[1]))
	if err != nil {
		logf("atres: markup: bad thickness in %q", payload)
		return Color{}, 0, false
	}
	return c, t, true
}
