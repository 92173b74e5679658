package atres

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// BitmapFont is a Font whose characters are defined up front by a
// definition file referencing one or more pre-rasterized texture pages
// (§3). It never rasterizes on demand; a codepoint absent from the
// definition simply has no CharacterDefinition.
type BitmapFont struct {
	Font
}

// NewBitmapFont loads a BitmapFont definition (§6 grammar) and resolves
// each referenced texture path via loadPage.
func NewBitmapFont(data []byte, loadPage func(path string) (Texture, int, int, error)) (*BitmapFont, error) {
	def, err := parseFontDefinition(data)
	if err != nil {
		return nil, err
	}
	f := &BitmapFont{Font: newFont(def.name, FontKindBitmap)}
	f.Height = def.height
	f.LineHeight = def.lineHeight
	f.Descender = def.descender
	f.StrikeThroughOffset = def.strikeThroughOffset
	f.UnderlineOffset = def.underlineOffset
	if def.scale > 0 {
		f.baseScale = def.scale
	}

	for _, path := range def.texturePaths {
		tex, w, h, err := loadPage(path)
		if err != nil {
			return nil, fmt.Errorf("atres: bitmap font %q: load page %q: %w", def.name, path, err)
		}
		f.glyphPages = append(f.glyphPages, newTextureContainer(tex, FormatRGBA, w, h))
	}

	for _, row := range def.rows {
		if row.page < 0 || row.page >= len(f.glyphPages) {
			logf("atres: bitmap font %q: glyph %d references unknown page %d, skipped", def.name, row.code, row.page)
			continue
		}
		f.glyphPages[row.page].Characters[row.code] = CharacterDefinition{
			Page:     row.page,
			Rect:     Rect{X: row.x, Y: row.y, Width: row.w, Height: row.h},
			Advance:  row.advance,
			BearingX: row.bearingX,
			BearingY: row.bearingY,
		}
	}
	return f, nil
}

// character looks up a pre-defined glyph; BitmapFont never grows its
// atlas, so a miss is permanent for this call.
func (f *BitmapFont) character(r rune) (CharacterDefinition, bool) {
	for _, page := range f.glyphPages {
		if c, ok := page.Characters[r]; ok {
			return c, true
		}
	}
	return CharacterDefinition{}, false
}

// --- definition file parsing (§6) -------------------------------------

type fontDefinition struct {
	name                string
	height              float64
	scale               float64
	lineHeight          float64
	descender           float64
	strikeThroughOffset float64
	underlineOffset     float64
	texturePaths        []string
	fontFilePath        string // File= key, for DynamicFont definitions
	multiTexture        bool
	rows                []glyphRow
}

type glyphRow struct {
	code     rune
	page     int
	x, y     float64
	w, h     float64
	advance  float64
	bearingX float64
	bearingY float64
}

// parseFontDefinition parses the shared key/row grammar used by both
// bitmap and dynamic font definition files (§6). Keys appear one per
// line before a line whose first non-space character is '#'; glyph rows
// (bitmap definitions only) follow it, one per line, whitespace-separated.
func parseFontDefinition(data []byte) (fontDefinition, error) {
	var def fontDefinition
	sc := bufio.NewScanner(bytes.NewReader(data))
	inRows := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			inRows = true
			continue
		}
		if !inRows {
			if err := parseDefinitionKey(&def, line); err != nil {
				return def, err
			}
			continue
		}
		row, err := parseGlyphRow(line, def.multiTexture)
		if err != nil {
			logf("atres: font definition %q: %v", def.name, err)
			continue
		}
		def.rows = append(def.rows, row)
	}
	if err := sc.Err(); err != nil {
		return def, fmt.Errorf("atres: font definition: %w", err)
	}
	if def.name == "" {
		return def, fmt.Errorf("atres: font definition missing Name=")
	}
	return def, nil
}

func parseDefinitionKey(def *fontDefinition, line string) error {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return fmt.Errorf("malformed definition line %q", line)
	}
	key := line[:eq]
	value := line[eq+1:]
	switch key {
	case "Name":
		def.name = value
	case "Height":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("Height=: %w", err)
		}
		def.height = v
		if def.lineHeight == 0 {
			def.lineHeight = v
		}
	case "Scale":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("Scale=: %w", err)
		}
		def.scale = v
	case "LineHeight":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("LineHeight=: %w", err)
		}
		def.lineHeight = v
	case "Descender":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("Descender=: %w", err)
		}
		def.descender = v
	case "StrikeThroughOffset":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("StrikeThroughOffset=: %w", err)
		}
		def.strikeThroughOffset = v
	case "UnderlineOffset":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("UnderlineOffset=: %w", err)
		}
		def.underlineOffset = v
	case "Texture":
		def.texturePaths = []string{value}
	case "MultiTexture":
		def.texturePaths = strings.Split(value, "\t")
		def.multiTexture = true
	case "File":
		def.fontFilePath = value
	default:
		logf("atres: font definition: unknown key %q, ignored", key)
	}
	return nil
}

// parseGlyphRow parses one whitespace-separated glyph row in the 4-9
// field formats of §6.
func parseGlyphRow(line string, multiTexture bool) (glyphRow, error) {
	fields := strings.Fields(line)
	n := len(fields)
	offset := 0
	var row glyphRow
	code, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return row, fmt.Errorf("bad codepoint %q", fields[0])
	}
	row.code = rune(code)
	offset = 1

	if multiTexture {
		if n < 5 {
			return row, fmt.Errorf("multi-texture row too short: %q", line)
		}
		page, err := strconv.Atoi(fields[offset])
		if err != nil {
			return row, fmt.Errorf("bad texture index %q", fields[offset])
		}
		row.page = page
		offset++
		n--
	} else {
		if n < 4 {
			return row, fmt.Errorf("glyph row too short: %q", line)
		}
	}

	f := func(i int) (float64, error) {
		return strconv.ParseFloat(fields[offset+i], 64)
	}
	var perr error
	must := func(v float64, err error) float64 {
		if err != nil && perr == nil {
			perr = err
		}
		return v
	}

	row.x = must(f(0))
	row.y = must(f(1))
	row.w = must(f(2))

	switch n {
	case 4:
		row.h = row.w
		row.advance = row.w
	case 5:
		row.h = row.w
		row.advance = must(f(3))
	case 6:
		row.h = row.w
		row.advance = must(f(3))
		row.bearingX = must(f(4))
	case 7:
		row.h = must(f(3))
		row.advance = must(f(4))
		row.bearingX = must(f(5))
	case 8:
		row.h = must(f(3))
		row.advance = must(f(4))
		row.bearingX = must(f(5))
		row.bearingY = must(f(6))
	default:
		return row, fmt.Errorf("unsupported glyph row field count %d: %q", n, line)
	}
	if perr != nil {
		return row, fmt.Errorf("bad numeric field: %w", perr)
	}
	return row, nil
}
