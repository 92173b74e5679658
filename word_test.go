package atres

import "testing"

func TestCreateWordsSegmentsWhitespaceAndRuns(t *testing.T) {
	rect := Rect{Width: 1000}
	words := createWords(rect, "hello world", nil, layoutOptions{}, nil, "")
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3 (hello / space / world): %+v", len(words), words)
	}
	if words[0].Text != "hello" || words[0].IsWhitespace {
		t.Errorf("words[0] = %+v, want non-space 'hello'", words[0])
	}
	if words[1].Text != " " || !words[1].IsWhitespace {
		t.Errorf("words[1] = %+v, want whitespace ' '", words[1])
	}
	if words[2].Text != "world" {
		t.Errorf("words[2] = %+v, want 'world'", words[2])
	}
}

func TestCreateWordsNewlineIsOwnWord(t *testing.T) {
	rect := Rect{Width: 1000}
	words := createWords(rect, "a\nb", nil, layoutOptions{}, nil, "")
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3: %+v", len(words), words)
	}
	if !words[1].IsNewline {
		t.Errorf("words[1] = %+v, want IsNewline", words[1])
	}
}

func TestCreateWordsIconPlaceholder(t *testing.T) {
	clean, tags := Parse("a[i:gold]100[/i]b")
	words := createWords(Rect{Width: 1000}, clean, tags, layoutOptions{}, nil, "")
	var iconWord *RenderWord
	for i := range words {
		if words[i].IsIcon {
			iconWord = &words[i]
		}
	}
	if iconWord == nil {
		t.Fatal("expected one icon word")
	}
	if iconWord.IconName != "gold" {
		t.Errorf("IconName = %q, want gold", iconWord.IconName)
	}
}

func TestCreateWordsZeroWidthSpaceJoinsWhitespaceRun(t *testing.T) {
	text := "a" + string(rune(0x200B)) + " b"
	words := createWords(Rect{Width: 1000}, text, nil, layoutOptions{}, nil, "")
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3: %+v", len(words), words)
	}
	if !words[1].IsWhitespace || words[1].Spaces != 2 {
		t.Errorf("words[1] = %+v, want a 2-rune whitespace run", words[1])
	}
}

func TestBuildNonSpaceRunLegacyBreaksOnPunctuation(t *testing.T) {
	opts := layoutOptions{useLegacyLineBreakParsing: true}
	words := createWords(Rect{Width: 1000}, "ab、cd", nil, opts, nil, "")
	if len(words) < 2 {
		t.Fatalf("got %d words, want legacy parsing to split at punctuation: %+v", len(words), words)
	}
	if words[0].Text != "ab" {
		t.Errorf("words[0].Text = %q, want 'ab'", words[0].Text)
	}
}

func TestBuildNonSpaceRunIdeographIsOwnWord(t *testing.T) {
	opts := layoutOptions{useIdeographWords: true}
	text := "丁丂ab"
	words := createWords(Rect{Width: 1000}, text, nil, opts, nil, "")
	if len(words) < 3 {
		t.Fatalf("got %d words, want each ideograph split into its own word: %+v", len(words), words)
	}
	if words[0].Count != 1 || words[1].Count != 1 {
		t.Errorf("words[0,1] = %+v / %+v, want single-rune ideograph words", words[0], words[1])
	}
}

func TestBuildNonSpaceRunDefaultBreaksBeforePunctuationAfterTwoPlainChars(t *testing.T) {
	// Default (non-legacy, non-ideograph) mode only breaks once two plain
	// characters have accumulated since the last punctuation char.
	words := createWords(Rect{Width: 1000}, "ab、cd", nil, layoutOptions{}, nil, "")
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2: %+v", len(words), words)
	}
	if words[0].Text != "ab" {
		t.Errorf("words[0].Text = %q, want 'ab'", words[0].Text)
	}
	if words[1].Text != "、cd" {
		t.Errorf("words[1].Text = %q, want '、cd'", words[1].Text)
	}
}

func TestIsIdeographRanges(t *testing.T) {
	cases := []struct {
		r    rune
		want bool
	}{
		{0x3042, true},  // Hiragana 'a'
		{0x30A2, true},  // Katakana 'a'
		{0x4E2D, true},  // CJK '中'
		{'a', false},
		{'1', false},
	}
	for _, c := range cases {
		if got := isIdeograph(c.r); got != c.want {
			t.Errorf("isIdeograph(%U) = %v, want %v", c.r, got, c.want)
		}
	}
}

func TestIsIdeographWideRuneOutsideHardcodedBlocksViaEastAsianWidth(t *testing.T) {
	// U+AC00 (Hangul syllable) sits outside every hand-coded CJK/kana
	// range above but still reports EastAsianWide.
	if !isIdeograph(0xAC00) {
		t.Error("expected a Wide Hangul syllable to count as an ideograph via East Asian Width")
	}
}

func TestIsPunctuationKnownCodepoints(t *testing.T) {
	if !isPunctuation(0x3001) {
		t.Error("expected U+3001 (ideographic comma) to be punctuation")
	}
	if isPunctuation('a') {
		t.Error("expected 'a' not to be punctuation")
	}
}

func TestCreateWordsZeroWidthRectDoesNotFlagWithoutRegistry(t *testing.T) {
	// With no font registry every char measures to zero width, so TooLong
	// (which compares measured Advance against rectW) never trips here.
	words := createWords(Rect{Width: 0}, "x", nil, layoutOptions{}, nil, "")
	if len(words) != 1 {
		t.Fatalf("got %d words, want 1", len(words))
	}
	if words[0].TooLong {
		t.Errorf("TooLong = true, want false when no registry is available to measure the glyph")
	}
}
