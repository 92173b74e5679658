package atres

import "testing"

func approxEqual(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < eps
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}
	if !r.Contains(15, 15) {
		t.Error("expected rect to contain (15,15)")
	}
	if r.Contains(5, 5) {
		t.Error("expected rect not to contain (5,5)")
	}
	if !r.Contains(10, 10) {
		t.Error("expected rect to contain its own top-left corner")
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	c := Rect{X: 100, Y: 100, Width: 10, Height: 10}
	if !a.Intersects(b) {
		t.Error("expected overlapping rects to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected far-apart rects not to intersect")
	}
}

func TestRectTranslated(t *testing.T) {
	r := Rect{X: 1, Y: 2, Width: 3, Height: 4}
	tr := r.translated(10, -5)
	if tr.X != 11 || tr.Y != -3 || tr.Width != 3 || tr.Height != 4 {
		t.Errorf("translated = %+v, want X=11 Y=-3 unchanged size", tr)
	}
}

func TestRectClip(t *testing.T) {
	r := Rect{X: -5, Y: -5, Width: 20, Height: 20}
	bounds := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	clipped, ok := r.clip(bounds)
	if !ok {
		t.Fatal("expected clip to succeed for overlapping rects")
	}
	if clipped.X != 0 || clipped.Y != 0 || clipped.Width != 10 || clipped.Height != 10 {
		t.Errorf("clip = %+v, want 0,0,10,10", clipped)
	}

	far := Rect{X: 100, Y: 100, Width: 5, Height: 5}
	if _, ok := far.clip(bounds); ok {
		t.Error("expected clip to fail for non-overlapping rects")
	}
}

func TestColorHexRoundtrip(t *testing.T) {
	c := Color{R: 1, G: 0, B: 0, A: 1}
	hex := c.hex(true)
	parsed, err := parseHexColor(hex)
	if err != nil {
		t.Fatalf("parseHexColor(%q): %v", hex, err)
	}
	if !approxEqual(parsed.R, 1, 0.01) || !approxEqual(parsed.G, 0, 0.01) || !approxEqual(parsed.B, 0, 0.01) {
		t.Errorf("roundtrip = %+v, want red", parsed)
	}
}

func TestParseHexColorWithAlpha(t *testing.T) {
	c, err := parseHexColor("80FF0000")
	if err != nil {
		t.Fatalf("parseHexColor: %v", err)
	}
	if !approxEqual(c.A, 0.5, 0.01) {
		t.Errorf("alpha = %v, want ~0.5", c.A)
	}
	if !approxEqual(c.R, 1, 0.01) {
		t.Errorf("red = %v, want 1", c.R)
	}
}

func TestResolveColorSymbolic(t *testing.T) {
	c, ok := resolveColor("red")
	if !ok {
		t.Fatal("expected symbolic color 'red' to resolve")
	}
	if c.R != 1 || c.G != 0 || c.B != 0 {
		t.Errorf("red = %+v, want pure red", c)
	}

	if _, ok := resolveColor("not_a_color"); ok {
		t.Error("expected unknown symbolic name to fail")
	}
}

func TestResolveColorHexFallback(t *testing.T) {
	c, ok := resolveColor("FF8000")
	if !ok {
		t.Fatal("expected hex string to resolve")
	}
	if !approxEqual(c.R, 1, 0.01) {
		t.Errorf("red component = %v, want 1", c.R)
	}
}

func TestHorizontalPredicates(t *testing.T) {
	cases := []struct {
		h                            Horizontal
		wrapped, untrimmed, justified bool
	}{
		{HorizontalLeft, false, false, false},
		{HorizontalLeftWrapped, true, false, false},
		{HorizontalJustifiedWrappedUntrimmed, true, true, true},
		{HorizontalCenter, false, false, false},
	}
	for _, c := range cases {
		if got := c.h.isWrapped(); got != c.wrapped {
			t.Errorf("%v.isWrapped() = %v, want %v", c.h, got, c.wrapped)
		}
		if got := c.h.isUntrimmed(); got != c.untrimmed {
			t.Errorf("%v.isUntrimmed() = %v, want %v", c.h, got, c.untrimmed)
		}
		if got := c.h.isJustified(); got != c.justified {
			t.Errorf("%v.isJustified() = %v, want %v", c.h, got, c.justified)
		}
	}
}
