package ebitenraster

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/atres"
)

func TestTextureLoadedWidthHeight(t *testing.T) {
	tex := &Texture{img: ebiten.NewImage(16, 8), w: 16, h: 8}
	if !tex.Loaded() {
		t.Fatal("expected a freshly created texture to report Loaded")
	}
	if tex.Width() != 16 || tex.Height() != 8 {
		t.Errorf("got %dx%d, want 16x8", tex.Width(), tex.Height())
	}
}

func TestRasterizerDestroyTextureMarksUnloaded(t *testing.T) {
	r := New()
	tex, err := r.CreateTexture(4, 4, atres.FormatRGBA, atres.Color{})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if !tex.Loaded() {
		t.Fatal("expected newly created texture to be loaded")
	}
	r.DestroyTexture(tex)
	if tex.Loaded() {
		t.Error("expected DestroyTexture to mark the texture unloaded")
	}
}

func TestRasterizerCapabilitiesNeverReportsAlphaSupport(t *testing.T) {
	r := New()
	caps := r.Capabilities()
	if caps.SupportsAlphaTextures {
		t.Error("ebiten backend has no single-channel texture format, SupportsAlphaTextures must be false")
	}
	if caps.NativeFormat != atres.FormatRGBA {
		t.Errorf("NativeFormat = %v, want FormatRGBA", caps.NativeFormat)
	}
}

func TestRasterizerWriteImageOnDestroyedTextureIsNoop(t *testing.T) {
	r := New()
	tex, _ := r.CreateTexture(4, 4, atres.FormatRGBA, atres.Color{})
	r.DestroyTexture(tex)
	if err := r.WriteImage(tex, 0, 0, 4, 4, atres.FormatRGBA, make([]byte, 4*4*4)); err != nil {
		t.Errorf("WriteImage on a destroyed texture should be a no-op, got error: %v", err)
	}
}

func TestRasterizerWriteImageZeroSizeIsNoop(t *testing.T) {
	r := New()
	tex, _ := r.CreateTexture(4, 4, atres.FormatRGBA, atres.Color{})
	if err := r.WriteImage(tex, 0, 0, 0, 0, atres.FormatRGBA, nil); err != nil {
		t.Errorf("zero-size WriteImage should be a no-op, got error: %v", err)
	}
}

func TestClamp255Bounds(t *testing.T) {
	cases := []struct {
		v    float64
		want int
	}{
		{-1, 0},
		{0, 0},
		{0.5, 127},
		{1, 255},
		{2, 255},
	}
	for _, c := range cases {
		if got := clamp255(c.v); got != c.want {
			t.Errorf("clamp255(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestToNRGBARoundTrip(t *testing.T) {
	c := toNRGBA(atres.Color{R: 1, G: 0, B: 0, A: 1})
	if c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("toNRGBA(red) = %+v, want {255 0 0 255}", c)
	}
}

func TestSetBlendModeDefaultsToSourceOver(t *testing.T) {
	r := New()
	r.SetBlendMode(atres.BlendAlpha)
	if r.blend != ebiten.BlendSourceOver {
		t.Errorf("blend = %v, want BlendSourceOver", r.blend)
	}
}

func TestRenderTrianglesNoTargetIsNoop(t *testing.T) {
	r := New()
	r.RenderTriangles(nil, []atres.Vertex{{X: 0, Y: 0}}, atres.Color{A: 1})
}

func TestRenderTrianglesEmptyVerticesIsNoop(t *testing.T) {
	r := New()
	r.SetTarget(ebiten.NewImage(32, 32))
	r.RenderTriangles(nil, nil, atres.Color{A: 1})
}

func TestEnsureWhitePixelIsReusedAcrossCalls(t *testing.T) {
	r := New()
	first := r.ensureWhitePixel()
	second := r.ensureWhitePixel()
	if first != second {
		t.Error("expected ensureWhitePixel to cache and reuse the same image")
	}
}
