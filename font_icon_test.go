package atres

import "testing"

func newTestIconFont(raster Rasterizer, pixelsByName map[string][2]int) *IconFont {
	return NewIconFont("icons", raster, 2, 1, 0, func(name string) ([]byte, int, int, error) {
		dim, ok := pixelsByName[name]
		if !ok {
			return nil, 0, 0, errIconNotFound
		}
		w, h := dim[0], dim[1]
		return make([]byte, w*h*4), w, h, nil
	})
}

func TestIconFontIconRasterizesAndCaches(t *testing.T) {
	raster := &fakeRasterizer{}
	f := newTestIconFont(raster, map[string][2]int{"gold": {16, 16}})

	def, ok := f.icon("gold")
	if !ok {
		t.Fatal("expected icon 'gold' to resolve")
	}
	if def.Advance != 16+2 {
		t.Errorf("Advance = %v, want 18 (width + spacing)", def.Advance)
	}
	if len(f.glyphPages) != 1 {
		t.Fatalf("got %d pages, want 1", len(f.glyphPages))
	}

	writesAfterFirst := raster.writeCalls
	f.icon("gold")
	if raster.writeCalls != writesAfterFirst {
		t.Error("expected second lookup to hit the cache, not rasterize again")
	}
}

func TestIconFontMissingIconFails(t *testing.T) {
	raster := &fakeRasterizer{}
	f := newTestIconFont(raster, map[string][2]int{})
	if _, ok := f.icon("missing"); ok {
		t.Error("expected lookup of an unresolvable icon to fail")
	}
}

func TestIconFontAlwaysUsesRGBA(t *testing.T) {
	raster := &fakeRasterizer{caps: Capabilities{SupportsAlphaTextures: true, NativeFormat: FormatAlpha}}
	f := newTestIconFont(raster, map[string][2]int{"gold": {16, 16}})
	f.icon("gold")
	if f.glyphPages[0].Format != FormatRGBA {
		t.Errorf("page format = %v, want RGBA even though the rasterizer supports alpha textures", f.glyphPages[0].Format)
	}
	if f.allowAlphaTextures {
		t.Error("IconFont should always have allowAlphaTextures = false")
	}
}
