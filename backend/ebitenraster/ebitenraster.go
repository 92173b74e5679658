// Package ebitenraster is a reference atres.Rasterizer backed by
// *ebiten.Image, grounded on the teacher's atlas/mesh/batch drawing code.
package ebitenraster

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/atres"
)

func rectOf(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+w, y+h)
}

// Texture wraps an *ebiten.Image as an atres.Texture.
type Texture struct {
	img *ebiten.Image
	w, h int
}

// Loaded reports whether the backing ebiten.Image is still alive. Ebiten
// images are never evicted out from under the caller the way a streamed
// GPU resource might be, so once created this is only false after
// DestroyTexture (§4.7 TextureInvalid).
func (t *Texture) Loaded() bool { return t.img != nil }
func (t *Texture) Width() int   { return t.w }
func (t *Texture) Height() int  { return t.h }

// Image exposes the backing *ebiten.Image for callers that need to draw
// it directly (e.g. a debug atlas viewer).
func (t *Texture) Image() *ebiten.Image { return t.img }

// Rasterizer implements atres.Rasterizer on top of ebiten's immediate-mode
// drawing calls. It is single-threaded, matching the teacher's "willow is
// single-threaded" convention: create one per goroutine that draws.
type Rasterizer struct {
	target    *ebiten.Image
	blend     ebiten.Blend
	colorMode atres.ColorMode

	whitePixel *ebiten.Image
}

// New returns a Rasterizer with no draw target set; call SetTarget before
// the first RenderTriangles/RenderLines call each frame.
func New() *Rasterizer {
	return &Rasterizer{blend: ebiten.BlendSourceOver}
}

// SetTarget points subsequent RenderTriangles/RenderLines calls at dst,
// mirroring how the teacher's Scene.submitBatches takes a target image
// per call rather than owning one permanently.
func (r *Rasterizer) SetTarget(dst *ebiten.Image) { r.target = dst }

// Capabilities reports that ebiten has no single-channel alpha texture
// format exposed through its public API (every ebiten.Image is RGBA), so
// DynamicFont/IconFont must always pack glyphs into RGBA pages here.
func (r *Rasterizer) Capabilities() atres.Capabilities {
	return atres.Capabilities{SupportsAlphaTextures: false, NativeFormat: atres.FormatRGBA}
}

// CreateTexture allocates a new blank (or solid-fill) page.
func (r *Rasterizer) CreateTexture(w, h int, format atres.PixelFormat, initial atres.Color) (atres.Texture, error) {
	img := ebiten.NewImage(w, h)
	if initial.A != 0 || initial.R != 0 || initial.G != 0 || initial.B != 0 {
		img.Fill(toNRGBA(initial))
	}
	return &Texture{img: img, w: w, h: h}, nil
}

// WriteImage writes pixels into a sub-rectangle of tex via SubImage, the
// same pattern the teacher's atlas.go uses for sprite sub-regions.
func (r *Rasterizer) WriteImage(tex atres.Texture, dstX, dstY, width, height int, format atres.PixelFormat, pixels []byte) error {
	t, ok := tex.(*Texture)
	if !ok || t.img == nil || width == 0 || height == 0 {
		return nil
	}
	rgba := pixels
	if format == atres.FormatAlpha {
		rgba = make([]byte, width*height*4)
		for i, a := range pixels {
			rgba[i*4+0] = 255
			rgba[i*4+1] = 255
			rgba[i*4+2] = 255
			rgba[i*4+3] = a
		}
	}
	sub := t.img.SubImage(rectOf(dstX, dstY, width, height)).(*ebiten.Image)
	sub.WritePixels(rgba)
	return nil
}

// DestroyTexture releases tex's backing image reference.
func (r *Rasterizer) DestroyTexture(tex atres.Texture) {
	if t, ok := tex.(*Texture); ok {
		t.img = nil
	}
}

// SetBlendMode maps an atres.BlendMode to its ebiten.Blend value, in the
// same style as the teacher's BlendMode.EbitenBlend method.
func (r *Rasterizer) SetBlendMode(mode atres.BlendMode) {
	switch mode {
	case atres.BlendAlpha:
		r.blend = ebiten.BlendSourceOver
	default:
		r.blend = ebiten.BlendSourceOver
	}
}

func (r *Rasterizer) SetColorMode(mode atres.ColorMode) { r.colorMode = mode }

// RenderTriangles submits a triangle list to the current target, using
// tex (or a lazily-created 1x1 white pixel for untextured lining draws)
// exactly as the teacher's ensureWhitePixel does for untextured meshes.
func (r *Rasterizer) RenderTriangles(tex atres.Texture, vertices []atres.Vertex, tint atres.Color) {
	if r.target == nil || len(vertices) == 0 {
		return
	}
	var img *ebiten.Image
	if t, ok := tex.(*Texture); ok && t.img != nil {
		img = t.img
	} else {
		img = r.ensureWhitePixel()
	}
	bounds := img.Bounds()
	iw, ih := float32(bounds.Dx()), float32(bounds.Dy())

	verts := make([]ebiten.Vertex, len(vertices))
	for i, v := range vertices {
		verts[i] = ebiten.Vertex{
			DstX:   float32(v.X),
			DstY:   float32(v.Y),
			SrcX:   float32(v.U) * iw,
			SrcY:   float32(v.V) * ih,
			ColorR: float32(v.Color.R * tint.R),
			ColorG: float32(v.Color.G * tint.G),
			ColorB: float32(v.Color.B * tint.B),
			ColorA: float32(v.Color.A * tint.A),
		}
	}
	idx := make([]uint16, len(verts))
	for i := range idx {
		idx[i] = uint16(i)
	}

	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.Blend = r.blend
	if r.colorMode == atres.ColorModeAlphaMap {
		op.Filter = ebiten.FilterNearest
	}
	r.target.DrawTriangles(verts, idx, img, &op)
}

// RenderLines draws untextured geometry (strike-through/underline lining
// quads) through the same triangle path, using the white pixel texture.
func (r *Rasterizer) RenderLines(vertices []atres.Vertex, tint atres.Color) {
	r.RenderTriangles(nil, vertices, tint)
}

func (r *Rasterizer) ensureWhitePixel() *ebiten.Image {
	if r.whitePixel == nil {
		r.whitePixel = ebiten.NewImage(1, 1)
		r.whitePixel.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return r.whitePixel
}

func toNRGBA(c atres.Color) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R)),
		G: uint8(clamp255(c.G)),
		B: uint8(clamp255(c.B)),
		A: uint8(clamp255(c.A)),
	}
}

func clamp255(v float64) int {
	n := int(v * 255)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}
