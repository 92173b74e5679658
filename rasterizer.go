package atres

// PixelFormat selects the channel layout of an atlas page texture.
type PixelFormat uint8

const (
	// FormatAlpha is a single-channel texture; preferred for glyph pages
	// when the rasterizer supports it (§4.2).
	FormatAlpha PixelFormat = iota
	// FormatRGBA is a four-channel texture; the fallback when Alpha isn't
	// supported, and the only option for fonts that forbid alpha textures
	// (e.g. IconFont, §4.2).
	FormatRGBA
)

// ColorMode selects how a rasterizer combines a textured quad's sampled
// texel with its vertex color.
type ColorMode uint8

const (
	// ColorModeAlphaMap treats the texture as a single-channel alpha mask
	// multiplied by the vertex color (used for Alpha-format pages).
	ColorModeAlphaMap ColorMode = iota
	// ColorModeMultiply treats the texture as RGBA, multiplied by the
	// vertex color (used for RGBA-format pages, e.g. icons).
	ColorModeMultiply
)

// BlendMode selects a compositing operation for a render_triangles or
// render_lines call. atres only ever requests BlendAlpha; the type exists
// so the Rasterizer contract documents the full selectable surface a host
// rasterizer may expose to other callers.
type BlendMode uint8

const (
	BlendAlpha BlendMode = iota
)

// Vertex is a single textured or plain vertex as consumed by Rasterizer's
// render_triangles/render_lines calls. Six vertices (two triangles) make
// one quad, textured or plain (lining).
type Vertex struct {
	X, Y   float64
	U, V   float64
	Color  Color
}

// Capabilities reports what pixel formats and native behaviors a
// Rasterizer implementation supports. DynamicFont consults this each time
// it allocates a glyph or border page to decide whether that page may use
// FormatAlpha (§4.2).
type Capabilities struct {
	SupportsAlphaTextures bool
	NativeFormat          PixelFormat
}

// Texture is an opaque handle to a single rasterizer-owned texture page.
// atres never inspects a Texture's contents directly; it only tracks
// whether the handle still reports itself as loaded (§4.7 TextureInvalid).
type Texture interface {
	// Loaded reports whether the underlying GPU/CPU resource is still
	// valid. A Texture that starts reporting false invalidates every
	// cache entry that references it (§7 TextureInvalid).
	Loaded() bool
	// Width and Height return the page's pixel dimensions.
	Width() int
	Height() int
}

// Rasterizer is the external collaborator that issues draw calls and owns
// GPU (or equivalent) texture memory. atres's core package never imports
// an implementation of this interface; see backend/ebitenraster for a
// reference adapter built on ebiten.
type Rasterizer interface {
	// Capabilities reports supported pixel formats.
	Capabilities() Capabilities

	// CreateTexture allocates a new page of the given size and format,
	// filled with initial (typically transparent black).
	CreateTexture(width, height int, format PixelFormat, initial Color) (Texture, error)

	// WriteImage copies a CPU-side alpha or RGBA image (row-major, one or
	// four bytes per pixel matching format) into texture at (dstX, dstY).
	WriteImage(tex Texture, dstX, dstY, width, height int, format PixelFormat, pixels []byte) error

	// DestroyTexture releases a page. After this call the Texture's
	// Loaded method must report false.
	DestroyTexture(tex Texture)

	// SetBlendMode and SetColorMode configure state for the draw calls
	// that follow, mirroring the source mode/blend switch per batch (§6).
	SetBlendMode(mode BlendMode)
	SetColorMode(mode ColorMode)

	// RenderTriangles submits a textured batch: len(vertices) must be a
	// multiple of 3. color is an overall batch tint (already folded into
	// per-vertex colors by the sequence builder; most backends can ignore
	// it and rely on vertex color alone).
	RenderTriangles(tex Texture, vertices []Vertex, color Color)

	// RenderLines submits an untextured batch of quads built from plain
	// (lining) vertices, e.g. strike-through/underline/software-border
	// geometry. len(vertices) must be a multiple of 3, matching
	// RenderTriangles's triangle-list convention with tex == nil.
	RenderLines(vertices []Vertex, color Color)
}
