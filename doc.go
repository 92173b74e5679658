// Package atres turns marked-up text, a target rectangle, and a set of
// registered fonts into batches of draw commands for a 2D rasterizer.
//
// The pipeline runs in four stages: the tag parser strips inline markup
// into a clean string plus an ordered tag list ([Parse]); the word and
// line builder lays the clean text out against a rectangle honoring
// alignment and wrapping rules; the font registry's glyph atlas
// rasterizes and packs glyphs on demand; and the sequence builder turns
// the laid-out lines into batched vertex lists (with shadow, border,
// strike-through and underline geometry) that a [Renderer] caches by
// fingerprint.
//
// # Quick start
//
//	r := atres.NewRenderer(rasterizer)
//	r.RegisterFont(font, true)
//	text := r.DrawText(atres.Rect{X: 0, Y: 0, Width: 300, Height: 100},
//		"[c=red]Hello[/c] world", atres.HorizontalCenter, atres.VerticalTop,
//		atres.ColorWhite, atres.Vec2{})
//
// atres never draws anything itself and never decodes a font file itself.
// The [Rasterizer] and [Decoder] interfaces describe the two collaborators
// a host application must supply; reference implementations live in the
// backend/ebitenraster and backend/opentypefont subpackages.
package atres
