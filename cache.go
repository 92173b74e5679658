package atres

import (
	"hash/maphash"
	"strconv"
)

// defaultCacheSize is the number of entries each cache keeps before
// evicting the oldest insertion (§4.7).
const defaultCacheSize = 1000

// cache is a bounded, insertion-ordered, fingerprint-keyed lookup table
// (§4.7). Eviction drops the oldest entry once size exceeds limit; a hit
// is only returned if revalid reports the cached value is still usable
// (e.g. its atlas textures are still loaded).
type cache[T any] struct {
	limit   int
	order   []uint64
	entries map[uint64]T
	revalid func(T) bool
}

func newCache[T any](limit int, revalid func(T) bool) *cache[T] {
	if limit <= 0 {
		limit = defaultCacheSize
	}
	return &cache[T]{
		limit:   limit,
		entries: make(map[uint64]T),
		revalid: revalid,
	}
}

func (c *cache[T]) get(key uint64) (T, bool) {
	v, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.revalid != nil && !c.revalid(v) {
		c.remove(key)
		var zero T
		return zero, false
	}
	return v, true
}

func (c *cache[T]) put(key uint64, v T) {
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = v
	for len(c.order) > c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

func (c *cache[T]) remove(key uint64) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *cache[T]) clear() {
	c.order = nil
	c.entries = make(map[uint64]T)
}

func (c *cache[T]) setLimit(limit int) {
	if limit <= 0 {
		limit = defaultCacheSize
	}
	c.limit = limit
	for len(c.order) > c.limit {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// fingerprintSeed is shared by every fingerprint call so that identical
// inputs across calls hash to the same key within one process run.
var fingerprintSeed = maphash.MakeSeed()

// textFingerprint derives a cache key from everything that affects a
// DrawText call's output: the raw text, the rect dimensions (not its
// origin, which only translates the result), alignment/wrap mode, the
// tint color (alpha forced to 1 via canonicalAlpha so an alpha-only
// fade doesn't thrash the cache), and the layout offset (§4.7).
func textFingerprint(text string, rectW, rectH float64, h Horizontal, v Vertical, fontName string, color Color, offset Vec2) uint64 {
	var hh maphash.Hash
	hh.SetSeed(fingerprintSeed)
	hh.WriteString(text)
	hh.WriteByte(0)
	hh.WriteString(strconv.FormatFloat(rectW, 'f', -1, 64))
	hh.WriteByte(0)
	hh.WriteString(strconv.FormatFloat(rectH, 'f', -1, 64))
	hh.WriteByte(0)
	hh.WriteByte(byte(h))
	hh.WriteByte(byte(v))
	hh.WriteByte(0)
	hh.WriteString(fontName)
	hh.WriteByte(0)
	c := color.canonicalAlpha()
	hh.WriteString(strconv.FormatFloat(c.R, 'f', -1, 64))
	hh.WriteString(strconv.FormatFloat(c.G, 'f', -1, 64))
	hh.WriteString(strconv.FormatFloat(c.B, 'f', -1, 64))
	hh.WriteByte(0)
	hh.WriteString(strconv.FormatFloat(offset.X, 'f', -1, 64))
	hh.WriteString(strconv.FormatFloat(offset.Y, 'f', -1, 64))
	return hh.Sum64()
}

// linesFingerprint derives a cache key for a MakeRenderLines call, which
// unlike DrawText never bakes in an effect/color (those are resolved at
// sequence-build time), so the key only needs text, rect, and alignment.
func linesFingerprint(text string, rectW, rectH float64, h Horizontal, v Vertical) uint64 {
	var hh maphash.Hash
	hh.SetSeed(fingerprintSeed)
	hh.WriteString(text)
	hh.WriteByte(0)
	hh.WriteString(strconv.FormatFloat(rectW, 'f', -1, 64))
	hh.WriteByte(0)
	hh.WriteString(strconv.FormatFloat(rectH, 'f', -1, 64))
	hh.WriteByte(0)
	hh.WriteByte(byte(h))
	hh.WriteByte(byte(v))
	return hh.Sum64()
}

// renderTextUsable reports whether every texture a cached RenderText
// references is still loaded, per §4.7's TextureInvalid invalidation
// rule: a cache hit whose atlas was evicted/lost must be rebuilt rather
// than handed back as-is.
func renderTextUsable(rt RenderText) bool {
	check := func(seqs []RenderSequence) bool {
		for _, s := range seqs {
			if s.Texture != nil && !s.Texture.Loaded() {
				return false
			}
		}
		return true
	}
	return check(rt.TextSequences) && check(rt.ShadowSequences) && check(rt.BorderSequences)
}
