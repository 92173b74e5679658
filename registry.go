package atres

import "fmt"

// fontHandle is the minimal interface the registry needs from any of the
// three Font variants.
type fontHandle interface {
	fontBase() *Font
}

func (f *Font) fontBase() *Font        { return f }
func (f *BitmapFont) fontBase() *Font  { return &f.Font }
func (f *DynamicFont) fontBase() *Font { return &f.Font }
func (f *IconFont) fontBase() *Font    { return &f.Font }

// FontRegistry owns every registered Font, by name plus any aliases
// (§4.2). The zero value is ready to use.
type FontRegistry struct {
	fonts       map[string]fontHandle
	defaultName string
	order       []string
}

func newFontRegistry() *FontRegistry {
	return &FontRegistry{fonts: make(map[string]fontHandle)}
}

// Register adds font under its own Name. If allowDefault is true and no
// default font is set yet, font becomes the default. Returns an error
// (the one raising case in §7) if the name is already registered.
func (r *FontRegistry) Register(font fontHandle, allowDefault bool) error {
	name := font.fontBase().Name
	if r.fonts == nil {
		r.fonts = make(map[string]fontHandle)
	}
	if _, exists := r.fonts[name]; exists {
		return fmt.Errorf("atres: font %q already registered", name)
	}
	r.fonts[name] = font
	r.order = append(r.order, name)
	if allowDefault && r.defaultName == "" {
		r.defaultName = name
	}
	return nil
}

// RegisterAlias makes alias resolve to the same font as name. Logs and
// returns if name isn't registered, or if alias is already taken
// (§4.2, §7 LookupMiss).
func (r *FontRegistry) RegisterAlias(name, alias string) {
	font, ok := r.fonts[name]
	if !ok {
		logf("atres: registerFontAlias: font %q not registered", name)
		return
	}
	if _, exists := r.fonts[alias]; exists {
		logf("atres: registerFontAlias: alias %q already registered", alias)
		return
	}
	r.fonts[alias] = font
}

// Unregister removes font and every alias pointing to it. If font was the
// default, the first remaining registered font (by registration order)
// becomes the new default.
func (r *FontRegistry) Unregister(name string) {
	target, ok := r.fonts[name]
	if !ok {
		return
	}
	for key, f := range r.fonts {
		if f == target {
			delete(r.fonts, key)
		}
	}
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.defaultName == name {
		r.defaultName = ""
		for _, n := range r.order {
			if _, ok := r.fonts[n]; ok {
				r.defaultName = n
				break
			}
		}
	}
}

// DestroyAll removes every registered font and alias.
func (r *FontRegistry) DestroyAll() {
	r.fonts = make(map[string]fontHandle)
	r.order = nil
	r.defaultName = ""
}

// Has reports whether name (without any :scale suffix) is registered.
func (r *FontRegistry) Has(name string) bool {
	_, ok := r.fonts[name]
	return ok
}

// Get resolves name (optionally "base:scale") to a font. The empty string
// resolves to the default font. The font's scale is reset to 1.0 on every
// lookup (§3, §9) and then multiplied by the suffix; a name registered
// as-is is used whole, with scale 1.0, even if it contains a colon.
func (r *FontRegistry) Get(name string) (fontHandle, bool) {
	if name == "" {
		name = r.defaultName
	}
	base, scale := name, 1.0
	if _, whole := r.fonts[name]; !whole {
		base, scale = splitNameScale(name)
	}
	font, ok := r.fonts[base]
	if !ok {
		logf("atres: font %q not registered", base)
		return nil, false
	}
	fb := font.fontBase()
	fb.resetScale()
	fb.scale *= scale
	return font, true
}

// Fonts returns every distinct registered font (aliases collapsed), in
// registration order.
func (r *FontRegistry) Fonts() []fontHandle {
	seen := make(map[fontHandle]bool, len(r.order))
	out := make([]fontHandle, 0, len(r.order))
	for _, n := range r.order {
		f, ok := r.fonts[n]
		if !ok || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
