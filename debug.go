package atres

import "log"

// Debug gates the non-fatal warnings described in §7 (LookupMiss,
// MarkupIllFormed, WordTooLong, AtlasGrowth, TextureInvalid). Off by
// default; callers that want warnings surfaced during development set it
// once at startup. atres is single-threaded (§5), so this is a plain
// package variable, not an atomic one.
var Debug bool

// logf prints a warning via the standard logger when Debug is enabled.
func logf(format string, args ...any) {
	if !Debug {
		return
	}
	log.Printf(format, args...)
}
