// Package hotkey derives the canonical ids that key click counters.
//
// The two content sources and the trending screen disagree on id shape: the
// notices crawler writes bare ids, older records carry a "notice-" prefix,
// and leaderboard rows are surfaced with a "hot-" presentation prefix. Every
// raw id referring to the same logical content must collapse to one counter
// document, so the canonical namespace is a single flat "notice-" prefix.
package hotkey

import "strings"

const (
	// canonicalPrefix is the flat namespace every counter key lives under.
	canonicalPrefix = "notice-"
	// displayPrefix tags ids that trending/leaderboard views hand back out.
	displayPrefix = "hot-"
)

// Normalize maps any raw content id to its canonical counter key.
// It is idempotent, defined for every string, and never errors; blank input
// is passed through and rejected by callers.
func Normalize(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" {
		return ""
	}
	id = strings.TrimPrefix(id, displayPrefix)
	if !strings.HasPrefix(id, canonicalPrefix) {
		id = canonicalPrefix + id
	}
	return id
}

// Display returns the presentation id used for leaderboard rows. It
// round-trips: Normalize(Display(x)) == Normalize(x).
func Display(canonical string) string {
	return displayPrefix + canonical
}
