package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/text/unicode/norm"
)

// Crawled Korean sites commonly render dates as "2024.03.15" or "2024. 3. 5".
var dottedDate = regexp.MustCompile(`(\d{4})\.\s*(\d{1,2})\.\s*(\d{1,2})`)

// ParseLooseDate parses a crawled date string. It tries the dotted Korean
// format first, then anything dateparse recognizes.
func ParseLooseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if m := dottedDate.FindStringSubmatch(value); m != nil {
		if t, err := time.Parse("2006-1-2", m[1]+"-"+m[2]+"-"+m[3]); err == nil {
			return t, true
		}
	}

	if t, err := dateparse.ParseAny(value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ResolveDate returns the first parsable candidate, or now when none parses.
// Falling back to now keeps malformed-date items inside recency windows
// instead of silently excluding them; the cost is that stale content with a
// broken date field can surface as recent.
func ResolveDate(now time.Time, candidates ...string) time.Time {
	for _, c := range candidates {
		if t, ok := ParseLooseDate(c); ok {
			return t
		}
	}
	return now
}

var spaces = regexp.MustCompile(`\s+`)

// CleanText NFC-normalizes crawled text and collapses runs of whitespace.
// Text crawled from macOS-hosted pages arrives NFD-decomposed, which breaks
// string comparison and renders oddly in some clients.
func CleanText(s string) string {
	s = norm.NFC.String(s)
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// TruncateRunes shortens s to at most n runes, appending an ellipsis when
// anything was cut.
func TruncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
