package rooms

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// cleanText normalizes s to NFC, trims surrounding whitespace and caps it at
// limit code points.
func cleanText(s string, limit int) string {
	s = strings.TrimSpace(norm.NFC.String(s))
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

// cleanName normalizes a display name. Names are not length capped here; the
// transport validates their size.
func cleanName(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
