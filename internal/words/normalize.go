package words

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningTilde survives folding so that "ñ" stays distinct from "n".
const combiningTilde = '\u0303'

// Fold returns the canonical dictionary form of w: trimmed, lowercased,
// with accents removed except for ñ.
func Fold(w string) string {
	w = strings.TrimSpace(w)
	if w == "" {
		return ""
	}
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.Predicate(func(r rune) bool {
			return unicode.Is(unicode.Mn, r) && r != combiningTilde
		})),
		norm.NFC,
	)
	out, _, err := transform.String(t, w)
	if err != nil {
		out = w
	}
	return strings.ToLower(out)
}

// isWord reports whether a folded entry contains only letters.
func isWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
