// Package slug derives URL-safe post identifiers from titles.
package slug

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	whitespace = regexp.MustCompile(`[\s_]+`)
	hyphenRun  = regexp.MustCompile(`-+`)
)

// Normalize converts a title to its canonical slug form: lowercase, word
// characters and hyphens only, single hyphens between words, no leading or
// trailing hyphens. The result may be empty for titles with no word characters.
func Normalize(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Allocate returns a slug for title that is not present in existing.
// The result is deterministic when the normalized title is unused; on
// collision a fresh random 6-hex-char suffix is appended, retrying until
// unique (a single draw almost always suffices given the token space).
// Titles that normalize to nothing get a bare random token so the slug is
// never empty.
func Allocate(title string, existing map[string]bool) string {
	base := Normalize(title)
	if base == "" {
		base = token()
	}
	s := base
	for existing[s] {
		s = base + "-" + token()
	}
	return s
}

// token returns 6 hex characters from a cryptographically random source.
func token() string {
	var b [3]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
