package validation

import (
	"regexp"
	"strings"
)

// AllowedLanguages is the language allow-list, compared case-insensitively.
var AllowedLanguages = []string{
	"ENGLISH",
	"TAMIL",
	"TELUGU",
	"HINDI",
	"MALAYALAM",
	"KANNADA",
	"KOREAN",
	"JAPANESE",
	"SPANISH",
}

// AllowedGenres is the genre allow-list in canonical form.
var AllowedGenres = []string{
	"ACTION",
	"DRAMA",
	"COMEDY",
	"ROMANCE",
	"THRILLER",
	"HORROR",
	"SCI-FI",
	"FANTASY",
	"CRIME",
	"ADVENTURE",
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// NormalizeGenre returns the canonical form of a genre: trimmed, inner
// whitespace runs replaced by a single hyphen, repeated hyphens collapsed,
// upper-cased.  "  sci   fi " becomes "SCI-FI".
func NormalizeGenre(g string) string {
	g = strings.TrimSpace(g)
	if g == "" {
		return ""
	}
	g = whitespaceRun.ReplaceAllString(g, "-")
	g = hyphenRun.ReplaceAllString(g, "-")
	return strings.ToUpper(g)
}

// NormalizeLanguage returns the canonical form of a language: trimmed and
// upper-cased, as listed in AllowedLanguages.
func NormalizeLanguage(l string) string { return strings.ToUpper(strings.TrimSpace(l)) }

// NormalizeGenres canonicalizes every genre and drops the empty ones.
func NormalizeGenres(gs []string) []string {
	out := make([]string, 0, len(gs))
	for _, g := range gs {
		if n := NormalizeGenre(g); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
