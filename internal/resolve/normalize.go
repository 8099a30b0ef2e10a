// Package resolve maps free-text buyer names to canonical providers using
// tiered exact, fuzzy, and keyword matching.
package resolve

import (
	"regexp"
	"strings"
)

// stopPhrases lists organizational noise removed as whole-word tokens during
// name normalization. Multi-word phrases come first so "university hospitals"
// is removed before "hospitals" alone would match.
var stopPhrases = []string{
	"university hospitals",
	"nhs",
	"trust",
	"foundation",
	"ft",
	"hospitals",
}

var (
	punctRe      = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// NormalizeName standardizes an organization name for exact matching by:
//  1. Lower-casing
//  2. Stripping punctuation
//  3. Removing organizational stop-words as whole-word tokens
//  4. Collapsing multiple spaces
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	name = punctRe.ReplaceAllString(name, " ")

	for _, phrase := range stopPhrases {
		name = removePhrase(name, phrase)
	}

	name = multiSpaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// removePhrase deletes whole-word occurrences of phrase from s, leaving a
// space so surrounding tokens stay separated.
func removePhrase(s, phrase string) string {
	for {
		idx := indexWord(s, phrase)
		if idx < 0 {
			return s
		}
		s = s[:idx] + " " + s[idx+len(phrase):]
	}
}

// indexWord finds phrase in s at a word boundary, or -1.
func indexWord(s, phrase string) int {
	from := 0
	for {
		idx := strings.Index(s[from:], phrase)
		if idx < 0 {
			return -1
		}
		idx += from
		end := idx + len(phrase)
		startOK := idx == 0 || s[idx-1] == ' '
		endOK := end == len(s) || s[end] == ' '
		if startOK && endOK {
			return idx
		}
		from = idx + 1
	}
}

// tokenBoundaryRe matches the words that terminate a leading location token
// in a buyer or provider name.
var tokenBoundaryRe = regexp.MustCompile(`\b(nhs|trust|foundation|university)\b`)

// LeadingToken extracts the text preceding the first organizational marker
// word ("nhs", "trust", "foundation", "university") or the first " and ",
// whichever comes first. Returns "" when the name starts with a marker or
// contains none.
func LeadingToken(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return ""
	}

	cut := -1
	if loc := tokenBoundaryRe.FindStringIndex(lower); loc != nil {
		cut = loc[0]
	}
	if idx := strings.Index(lower, " and "); idx >= 0 && (cut < 0 || idx < cut) {
		cut = idx
	}
	if cut <= 0 {
		return ""
	}

	return strings.TrimSpace(lower[:cut])
}
