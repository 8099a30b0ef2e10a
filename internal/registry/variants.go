package registry

import "strings"

// providerSuffixes lists trailing organizational forms stripped when deriving
// provider name variants. Longest forms first so "NHS Foundation Trust" wins
// over "Foundation Trust".
var providerSuffixes = []string{
	" NHS Foundation Trust",
	" NHS Trust",
	" Foundation Trust",
	" NHS FT",
	" FT",
}

// providerPrefixes lists leading organizational forms stripped when deriving
// provider name variants.
var providerPrefixes = []string{
	"The ",
	"NHS ",
}

// locationMarkers are the words that terminate a leading location token,
// e.g. "Cambridge" in "Cambridge University Hospitals NHS Foundation Trust".
var locationMarkers = []string{
	"NHS",
	"University",
	"Hospitals",
	"Hospital",
	"Teaching",
}

// parentSuffixes lists trailing forms stripped from parent-body names before
// abbreviated variants are derived.
var parentSuffixes = []string{
	" Integrated Care Board",
	" Integrated Care System",
	" ICB",
	" ICS",
}

// ProviderVariants derives the deduplicated set of alternate textual forms a
// provider may appear under in notice text: the full name, the name with
// organizational suffixes and prefixes stripped, and the leading location
// token.
func ProviderVariants(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	var out variantSet
	out.add(name)

	for _, suffix := range providerSuffixes {
		if trimmed, ok := cutSuffixFold(name, suffix); ok {
			out.add(trimmed)
			break
		}
	}

	for _, prefix := range providerPrefixes {
		if trimmed, ok := cutPrefixFold(name, prefix); ok {
			out.add(trimmed)
			break
		}
	}

	if loc := LocationToken(name); loc != "" {
		out.add(loc)
	}

	return out.values
}

// ParentBodyVariants derives the deduplicated variant set for a parent body:
// the full name, the name with "NHS" prefix and board suffixes stripped, and
// bracketed abbreviation forms of the stripped name.
func ParentBodyVariants(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	var out variantSet
	out.add(name)

	base := name
	if trimmed, ok := cutPrefixFold(base, "NHS "); ok {
		base = trimmed
	}
	for _, suffix := range parentSuffixes {
		if trimmed, ok := cutSuffixFold(base, suffix); ok {
			base = trimmed
			break
		}
	}

	out.add(base)
	out.add(base + " (ICB)")
	out.add(base + " [ICB]")
	out.add(base + " ICB")

	return out.values
}

// LocationToken extracts the text preceding the first marker word in an
// organization name, typically the place name. Returns "" when the name does
// not start with a location (marker first) or contains no marker at all.
func LocationToken(name string) string {
	fields := strings.Fields(name)
	for i, field := range fields {
		for _, marker := range locationMarkers {
			if strings.EqualFold(field, marker) {
				if i == 0 {
					return ""
				}
				return strings.Join(fields[:i], " ")
			}
		}
	}
	return ""
}

// variantSet collects strings preserving insertion order and skipping
// case-insensitive duplicates and empties.
type variantSet struct {
	values []string
	seen   map[string]struct{}
}

func (s *variantSet) add(v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	key := strings.ToLower(v)
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, dup := s.seen[key]; dup {
		return
	}
	s.seen[key] = struct{}{}
	s.values = append(s.values, v)
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return strings.TrimSpace(s[len(prefix):]), true
	}
	return s, false
}

func cutSuffixFold(s, suffix string) (string, bool) {
	if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return strings.TrimSpace(s[:len(s)-len(suffix)]), true
	}
	return s, false
}
