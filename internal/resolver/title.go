package resolver

import "strings"

// markerRunes are cosmetic prefixes and suffixes apps add to titles, such as
// unsaved-change bullets and "app — document" separators.
const markerRunes = "•●◦·*—–-|"

var editedSuffixes = []string{
	"— edited",
	"- edited",
	"(edited)",
}

// NormalizeTitle reduces a title to the part that survives cosmetic changes:
// surrounding whitespace, bullet and separator markers, and "Edited" suffixes
// are removed, and the result is lowercased.
func NormalizeTitle(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	for {
		before := s
		for _, suffix := range editedSuffixes {
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
		}
		s = strings.TrimSpace(strings.Trim(s, markerRunes))
		if s == before {
			return s
		}
	}
}

// TitlesMatch reports whether two titles plausibly name the same window:
// after normalization either contains the other. Empty titles only match
// empty titles.
func TitlesMatch(a, b string) bool {
	na, nb := NormalizeTitle(a), NormalizeTitle(b)
	if na == "" || nb == "" {
		return na == nb
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
