// Package vocab holds the canonical department and topic vocabularies and
// the free-text normalization used to match user input and feed keys
// against them.
package vocab

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Departments is the canonical list of the 22 departments, accents preserved
var Departments = []string{
	"Alta Verapaz",
	"Baja Verapaz",
	"Chimaltenango",
	"Chiquimula",
	"El Progreso",
	"Escuintla",
	"Guatemala",
	"Huehuetenango",
	"Izabal",
	"Jalapa",
	"Jutiapa",
	"Petén",
	"Quetzaltenango",
	"Quiché",
	"Retalhuleu",
	"Sacatepéquez",
	"San Marcos",
	"Santa Rosa",
	"Sololá",
	"Suchitepéquez",
	"Totonicapán",
	"Zacapa",
}

// Topics is the canonical list of topics, in the form stored in the database
var Topics = []string{
	"movilidad",
	"consejos de desarrollo",
	"congreso",
	"ambiente",
	"duda y comprueba",
	"concejos municipales",
	"acceso a la información",
}

// protectedPhrases are multi-word labels whose internal connectors must
// survive list splitting ("duda y comprueba" would otherwise split on "y")
var protectedPhrases = []string{"duda y comprueba"}

var (
	separatorRe = regexp.MustCompile(`\s*(,|;|\by\b|\be\b)\s*`)
	spacesRe    = regexp.MustCompile(`\s+`)
	wildcardRe  = regexp.MustCompile(`^todos?$`)

	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	topicLookup      = buildLookup(Topics)
	departmentLookup = buildLookup(Departments)

	phraseRes = buildPhraseRes()
)

func buildPhraseRes() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(protectedPhrases))
	for _, phrase := range protectedPhrases {
		res[phrase] = regexp.MustCompile(`(?i)` + strings.ReplaceAll(regexp.QuoteMeta(phrase), ` `, `\s*`))
	}
	return res
}

// Fold lowercases a string and strips diacritics, for accent-insensitive
// comparison. Returns the input unchanged (lowercased) if folding fails.
func Fold(s string) string {
	folded, _, err := transform.String(deaccent, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// CollapseSpaces trims and collapses runs of whitespace to single spaces
func CollapseSpaces(s string) string {
	return spacesRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// buildLookup maps both accented and folded forms of every label to its
// canonical (accented) form
func buildLookup(labels []string) map[string]string {
	m := make(map[string]string, len(labels)*2)
	for _, l := range labels {
		m[strings.ToLower(l)] = l
		m[Fold(l)] = l
	}
	return m
}

// SplitList tokenizes a free-text utterance into list segments. Separators
// are comma, semicolon and the standalone words "y" and "e". Known
// multi-word phrases are protected before splitting so their internal
// connectors survive. Empty segments are dropped, order is preserved.
func SplitList(text string) []string {
	t := strings.ToLower(strings.TrimSpace(text))

	for phrase, re := range phraseRes {
		placeholder := strings.ReplaceAll(phrase, " ", "_")
		t = re.ReplaceAllString(t, placeholder)
	}

	t = separatorRe.ReplaceAllString(t, ",")

	var segments []string
	for _, seg := range strings.Split(t, ",") {
		seg = CollapseSpaces(seg)
		if seg == "" {
			continue
		}
		for _, phrase := range protectedPhrases {
			placeholder := strings.ReplaceAll(phrase, " ", "_")
			if seg == placeholder {
				seg = phrase
			}
		}
		segments = append(segments, seg)
	}
	return segments
}

// NormalizeTopics canonicalizes a list of topic segments. A "todos"/"todo"
// segment expands to the full topic vocabulary. Segments that match no
// canonical topic (accent-insensitively) come back in invalid. Valid
// results are deduplicated preserving first occurrence.
func NormalizeTopics(segments []string) (valid, invalid []string) {
	for _, seg := range segments {
		if wildcardRe.MatchString(strings.ToLower(seg)) {
			return append([]string{}, Topics...), nil
		}
	}
	return canonicalize(segments, topicLookup)
}

// NormalizeDepartments canonicalizes a list of department segments against
// the department vocabulary
func NormalizeDepartments(segments []string) (valid, invalid []string) {
	return canonicalize(segments, departmentLookup)
}

func canonicalize(segments []string, lookup map[string]string) (valid, invalid []string) {
	seen := make(map[string]bool)
	for _, seg := range segments {
		canon, ok := lookup[Fold(seg)]
		if !ok {
			canon, ok = lookup[strings.ToLower(seg)]
		}
		if !ok {
			invalid = append(invalid, seg)
			continue
		}
		if seen[canon] {
			continue
		}
		seen[canon] = true
		valid = append(valid, canon)
	}
	return valid, invalid
}

// Match reports whether two labels are the same after case and diacritic
// folding, used to compare subscriber labels against feed keys.
func Match(a, b string) bool {
	return Fold(CollapseSpaces(a)) == Fold(CollapseSpaces(b))
}

// NormalizeLink reduces a URL to its dedup key: scheme stripped, query
// dropped, trailing slashes dropped, lowercased.
func NormalizeLink(link string) string {
	if link == "" {
		return ""
	}
	u := strings.TrimPrefix(strings.TrimPrefix(link, "https://"), "http://")
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimRight(u, "/")
	return strings.ToLower(u)
}

// StripScheme removes the http(s) prefix so chat clients don't render a
// link preview
func StripScheme(link string) string {
	return strings.TrimPrefix(strings.TrimPrefix(link, "https://"), "http://")
}
