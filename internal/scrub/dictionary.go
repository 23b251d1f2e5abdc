package scrub

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// buildDictionary merges built-in terms with caller overrides into a
// deduplicated, sorted list. Entries are trimmed and empties dropped, so
// sloppy configuration never errors. Sorting keeps the generated pattern
// deterministic across runs.
func buildDictionary(defaults []string, overrides []string) []string {
	set := make(map[string]struct{}, len(defaults)+len(overrides))
	for _, term := range defaults {
		set[term] = struct{}{}
	}
	for _, term := range overrides {
		trimmed := strings.TrimSpace(term)
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}

	terms := make([]string, 0, len(set))
	for term := range set {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// compileDictionary builds a single case-insensitive, word-bounded
// alternation over the term list. Apostrophes in a term match either the
// plain or typographic form, and internal spaces match any whitespace run so
// terms still hit after normalization collapsed the input. An empty list
// yields a nil pattern, meaning the dictionary contributes no matches.
func compileDictionary(terms []string) (*regexp.Regexp, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	alternates := make([]string, 0, len(terms))
	for _, term := range terms {
		escaped := regexp.QuoteMeta(term)
		escaped = strings.ReplaceAll(escaped, "’", "'")
		escaped = strings.ReplaceAll(escaped, "'", "[’']")
		escaped = strings.ReplaceAll(escaped, " ", `\s+`)
		alternates = append(alternates, escaped)
	}

	pattern := fmt.Sprintf(`(?i)\b(?:%s)\b`, strings.Join(alternates, "|"))
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile dictionary pattern: %w", err)
	}
	return re, nil
}
