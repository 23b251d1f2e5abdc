package scrub

import (
	"fmt"
	"regexp"
	"strings"
)

// Fixed category patterns. These are compiled per engine in New rather than
// held as package singletons so independently-configured engines never share
// state. Word characters inside names accept combining marks and both
// apostrophe forms so accented and possessive names match.

const (
	emailPattern = `(?i)\b[\w.+%-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`

	// North-American numbers with optional country code, flexible separators
	// (bullets survive only in un-normalized input), and optional extension.
	phonePattern = `(?i)\b(?:\+?1[-.\s•·]?)?\(?\d{3}\)?[-.\s•·]?\d{3}[-.\s•·]?\d{4}(?:\s*(?:x|ext\.?|extension)\s*\d{1,6})?\b`

	ssnPattern = `\b(?:\d{3}-\d{2}-\d{4}|xxx-xx-\d{4})\b`

	// Labeled identifiers: a chart/account keyword followed by an
	// alphanumeric token of at least 4 characters.
	mrnLabelPattern = `(?i)\b(?:MRN|Acct|Account|Patient\s*ID|Chart)\s*[:#]?\s*-?\s*[A-Za-z0-9-]{4,}\b`

	zipPattern = `\b\d{5}(?:-\d{4})?\b`

	// A facility-indicating prefix, one to five capitalized words, and an
	// optional facility-type suffix.
	facilityPattern = `(?i)\b(?:St\.|Saint|Mt\.|Mount|Univ\.|University|Memorial|Children'?s|General|County)\s+[A-Z][\p{L}\p{M}\p{N}’'.-]+(?:\s+[A-Z][\p{L}\p{M}\p{N}’'.-]+){0,4}(?:\s+(?:Hospital|Med(?:ical)?\s*Center|Clinic|Health(?:care)?|Infirmary))?\b`

	addressPattern = `(?i)\b\d{1,6}\s+(?:[A-Z][\w.-]*\s+){1,5}(?:St\.|Street|Ave(?:nue)?|Rd\.?|Road|Dr\.?|Drive|Blvd\.?|Boulevard|Ln\.?|Lane|Ct\.?|Court|Pl\.?|Place|Ter(?:race)?|Way)\b(?:\s*(?:Apt|Unit|#)\s*\w+)?`

	// Decimal-degree latitude/longitude pairs with hemisphere letters.
	coordinatePattern = `(?i)\b-?\d{1,3}\.\d+\s*[°º]?\s*[NS]\b[,\s]*-?\d{1,3}\.\d+\s*[°º]?\s*[EW]\b`

	// Honorific or professional title followed by one or two capitalized words.
	titledNamePattern = `(?i)\b(?:Drs?\.?|Prof\.?|Mr\.?|Mrs\.?|Ms\.?|Mx\.?|Capt\.?|Captain|Lt\.?|Lieutenant|Sgt\.?|Sergeant|Officer|Chief|Judge|Sir|Dame|Madam|Rev\.?|Reverend|Father|Fr\.?|Sister|Brother|Pastor|Chaplain|Rabbi|Imam)\s+[A-Z][\p{L}’'-]+(?:\s+[A-Z][\p{L}’'-]+)?`

	// Two or three consecutive capitalized words, the catch-all person
	// detector. Deliberately case-sensitive.
	capitalSequencePattern = `\b[A-Z][\p{L}’']+\s+[A-Z][\p{L}’']+(?:\s+[A-Z][\p{L}’']+)?\b`

	datePattern = `(?i)\b(?:\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})|\d{4}-\d{2}-\d{2}|(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{2,4})\b`

	relativeDatePattern = `(?i)\b(?:yesterday|today|tomorrow|last\s+(?:night|week|month|year|Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)|this\s+(?:morning|afternoon|evening|week|month)|\d+\s+(?:day|days|week|weeks|month|months|year|years)\s+ago)\b`
)

// buildBareMRNPattern compiles the bare digit-run identifier pattern for the
// configured length range.
func buildBareMRNPattern(minLen, maxLen int) (*regexp.Regexp, error) {
	re, err := regexp.Compile(fmt.Sprintf(`\b\d{%d,%d}\b`, minLen, maxLen))
	if err != nil {
		return nil, fmt.Errorf("failed to compile MRN pattern: %w", err)
	}
	return re, nil
}

// buildFirstLastPattern compiles the common-first-name + surname detector
// from the built-in first-name list.
func buildFirstLastPattern() (*regexp.Regexp, error) {
	firsts := make([]string, 0, len(defaultFirstNames))
	for _, name := range defaultFirstNames {
		firsts = append(firsts, regexp.QuoteMeta(name))
	}
	pattern := fmt.Sprintf(`(?i)\b(?:%s)\s+[A-Z][\p{L}’'-]+(?:\s+[A-Z][\p{L}’'-]+)?`, strings.Join(firsts, "|"))
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile first+last pattern: %w", err)
	}
	return re, nil
}
