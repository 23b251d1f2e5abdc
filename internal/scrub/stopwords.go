package scrub

import (
	"strings"
	"unicode"
)

// isNameStopword rejects person-detector candidates that are clinical
// jargon rather than names. A candidate is rejected when its uppercased,
// punctuation-stripped form equals a stoplist entry, or when it starts with
// a "St." / "St " prefix, which is reserved for the street and facility
// patterns rather than the name "Saint". Pure function of the candidate
// text, so a rejection is stable across re-evaluations.
func isNameStopword(candidate string) bool {
	trimmed := strings.TrimSpace(candidate)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "st. ") || strings.HasPrefix(lower, "st ") {
		return true
	}

	var b strings.Builder
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	_, ok := nameStoplist[strings.TrimSpace(b.String())]
	return ok
}
