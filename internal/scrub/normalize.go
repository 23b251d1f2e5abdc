package scrub

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Typographic variants folded to plain ASCII before detection. Patterns then
// only have to deal with one spelling of each character.
var asciiFolder = strings.NewReplacer(
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"‛", "'", // reversed single quote
	"′", "'", // prime
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"″", `"`, // double prime
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"•", " ", // bullet
	"·", " ", // middle dot
	"‧", " ", // hyphenation point
	"⁃", " ", // hyphen bullet
	"・", " ", // katakana middle dot
)

var (
	// Runs of whitespace other than newlines collapse to a single space.
	// Newlines stay so line-oriented note structure survives.
	multiSpaceRe = regexp.MustCompile(`[^\S\r\n]+`)

	spaceBeforePunctRe = regexp.MustCompile(`\s+([.,;:!?])`)
	duplicatePunctRe   = regexp.MustCompile(`([.,;:!?]){2,}`)
)

// Normalize canonicalizes text ahead of detection: NFKC compatibility
// folding, quote/dash/bullet folding, and whitespace collapse. It carries no
// category logic and cannot fail.
func Normalize(input string) string {
	folded := asciiFolder.Replace(norm.NFKC.String(input))
	return multiSpaceRe.ReplaceAllString(folded, " ")
}

// tidyPunctuation cleans up artifacts left by token replacement: whitespace
// stranded before punctuation and runs of the same punctuation mark where
// adjacent spans were both redacted.
func tidyPunctuation(input string) string {
	text := spaceBeforePunctRe.ReplaceAllString(input, "$1")
	text = duplicatePunctRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
