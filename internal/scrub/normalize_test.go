package scrub

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"curly quotes fold", "John’s “note”", `John's "note"`},
		{"dashes fold", "pre–op — stable", "pre-op - stable"},
		{"bullets become spaces", "BP•120/80", "BP 120/80"},
		{"whitespace collapses", "a \t  b", "a b"},
		{"newlines survive", "line one\nline two", "line one\nline two"},
		{"fullwidth digits fold", "ＭＲＮ １２３", "MRN 123"},
		{"plain ascii untouched", "no changes here.", "no changes here."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTidyPunctuation(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"space before period removed", "visit [PERSON] .", "visit [PERSON]."},
		{"duplicate punctuation collapses", "done,,, next", "done, next"},
		{"leading and trailing space trimmed", "  text  ", "text"},
		{"clean text untouched", "already tidy.", "already tidy."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tidyPunctuation(tc.input); got != tc.want {
				t.Errorf("tidyPunctuation(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
