package scrub

import (
	"reflect"
	"testing"
)

func TestBuildDictionary(t *testing.T) {
	t.Run("merges and sorts", func(t *testing.T) {
		got := buildDictionary([]string{"Baker", "Adams"}, []string{"Clark"})
		want := []string{"Adams", "Baker", "Clark"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("trims and drops empty overrides", func(t *testing.T) {
		got := buildDictionary(nil, []string{"  Clark  ", "", "   "})
		want := []string{"Clark"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("deduplicates", func(t *testing.T) {
		got := buildDictionary([]string{"Adams"}, []string{"Adams", "Adams "})
		want := []string{"Adams"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})
}

func TestCompileDictionary(t *testing.T) {
	t.Run("empty list yields nil pattern", func(t *testing.T) {
		re, err := compileDictionary(nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if re != nil {
			t.Error("Expected nil pattern for empty dictionary")
		}
	})

	t.Run("matches case-insensitively as whole word", func(t *testing.T) {
		re, err := compileDictionary([]string{"Fitzgerald"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !re.MatchString("saw fitzgerald today") {
			t.Error("Lowercase variant should match")
		}
		if re.MatchString("Fitzgeralds") {
			t.Error("Partial word should not match")
		}
	})

	t.Run("apostrophe matches both forms", func(t *testing.T) {
		re, err := compileDictionary([]string{"O'Brien"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !re.MatchString("Dr O'Brien") {
			t.Error("Plain apostrophe should match")
		}
		if !re.MatchString("Dr O’Brien") {
			t.Error("Typographic apostrophe should match")
		}
	})

	t.Run("internal spaces match whitespace runs", func(t *testing.T) {
		re, err := compileDictionary([]string{"General Hospital"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !re.MatchString("City General  Hospital") {
			t.Error("Multi-space variant should match")
		}
		if !re.MatchString("General\tHospital") {
			t.Error("Tab-separated variant should match")
		}
	})

	t.Run("regex metacharacters are literal", func(t *testing.T) {
		re, err := compileDictionary([]string{"Mt. Sinai"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !re.MatchString("seen at Mt. Sinai today") {
			t.Error("Escaped period should match literally")
		}
		if re.MatchString("seen at Mtx Sinai today") {
			t.Error("Period must not act as a wildcard")
		}
	})
}
