package scrub

import "testing"

func TestParseCategory(t *testing.T) {
	t.Run("known names round-trip", func(t *testing.T) {
		for _, c := range Categories {
			parsed, err := ParseCategory(c.String())
			if err != nil {
				t.Errorf("ParseCategory(%q) failed: %v", c, err)
			}
			if parsed != c {
				t.Errorf("ParseCategory(%q) = %q", c, parsed)
			}
		}
	})

	t.Run("unknown name errors", func(t *testing.T) {
		if _, err := ParseCategory("passport"); err == nil {
			t.Error("Expected error for unknown category")
		}
	})

	t.Run("reserved categories parse", func(t *testing.T) {
		for _, name := range []string{"url", "insurance", "license", "vehicle", "device", "ip"} {
			if _, err := ParseCategory(name); err != nil {
				t.Errorf("Reserved category %q should parse: %v", name, err)
			}
		}
	})
}

func TestSkipSet(t *testing.T) {
	skip, err := NewSkipSet("phone", "person")
	if err != nil {
		t.Fatalf("Failed to build skip set: %v", err)
	}

	if !skip.Contains(CategoryPhone) || !skip.Contains(CategoryPerson) {
		t.Error("Skip set missing requested categories")
	}
	if skip.Contains(CategoryEmail) {
		t.Error("Skip set contains unrequested category")
	}

	names := skip.Names()
	if len(names) != 2 || names[0] != "phone" || names[1] != "person" {
		t.Errorf("Unexpected skip names: %v", names)
	}

	if _, err := NewSkipSet("phone", "bogus"); err == nil {
		t.Error("Expected error for unknown skip name")
	}
}
