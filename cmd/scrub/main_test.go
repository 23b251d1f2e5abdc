package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notesentry/notesentry/internal/scrub"
)

func runOnFile(t *testing.T, input string, skip []string, quiet, statsJSON bool) (string, string) {
	t.Helper()

	dir := t.TempDir()
	inPath := filepath.Join(dir, "note.txt")
	outPath := filepath.Join(dir, "note.redacted.txt")
	if err := os.WriteFile(inPath, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	var statsOut bytes.Buffer
	if err := run(inPath, outPath, "", skip, quiet, statsJSON, &statsOut); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	output, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	return string(output), statsOut.String()
}

func TestRunRedactsFile(t *testing.T) {
	output, summary := runOnFile(t, "Reach jane.doe@example.com or 555-867-5309.", nil, false, false)

	if !strings.Contains(output, "[EMAIL]") || !strings.Contains(output, "[PHONE]") {
		t.Errorf("output = %q, want [EMAIL] and [PHONE] tokens", output)
	}
	if !strings.Contains(summary, "Redactions applied: 2") {
		t.Errorf("summary = %q, want total of 2", summary)
	}
	if !strings.Contains(summary, "emails") || !strings.Contains(summary, "phones") {
		t.Errorf("summary = %q, want per-category lines", summary)
	}
}

func TestRunStatsJSON(t *testing.T) {
	_, summary := runOnFile(t, "Reach jane.doe@example.com today.", nil, false, true)

	var stats scrub.Stats
	if err := json.Unmarshal([]byte(summary), &stats); err != nil {
		t.Fatalf("stats output is not JSON: %v (%q)", err, summary)
	}
	if stats.Emails != 1 {
		t.Errorf("emails = %d, want 1", stats.Emails)
	}
}

func TestRunQuietSuppressesStats(t *testing.T) {
	t.Run("summary form", func(t *testing.T) {
		output, summary := runOnFile(t, "Reach jane.doe@example.com today.", nil, true, false)
		if summary != "" {
			t.Errorf("quiet run wrote stats: %q", summary)
		}
		if !strings.Contains(output, "[EMAIL]") {
			t.Errorf("output = %q, want [EMAIL] token", output)
		}
	})

	t.Run("json form", func(t *testing.T) {
		_, summary := runOnFile(t, "Reach jane.doe@example.com today.", nil, true, true)
		if summary != "" {
			t.Errorf("quiet run wrote stats: %q", summary)
		}
	})
}

func TestRunUnknownSkipCategory(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(inPath, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	var statsOut bytes.Buffer
	err := run(inPath, filepath.Join(dir, "out.txt"), "", []string{"telepathy"}, false, false, &statsOut)
	if err == nil {
		t.Fatal("expected error for unknown skip category")
	}
	if !strings.Contains(err.Error(), "telepathy") {
		t.Errorf("error = %v, want unknown category named", err)
	}
}

func TestReportStatsOmitsZeroCategories(t *testing.T) {
	var buf bytes.Buffer
	reportStats(&buf, scrub.Stats{Emails: 2})

	out := buf.String()
	if !strings.Contains(out, "Redactions applied: 2") {
		t.Errorf("summary = %q, want total line", out)
	}
	if !strings.Contains(out, "emails") {
		t.Errorf("summary = %q, want emails line", out)
	}
	if strings.Contains(out, "phones") {
		t.Errorf("summary = %q, zero categories should be omitted", out)
	}
}
