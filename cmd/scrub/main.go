package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notesentry/notesentry/internal/config"
	"github.com/notesentry/notesentry/internal/logger"
	"github.com/notesentry/notesentry/internal/scrub"
)

var version = "0.1.0"

// skipFlags collects repeated -skip values.
type skipFlags []string

func (s *skipFlags) String() string {
	return strings.Join(*s, ",")
}

func (s *skipFlags) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func main() {
	var skip skipFlags
	var (
		inputPath   = flag.String("input", "-", "Input file, or - for stdin")
		outputPath  = flag.String("output", "-", "Output file, or - for stdout")
		dictPath    = flag.String("dict", "", "Path to JSON dictionary with extra names and keywords")
		quiet       = flag.Bool("quiet", false, "Suppress the redaction summary")
		statsJSON   = flag.Bool("stats-json", false, "Print redaction counts as JSON to stderr")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Var(&skip, "skip", "Category to skip (repeatable), e.g. -skip phone -skip date")
	flag.Parse()

	if *showVersion {
		fmt.Printf("scrub %s\n", version)
		os.Exit(0)
	}

	if err := run(*inputPath, *outputPath, *dictPath, skip, *quiet, *statsJSON, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "scrub: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath, dictPath string, skip []string, quiet, statsJSON bool, statsOut io.Writer) error {
	scrubberCfg := &config.ScrubberConfig{}
	if dictPath != "" {
		loaded, err := config.LoadDictionary(dictPath)
		if err != nil {
			return fmt.Errorf("failed to load dictionary: %w", err)
		}
		scrubberCfg = loaded
	}

	skipSet, err := scrub.NewSkipSet(skip...)
	if err != nil {
		return err
	}

	engine, err := scrub.New(scrub.Config{
		Names:        scrubberCfg.Names,
		Keywords:     scrubberCfg.Keywords,
		MRNMinLength: scrubberCfg.MRNMinLength,
		MRNMaxLength: scrubberCfg.MRNMaxLength,
	}, logger.Nop().Logger)
	if err != nil {
		return err
	}

	input, err := readInput(inputPath)
	if err != nil {
		return err
	}

	redacted, stats := engine.Redact(input, skipSet)

	if err := writeOutput(outputPath, redacted); err != nil {
		return err
	}

	// -quiet suppresses the summary in both forms.
	if !quiet {
		if statsJSON {
			encoded, err := json.Marshal(stats)
			if err != nil {
				return fmt.Errorf("failed to encode stats: %w", err)
			}
			fmt.Fprintln(statsOut, string(encoded))
		} else {
			reportStats(statsOut, stats)
		}
	}

	return nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file: %w", err)
	}
	return string(data), nil
}

func writeOutput(path, text string) error {
	if path == "-" {
		if _, err := fmt.Fprintln(os.Stdout, text); err != nil {
			return fmt.Errorf("failed to write stdout: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, []byte(text+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// reportStats prints a human readable summary, listing only the categories
// that actually fired.
func reportStats(w io.Writer, stats scrub.Stats) {
	fmt.Fprintf(w, "Redactions applied: %d\n", stats.Total())

	lines := []struct {
		label string
		count int
	}{
		{"emails", stats.Emails},
		{"phones", stats.Phones},
		{"dates", stats.Dates},
		{"relative dates", stats.RelativeDates},
		{"SSNs", stats.SSNs},
		{"MRNs", stats.MRNs},
		{"zip codes", stats.ZipCodes},
		{"persons", stats.Persons},
		{"facilities", stats.Facilities},
		{"addresses", stats.Addresses},
		{"coordinates", stats.Coordinates},
	}
	for _, line := range lines {
		if line.count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", line.label, line.count)
		}
	}
}
