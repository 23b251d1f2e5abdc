package scrub

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

// Placeholder tokens substituted for detected spans. They are part of the
// public contract: none of them matches any detector, so redaction of
// already-redacted text is a no-op.
const (
	TokenEmail        = "[EMAIL]"
	TokenPhone        = "[PHONE]"
	TokenDate         = "[DATE]"
	TokenRelativeDate = "[REL_DATE]"
	TokenSSN          = "[SSN]"
	TokenMRN          = "[MRN]"
	TokenAddress      = "[ADDRESS]"
	TokenPerson       = "[PERSON]"
	TokenFacility     = "[FACILITY]"
	TokenZip          = "[ZIP]"
	TokenCoordinate   = "[COORD]"
)

const (
	defaultMRNMinLength = 6
	defaultMRNMaxLength = 10
)

// Config controls engine construction. Zero-valued length bounds take the
// defaults (6 and 10); explicit values must satisfy 1 <= min <= max.
type Config struct {
	// Additional person names to redact (case-insensitive).
	Names []string
	// Additional keywords or facility names to redact (case-insensitive).
	Keywords []string
	// Minimum digit count for bare numeric identifier detection.
	MRNMinLength int
	// Maximum digit count for bare numeric identifier detection.
	MRNMaxLength int
}

// Engine applies the redaction cascade. All patterns are compiled in New and
// read-only afterwards, so one engine may serve concurrent Redact calls.
type Engine struct {
	emailRe           *regexp.Regexp
	phoneRe           *regexp.Regexp
	ssnRe             *regexp.Regexp
	mrnRe             *regexp.Regexp
	mrnLabelRe        *regexp.Regexp
	zipRe             *regexp.Regexp
	facilityRe        *regexp.Regexp
	customFacilityRe  *regexp.Regexp
	addressRe         *regexp.Regexp
	coordinateRe      *regexp.Regexp
	nameDictionaryRe  *regexp.Regexp
	titledNameRe      *regexp.Regexp
	firstLastRe       *regexp.Regexp
	capitalSequenceRe *regexp.Regexp
	dateRe            *regexp.Regexp
	relativeDateRe    *regexp.Regexp

	logger *zap.Logger
}

// New builds an engine from the configuration. All validation and pattern
// compilation happens here; a returned engine is fully usable.
func New(cfg Config, logger *zap.Logger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	mrnMin := cfg.MRNMinLength
	if mrnMin == 0 {
		mrnMin = defaultMRNMinLength
	}
	mrnMax := cfg.MRNMaxLength
	if mrnMax == 0 {
		mrnMax = defaultMRNMaxLength
	}
	if mrnMin < 1 || mrnMax < 1 || mrnMin > mrnMax {
		return nil, fmt.Errorf("invalid MRN length range: %d-%d", mrnMin, mrnMax)
	}

	e := &Engine{logger: logger}

	var err error
	if e.emailRe, err = regexp.Compile(emailPattern); err != nil {
		return nil, fmt.Errorf("failed to compile email pattern: %w", err)
	}
	if e.phoneRe, err = regexp.Compile(phonePattern); err != nil {
		return nil, fmt.Errorf("failed to compile phone pattern: %w", err)
	}
	if e.ssnRe, err = regexp.Compile(ssnPattern); err != nil {
		return nil, fmt.Errorf("failed to compile SSN pattern: %w", err)
	}
	if e.mrnRe, err = buildBareMRNPattern(mrnMin, mrnMax); err != nil {
		return nil, err
	}
	if e.mrnLabelRe, err = regexp.Compile(mrnLabelPattern); err != nil {
		return nil, fmt.Errorf("failed to compile MRN label pattern: %w", err)
	}
	if e.zipRe, err = regexp.Compile(zipPattern); err != nil {
		return nil, fmt.Errorf("failed to compile ZIP pattern: %w", err)
	}
	if e.facilityRe, err = regexp.Compile(facilityPattern); err != nil {
		return nil, fmt.Errorf("failed to compile facility pattern: %w", err)
	}
	if e.addressRe, err = regexp.Compile(addressPattern); err != nil {
		return nil, fmt.Errorf("failed to compile address pattern: %w", err)
	}
	if e.coordinateRe, err = regexp.Compile(coordinatePattern); err != nil {
		return nil, fmt.Errorf("failed to compile coordinate pattern: %w", err)
	}
	if e.titledNameRe, err = regexp.Compile(titledNamePattern); err != nil {
		return nil, fmt.Errorf("failed to compile titled name pattern: %w", err)
	}
	if e.capitalSequenceRe, err = regexp.Compile(capitalSequencePattern); err != nil {
		return nil, fmt.Errorf("failed to compile capital sequence pattern: %w", err)
	}
	if e.dateRe, err = regexp.Compile(datePattern); err != nil {
		return nil, fmt.Errorf("failed to compile date pattern: %w", err)
	}
	if e.relativeDateRe, err = regexp.Compile(relativeDatePattern); err != nil {
		return nil, fmt.Errorf("failed to compile relative date pattern: %w", err)
	}
	if e.firstLastRe, err = buildFirstLastPattern(); err != nil {
		return nil, err
	}

	facilityTerms := buildDictionary(defaultFacilityTerms, cfg.Keywords)
	if e.customFacilityRe, err = compileDictionary(facilityTerms); err != nil {
		return nil, err
	}

	nameTerms := buildDictionary(defaultSurnames, cfg.Names)
	if e.nameDictionaryRe, err = compileDictionary(nameTerms); err != nil {
		return nil, err
	}

	logger.Info("Scrub engine initialized",
		zap.Int("mrn_min_length", mrnMin),
		zap.Int("mrn_max_length", mrnMax),
		zap.Int("name_terms", len(nameTerms)),
		zap.Int("facility_terms", len(facilityTerms)),
	)

	return e, nil
}

// Redact runs the full cascade over the input and returns the redacted text
// with per-category counts. Categories in the skip set are left untouched
// and counted as zero. Pure function of the input and the engine's compiled
// state; it never fails.
func (e *Engine) Redact(input string, skip SkipSet) (string, Stats) {
	output := Normalize(input)
	var stats Stats

	if !skip.Contains(CategoryEmail) {
		output, stats.Emails = replaceAll(e.emailRe, output, TokenEmail)
	}

	if !skip.Contains(CategoryPhone) {
		output, stats.Phones = replaceAll(e.phoneRe, output, TokenPhone)
	}

	if !skip.Contains(CategorySSN) {
		output, stats.SSNs = replaceAll(e.ssnRe, output, TokenSSN)
	}

	if !skip.Contains(CategoryMRN) {
		// The labeled pass runs first so a labeled identifier is not
		// mis-segmented by the bare digit-run pattern. Counts are additive.
		var labeled, bare int
		output, labeled = replaceAll(e.mrnLabelRe, output, TokenMRN)
		output, bare = replaceAll(e.mrnRe, output, TokenMRN)
		stats.MRNs = labeled + bare
	}

	if !skip.Contains(CategoryZip) {
		output, stats.ZipCodes = replaceAll(e.zipRe, output, TokenZip)
	}

	if !skip.Contains(CategoryFacility) {
		var builtin, custom int
		output, builtin = replaceAll(e.facilityRe, output, TokenFacility)
		if e.customFacilityRe != nil {
			output, custom = replaceAll(e.customFacilityRe, output, TokenFacility)
		}
		stats.Facilities = builtin + custom
	}

	if !skip.Contains(CategoryAddress) {
		output, stats.Addresses = replaceAll(e.addressRe, output, TokenAddress)
	}

	if !skip.Contains(CategoryCoordinate) {
		output, stats.Coordinates = replaceAll(e.coordinateRe, output, TokenCoordinate)
	}

	if !skip.Contains(CategoryPerson) {
		var total, count int
		if e.nameDictionaryRe != nil {
			output, count = replaceNames(e.nameDictionaryRe, output, TokenPerson)
			total += count
		}
		output, count = replaceNames(e.titledNameRe, output, TokenPerson)
		total += count
		output, count = replaceNames(e.firstLastRe, output, TokenPerson)
		total += count
		output, count = replaceNames(e.capitalSequenceRe, output, TokenPerson)
		total += count
		stats.Persons = total
	}

	if !skip.Contains(CategoryDate) {
		output, stats.Dates = replaceAll(e.dateRe, output, TokenDate)
	}

	if !skip.Contains(CategoryRelativeDate) {
		output, stats.RelativeDates = replaceAll(e.relativeDateRe, output, TokenRelativeDate)
	}

	return tidyPunctuation(output), stats
}

// replaceAll substitutes every match with the token and counts replacements.
func replaceAll(re *regexp.Regexp, input, token string) (string, int) {
	count := 0
	out := re.ReplaceAllStringFunc(input, func(string) string {
		count++
		return token
	})
	return out, count
}

// replaceNames is replaceAll with the stopword filter applied: a rejected
// candidate keeps its original text and is not counted.
func replaceNames(re *regexp.Regexp, input, token string) (string, int) {
	count := 0
	out := re.ReplaceAllStringFunc(input, func(match string) string {
		if isNameStopword(match) {
			return match
		}
		count++
		return token
	})
	return out, count
}
