/*
Package ngram decodes tab-separated ngram corpus files into per-word yearly
usage counts.

Two on-disk layouts are supported. The raw layout carries explicit counts:

	WORD<TAB>year,match_count,volume_count<TAB>year,...

The condensed layout stores one field per year with log10-compressed counts,
preceded by a header naming the first year:

	#w<TAB>2000
	WORD<TAB>3<TAB>4,5<TAB><TAB>6

Both parsers stream line by line; nothing holds more than one line of raw
input at a time.
*/
package ngram

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/wordbrew/wordbrew/internal/textio"
)

// ErrYearOutOfRange indicates corpus data outside the configured year window.
// It is a data-integrity failure: the run aborts rather than silently
// accumulating counts the caller believes cannot exist.
var ErrYearOutOfRange = errors.New("year beyond configured maximum")

// Usage holds one year of occurrence statistics for a word form.
type Usage struct {
	MatchCount  int64
	VolumeCount int64
}

// YearlyUsage maps year to usage counts.
type YearlyUsage map[int]Usage

// Callback receives one decoded word at a time. The parser waits for the
// callback to finish before reading the next line, so downstream cache
// writes and rate-limited lookups stay strictly sequential.
type Callback func(word string, years YearlyUsage) error

// decodeLog10 recovers a count from its log10-rounded encoding. The +0.49
// offset compensates for the rounding-down applied at compression time,
// recovering the geometric-mean-unbiased estimate of the original count.
func decodeLog10(logged int64) int64 {
	return int64(math.Round(math.Pow(10, float64(logged)+0.49)))
}

// ParseLog10File streams a condensed-layout file and invokes fn once per
// word with the fully decoded year map. A field may be empty (zero match,
// zero volume), a single log10 value (volume mirrors match), or a
// "match,volume" pair. An error from fn aborts the file.
func ParseLog10File(path string, fn Callback) error {
	startingYear := 0
	return textio.ReadLines(path, func(line string) error {
		fields := strings.Split(line, "\t")
		word := fields[0]
		if word == "" {
			return nil
		}
		if word == "#w" {
			if len(fields) > 1 {
				startingYear, _ = strconv.Atoi(fields[1])
			}
			return nil
		}
		years := make(YearlyUsage, len(fields)-1)
		year := startingYear
		for _, field := range fields[1:] {
			matchPart, volumePart, _ := strings.Cut(field, ",")
			var usage Usage
			if matchLog, err := strconv.ParseInt(matchPart, 10, 64); err == nil {
				usage.MatchCount = decodeLog10(matchLog)
			}
			if volumeLog, err := strconv.ParseInt(volumePart, 10, 64); err == nil {
				usage.VolumeCount = decodeLog10(volumeLog)
			} else {
				usage.VolumeCount = usage.MatchCount
			}
			years[year] = usage
			year++
		}
		return fn(word, years)
	})
}

// ParseOptions configure raw-layout decoding.
type ParseOptions struct {
	// Normalize maps a raw token to its canonical word, or ok=false to
	// skip the line entirely.
	Normalize func(value string) (string, bool)
	// IncludeYear decides whether one year's counts accumulate. A non-nil
	// error is fatal for the whole run (data-integrity violation), not a
	// per-line skip.
	IncludeYear func(year int, matchCount, volumeCount int64) (bool, error)
}

// ParseFile streams a raw-layout file, accumulating counts additively into
// words. Tokens that normalize to the same canonical form merge, as do
// repeated occurrences of a word across multiple files sharing the map.
func ParseFile(path string, words map[string]YearlyUsage, opts ParseOptions) error {
	return textio.ReadLines(path, func(line string) error {
		fields := strings.Split(line, "\t")
		if fields[0] == "" {
			return nil
		}
		word, ok := opts.Normalize(fields[0])
		if !ok {
			return nil
		}
		years := words[word]
		for _, field := range fields[1:] {
			year, usage, ok := parseYearField(field)
			if !ok {
				continue
			}
			include, err := opts.IncludeYear(year, usage.MatchCount, usage.VolumeCount)
			if err != nil {
				return err
			}
			if !include {
				continue
			}
			if years == nil {
				years = make(YearlyUsage)
			}
			total := years[year]
			total.MatchCount += usage.MatchCount
			total.VolumeCount += usage.VolumeCount
			years[year] = total
		}
		if len(years) > 0 {
			words[word] = years
		}
		return nil
	})
}

// ParseFileSum is ParseFile without the per-year breakdown: it folds every
// included year straight into a single running total per word.
func ParseFileSum(path string, totals map[string]Usage, opts ParseOptions) error {
	return textio.ReadLines(path, func(line string) error {
		fields := strings.Split(line, "\t")
		if fields[0] == "" {
			return nil
		}
		word, ok := opts.Normalize(fields[0])
		if !ok {
			return nil
		}
		total := totals[word]
		for _, field := range fields[1:] {
			year, usage, ok := parseYearField(field)
			if !ok {
				continue
			}
			include, err := opts.IncludeYear(year, usage.MatchCount, usage.VolumeCount)
			if err != nil {
				return err
			}
			if !include {
				continue
			}
			total.MatchCount += usage.MatchCount
			total.VolumeCount += usage.VolumeCount
		}
		if total.MatchCount > 0 {
			totals[word] = total
		}
		return nil
	})
}

// parseYearField decodes a "year,match,volume" triple.
func parseYearField(field string) (int, Usage, bool) {
	parts := strings.SplitN(field, ",", 3)
	if len(parts) != 3 {
		return 0, Usage{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, Usage{}, false
	}
	match, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, Usage{}, false
	}
	volume, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, Usage{}, false
	}
	return year, Usage{MatchCount: match, VolumeCount: volume}, true
}
