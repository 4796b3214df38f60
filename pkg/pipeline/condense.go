package pipeline

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wordbrew/wordbrew/internal/textio"
	"github.com/wordbrew/wordbrew/pkg/ngram"
	"github.com/wordbrew/wordbrew/pkg/words"
)

// CondenseOptions bound the year window kept during condensing. Data for a
// year above MaxYear aborts the run; years below MinYear are dropped.
type CondenseOptions struct {
	MinYear int
	MaxYear int
}

// Condense folds every raw ngram file in inputDir into a single condensed
// log10 file at outputPath. Tokens are normalized and filtered to the
// playable alphabet before counts merge, so variants of the same word
// accumulate into one line. The output file must not already exist.
func Condense(inputDir, outputPath string, opts CondenseOptions) error {
	if textio.FileExists(outputPath) {
		return fmt.Errorf("output file %s already exists", outputPath)
	}
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("reading input directory: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no files found in %s", inputDir)
	}
	log.Infof("Reading %d files", len(entries))

	usage := make(map[string]ngram.YearlyUsage)
	parseOpts := ngram.ParseOptions{
		Normalize: words.NormalizeAllowed,
		IncludeYear: func(year int, matchCount, volumeCount int64) (bool, error) {
			if year > opts.MaxYear {
				return false, fmt.Errorf("%w: data for year %d found, max is %d",
					ngram.ErrYearOutOfRange, year, opts.MaxYear)
			}
			return year >= opts.MinYear && (matchCount > 0 || volumeCount > 0), nil
		},
	}
	for _, entry := range entries {
		path := filepath.Join(inputDir, entry.Name())
		if !textio.IsFile(path) {
			log.Errorf("Could not read %s - not a file", path)
			continue
		}
		log.Infof("> %s", entry.Name())
		if err := ngram.ParseFile(path, usage, parseOpts); err != nil {
			return err
		}
	}

	lines := condenseLines(usage, opts.MinYear, opts.MaxYear)
	if err := os.WriteFile(outputPath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		return fmt.Errorf("writing condensed file: %w", err)
	}
	return nil
}

// condenseLines encodes the accumulated counts into the condensed layout,
// sorted so the #w header stays on top and words follow alphabetically.
func condenseLines(usage map[string]ngram.YearlyUsage, minYear, maxYear int) []string {
	header := make([]string, 0, maxYear-minYear+2)
	header = append(header, "#w")
	for year := minYear; year <= maxYear; year++ {
		header = append(header, strconv.Itoa(year))
	}

	lines := make([]string, 0, len(usage)+1)
	lines = append(lines, strings.Join(header, "\t"))
	for word, years := range usage {
		fields := make([]string, 0, maxYear-minYear+2)
		fields = append(fields, word)
		for year := minYear; year <= maxYear; year++ {
			fields = append(fields, encodeYear(years[year]))
		}
		lines = append(lines, strings.TrimRight(strings.Join(fields, "\t"), "\t"))
	}
	sort.Strings(lines)
	return lines
}

// encodeYear compresses one year of counts to its log10 form. Years with
// no matches encode as the empty field; a volume equal to the match count
// collapses to a single value.
func encodeYear(usage ngram.Usage) string {
	if usage.MatchCount == 0 {
		return ""
	}
	logMatch := encodeLog10(usage.MatchCount)
	// A zero volume count would round to negative infinity; treat it as
	// matching the match count instead.
	logVolume := logMatch
	if usage.VolumeCount > 0 {
		logVolume = encodeLog10(usage.VolumeCount)
	}
	if logMatch == logVolume {
		return strconv.FormatInt(logMatch, 10)
	}
	return strconv.FormatInt(logMatch, 10) + "," + strconv.FormatInt(logVolume, 10)
}

func encodeLog10(count int64) int64 {
	return int64(math.Round(math.Log10(float64(count))))
}
