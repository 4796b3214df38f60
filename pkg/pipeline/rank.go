/*
Package pipeline wires the corpus filters, the definition checker and the
scoring profiles into the three batch operations the CLI exposes: ranking
condensed ngram data into playable word lists, condensing raw ngram data,
and splitting finished lists by word length.
*/
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wordbrew/wordbrew/internal/textio"
	"github.com/wordbrew/wordbrew/pkg/config"
	"github.com/wordbrew/wordbrew/pkg/corpus"
	"github.com/wordbrew/wordbrew/pkg/ngram"
	"github.com/wordbrew/wordbrew/pkg/wiktionary"
)

// Ranker scores condensed ngram files and writes one ranked word list per
// input file. Words pass through three admission gates in order of cost:
// the profanity set, the reference corpus, then the remote definition
// checker. Only admitted words are scored against the profile thresholds.
type Ranker struct {
	Profanity *corpus.Profanity
	Reference *corpus.Reference
	Checker   *wiktionary.Checker
	Profile   config.Profile
	// FlushEvery controls how often the definition cache is persisted
	// while a file is being processed. The cache is always flushed after
	// each file regardless.
	FlushEvery int
}

// Rank processes every file in inputDir and writes the ranked lists to
// outputDir, which must be empty or absent. Each output file holds one
// word per line, highest score first.
func (r *Ranker) Rank(ctx context.Context, inputDir, outputDir string) error {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("reading input directory: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no files found in %s", inputDir)
	}
	if err := textio.EnsureEmptyDir(outputDir); err != nil {
		return err
	}

	log.Infof("Reading %d files", len(entries))
	for _, entry := range entries {
		path := filepath.Join(inputDir, entry.Name())
		if !textio.IsFile(path) {
			log.Errorf("Could not read %s - not a file", path)
			continue
		}
		log.Infof("> %s", entry.Name())
		if err := r.rankFile(ctx, path, filepath.Join(outputDir, outputName(entry.Name()))); err != nil {
			return err
		}
	}
	return nil
}

func (r *Ranker) rankFile(ctx context.Context, path, outputPath string) error {
	scores := make(map[string]int64)
	err := ngram.ParseLog10File(path, func(word string, years ngram.YearlyUsage) error {
		if r.Profanity.Excluded(word) {
			return nil
		}
		known, err := r.Reference.Contains(word)
		if err != nil {
			return err
		}
		if !known {
			return nil
		}
		defined, err := r.Checker.IsDefined(ctx, word)
		if err != nil {
			return err
		}
		if !defined {
			return nil
		}
		var score int64
		for _, usage := range years {
			score += usage.MatchCount + usage.VolumeCount*r.Profile.Weight
		}
		if score < r.Profile.Threshold(len(word)) {
			return nil
		}
		scores[word] = score
		if r.FlushEvery > 0 && len(scores)%r.FlushEvery == 0 {
			log.Infof("%s %d", word, score)
			return r.Checker.Flush()
		}
		return nil
	})
	if err != nil {
		return err
	}

	ranked := make([]string, 0, len(scores))
	for word := range scores {
		ranked = append(ranked, word)
	}
	// Highest score first; equal scores fall back to alphabetical order
	// so a rerun over the same data produces the same file.
	sort.Slice(ranked, func(i, j int) bool {
		if scores[ranked[i]] != scores[ranked[j]] {
			return scores[ranked[i]] > scores[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if err := os.WriteFile(outputPath, []byte(strings.Join(ranked, "\n")), 0o644); err != nil {
		return fmt.Errorf("writing ranked list: %w", err)
	}
	return r.Checker.Flush()
}

// outputName maps an input file name to its ranked-list name. Compressed
// inputs lose their .br suffix; everything ends up as a .txt file.
func outputName(name string) string {
	name = strings.TrimSuffix(name, ".br")
	if !strings.HasSuffix(name, ".txt") {
		name += ".txt"
	}
	return name
}
