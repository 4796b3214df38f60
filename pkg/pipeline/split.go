package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/wordbrew/wordbrew/internal/textio"
	"github.com/wordbrew/wordbrew/pkg/words"
)

// Split reads a one-word-per-line file and writes one deduplicated, sorted
// file per word length into outputDir (named <length>.txt). Lines that do
// not normalize to a valid word are dropped silently. The output directory
// must be empty or absent.
func Split(inputPath, outputDir string) error {
	if !textio.IsFile(inputPath) {
		return fmt.Errorf("could not read %s - not a file", inputPath)
	}
	if err := textio.EnsureEmptyDir(outputDir); err != nil {
		return err
	}

	byLength := make(map[int]map[string]struct{})
	err := textio.ReadLines(inputPath, func(line string) error {
		word, err := words.Normalize(line, words.Options{Validate: true})
		if err != nil {
			return nil
		}
		partition := byLength[len(word)]
		if partition == nil {
			partition = make(map[string]struct{})
			byLength[len(word)] = partition
		}
		partition[word] = struct{}{}
		return nil
	})
	if err != nil {
		return err
	}

	for length, partition := range byLength {
		sorted := make([]string, 0, len(partition))
		for word := range partition {
			sorted = append(sorted, word)
		}
		sort.Strings(sorted)
		path := filepath.Join(outputDir, strconv.Itoa(length)+".txt")
		if err := os.WriteFile(path, []byte(strings.Join(sorted, "\n")), 0o644); err != nil {
			return fmt.Errorf("writing length partition: %w", err)
		}
	}
	return nil
}
