package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
	"github.com/wordbrew/wordbrew/internal/textio"
)

// Persisted reference partitions cover lengths 1..20; anything outside is an
// always-empty partition.
const (
	minPartitionLength = 1
	maxPartitionLength = 20
)

// Reference answers "is this a recognized English word form" against a
// SCOWL-style corpus stored as one file per word length. Partitions are
// lazily loaded into patricia tries on first use and kept for the run --
// the corpus is large, and any one pipeline only ever touches a handful of
// lengths.
type Reference struct {
	dir      string
	byLength map[int]*patricia.Trie
}

// NewReference creates a reference store over dir. No files are touched
// until the first Contains call.
func NewReference(dir string) *Reference {
	return &Reference{
		dir:      dir,
		byLength: make(map[int]*patricia.Trie),
	}
}

// Contains reports whether word appears in the reference corpus.
func (r *Reference) Contains(word string) (bool, error) {
	trie, err := r.partition(len(word))
	if err != nil {
		return false, err
	}
	return trie.Match(patricia.Prefix(word)), nil
}

func (r *Reference) partition(length int) (*patricia.Trie, error) {
	if trie, loaded := r.byLength[length]; loaded {
		return trie, nil
	}
	trie := patricia.NewTrie()
	if length >= minPartitionLength && length <= maxPartitionLength {
		if err := r.loadPartition(length, trie); err != nil {
			return nil, err
		}
	}
	r.byLength[length] = trie
	return trie, nil
}

// loadPartition reads <dir>/<length>.txt (or its .br sibling) into trie.
// A missing partition file is an empty partition, not an error.
func (r *Reference) loadPartition(length int, trie *patricia.Trie) error {
	path := filepath.Join(r.dir, fmt.Sprintf("%d.txt", length))
	if !textio.FileExists(path) {
		path += ".br"
	}
	count := 0
	err := textio.ReadLines(path, func(line string) error {
		// Should always be true... but just in case a blank
		// or extra line snuck in
		if len(line) == length {
			trie.Insert(patricia.Prefix(line), true)
			count++
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("No reference corpus for length %d (looked for %s)", length, path)
			return nil
		}
		return err
	}
	log.Debugf("Reference corpus loaded: length=%d words=%d", length, count)
	return nil
}
