package wiktionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Tag tables exist for the playable range plus the 2-letter headwords that
// form-of references can point at.
const (
	minTagLength = 2
	maxTagLength = 10
)

// TagCorpus is the offline-extracted dictionary tag table: for each
// lowercase headword, the list of tag-sets of its senses. Tables are stored
// as one msgpack file per word length and loaded lazily.
type TagCorpus struct {
	dir      string
	byLength map[int]map[string][][]string
}

// NewTagCorpus creates a corpus over dir. Tables load on first access.
func NewTagCorpus(dir string) *TagCorpus {
	return &TagCorpus{
		dir:      dir,
		byLength: make(map[int]map[string][][]string),
	}
}

// TagFileName returns the table file name for one word length.
func TagFileName(length int) string {
	return fmt.Sprintf("tags-%d.bin", length)
}

// TagSets returns the tag-sets recorded for word, or nil when the corpus has
// no entry. Lookup keys are lowercase headwords.
func (c *TagCorpus) TagSets(word string) [][]string {
	length := len(word)
	if length < minTagLength || length > maxTagLength {
		return nil
	}
	table, loaded := c.byLength[length]
	if !loaded {
		table = c.loadTable(length)
		c.byLength[length] = table
	}
	return table[strings.ToLower(word)]
}

func (c *TagCorpus) loadTable(length int) map[string][][]string {
	path := filepath.Join(c.dir, TagFileName(length))
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Failed to read tag table %s: %v", path, err)
		}
		return map[string][][]string{}
	}
	var table map[string][][]string
	if err := msgpack.Unmarshal(data, &table); err != nil {
		log.Errorf("Corrupt tag table %s: %v", path, err)
		return map[string][][]string{}
	}
	log.Debugf("Tag table loaded: length=%d words=%d", length, len(table))
	return table
}

// WriteTagTable persists one length's table, overwriting any previous file.
// Used by the offline extraction step.
func WriteTagTable(dir string, length int, table map[string][][]string) error {
	data, err := msgpack.Marshal(table)
	if err != nil {
		return fmt.Errorf("encoding tag table for length %d: %w", length, err)
	}
	path := filepath.Join(dir, TagFileName(length))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing tag table %s: %w", path, err)
	}
	return nil
}
