package wiktionary

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/wordbrew/wordbrew/internal/textio"
)

// Cache partition files exist for lengths 1..20. A word outside that range
// is always treated as a fresh empty partition and never persisted.
const (
	minCacheLength = 1
	maxCacheLength = 20
)

// Cache is the durable word set for one terminal status, partitioned by
// word length. Registered words are held in memory and only hit disk on an
// explicit Flush, amortizing IO over runs that touch hundreds of thousands
// of candidates.
type Cache struct {
	status   Status
	dir      string
	changed  map[int]bool
	byLength map[int]map[string]struct{}
}

// NewCache creates the cache for one status, persisted under dir.
func NewCache(dir string, status Status) *Cache {
	return &Cache{
		status:   status,
		dir:      dir,
		changed:  make(map[int]bool),
		byLength: make(map[int]map[string]struct{}),
	}
}

// Has reports whether word was already recorded under this cache's status.
func (c *Cache) Has(word string) bool {
	_, found := c.partitionFor(word)[word]
	return found
}

// Register records word under this cache's status. Registering an already
// known word is a no-op and does not dirty the partition.
func (c *Cache) Register(word string) {
	partition := c.partitionFor(word)
	if _, known := partition[word]; known {
		return
	}
	partition[word] = struct{}{}
	c.changed[len(word)] = true
}

// Flush writes every dirty partition to its file, fully rewriting it.
// Partitions outside the persistable length range are never written.
func (c *Cache) Flush() error {
	for length := range c.changed {
		if length < minCacheLength || length > maxCacheLength {
			continue
		}
		words := make([]string, 0, len(c.byLength[length]))
		for word := range c.byLength[length] {
			words = append(words, word)
		}
		sort.Strings(words)
		path := c.fileName(length)
		if err := os.WriteFile(path, []byte(strings.Join(words, "\n")), 0644); err != nil {
			return fmt.Errorf("flushing %s cache for length %d: %w", c.status, length, err)
		}
		log.Infof("saveCache status=%s length=%d words=%d", c.status, length, len(words))
		delete(c.changed, length)
	}
	return nil
}

func (c *Cache) partitionFor(word string) map[string]struct{} {
	length := len(word)
	partition, loaded := c.byLength[length]
	if !loaded {
		partition = c.loadPartition(length)
		c.byLength[length] = partition
	}
	return partition
}

// loadPartition reads a partition file. Missing files and out-of-range
// lengths both load as empty; a malformed line whose length does not match
// the partition key is silently skipped.
func (c *Cache) loadPartition(length int) map[string]struct{} {
	partition := make(map[string]struct{})
	if length < minCacheLength || length > maxCacheLength {
		return partition
	}
	err := textio.ReadLines(c.fileName(length), func(line string) error {
		// Should always be true... but just in case a blank
		// or extra line snuck in
		if len(line) == length {
			partition[line] = struct{}{}
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		log.Warnf("Failed to load %s cache for length %d: %v", c.status, length, err)
	}
	return partition
}

func (c *Cache) fileName(length int) string {
	return filepath.Join(c.dir, fmt.Sprintf("%d-%s.txt", length, c.status))
}
