package wiktionary

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sethvargo/go-retry"
)

// DefaultRetries is how many lookup attempts a word gets before its
// classification is considered a fatal failure.
const DefaultRetries = 3

// Checker decides whether a word has a legitimate dictionary definition.
// It fronts the remote lookup with one durable cache per terminal status
// and re-checks Defined words against the tag corpus, which can ship
// updates independently of the network cache.
type Checker struct {
	client  *Client
	corpus  *TagCorpus
	caches  map[Status]*Cache
	retries int
}

// NewChecker wires a checker over cacheDir. retries <= 0 selects
// DefaultRetries.
func NewChecker(cacheDir string, corpus *TagCorpus, client *Client, retries int) *Checker {
	if retries <= 0 {
		retries = DefaultRetries
	}
	caches := make(map[Status]*Cache, len(TerminalStatuses))
	for _, status := range TerminalStatuses {
		caches[status] = NewCache(cacheDir, status)
	}
	return &Checker{
		client:  client,
		corpus:  corpus,
		caches:  caches,
		retries: retries,
	}
}

func (ch *Checker) cachedStatus(word string) (Status, bool) {
	for _, status := range TerminalStatuses {
		if ch.caches[status].Has(word) {
			return status, true
		}
	}
	return StatusError, false
}

// IsDefined reports whether word has an admissible definition. Cached words
// never hit the network again. Uncached words are looked up with a bounded
// retry; exhausting the retries is fatal for the run, since an unclassified
// word would silently bias the output.
func (ch *Checker) IsDefined(ctx context.Context, word string) (bool, error) {
	status, cached := ch.cachedStatus(word)
	if !cached {
		backoff := retry.WithMaxRetries(uint64(ch.retries-1), retry.NewConstant(500*time.Millisecond))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			status = ch.client.Lookup(ctx, word)
			if status == StatusError {
				return retry.RetryableError(fmt.Errorf("lookup failed for %q", word))
			}
			return nil
		})
		if err != nil {
			return false, fmt.Errorf("could not lookup word %s: %w", word, err)
		}
		ch.caches[status].Register(word)
	}

	if status == StatusDefined && ch.corpus.AllTagSetsExcluded(word) {
		// The cache keeps the raw lookup result; the downgrade is
		// recomputed every run from the current tag corpus.
		log.Debugf("Word %s defined but all tag sets excluded", word)
		status = StatusExcluded
	}
	return status == StatusDefined, nil
}

// Flush persists every dirty cache partition.
func (ch *Checker) Flush() error {
	for _, status := range TerminalStatuses {
		if err := ch.caches[status].Flush(); err != nil {
			return err
		}
	}
	return nil
}
