/*
Package corpus holds the static word sets consulted by the admission
pipeline: the profanity exclusion list and the reference corpus of
recognized English word forms.
*/
package corpus

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/wordbrew/wordbrew/pkg/words"
)

//go:embed data/badwords.txt
var badwordsList string

//go:embed data/naughty.txt
var naughtyList string

// Profanity is the merged exclusion set built from the two bundled lists.
// Comparisons are case- and diacritic-normalized.
type Profanity struct {
	excluded map[string]struct{}
}

// NewProfanity builds the exclusion set once. Entries that do not survive
// normalization (multi-word phrases, punctuation) are dropped.
func NewProfanity() *Profanity {
	p := &Profanity{excluded: make(map[string]struct{})}
	for _, list := range []string{badwordsList, naughtyList} {
		for _, entry := range strings.Split(list, "\n") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			normalized, err := words.Normalize(entry, words.Options{Validate: true, IgnoreDiacritics: true})
			if err != nil {
				continue
			}
			p.excluded[normalized] = struct{}{}
		}
	}
	log.Debugf("Profanity set loaded: %d entries", len(p.excluded))
	return p
}

// Excluded reports whether word is on the exclusion list.
func (p *Profanity) Excluded(word string) bool {
	normalized, err := words.Normalize(word, words.Options{IgnoreDiacritics: true})
	if err != nil {
		return false
	}
	_, found := p.excluded[normalized]
	return found
}

// Size returns the number of entries in the merged set.
func (p *Profanity) Size() int {
	return len(p.excluded)
}
