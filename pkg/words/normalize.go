/*
Package words canonicalizes raw corpus tokens into playable word forms.

A word is an uppercase A-Z string. Everything that feeds the filtering
pipeline goes through Normalize first, so downstream sets and caches can
compare words byte-for-byte.
*/
package words

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidWord is returned when a validated normalization produces
// something other than a non-empty uppercase A-Z string.
var ErrInvalidWord = errors.New("word contains an unsupported character (or is empty)")

// Pattern matches a canonical word.
var Pattern = regexp.MustCompile(`^[A-Z]+$`)

// Options control how Normalize treats its input.
type Options struct {
	// Validate rejects results that are not pure uppercase A-Z.
	Validate bool
	// IgnoreDiacritics strips combining marks after decomposition,
	// folding e.g. "café" to "CAFE".
	IgnoreDiacritics bool
}

// Normalize canonicalizes value: Unicode canonical decomposition (NFD),
// optional combining-mark stripping, then locale-invariant uppercasing.
// With Validate set it returns ErrInvalidWord unless the result matches
// Pattern. Pure function, no IO.
func Normalize(value string, opts Options) (string, error) {
	normalized := norm.NFD.String(value)
	if opts.IgnoreDiacritics {
		normalized = stripCombiningMarks(normalized)
	}
	normalized = strings.ToUpper(normalized)
	if opts.Validate && !Pattern.MatchString(normalized) {
		return "", ErrInvalidWord
	}
	return normalized, nil
}

// stripCombiningMarks removes the combining diacritical marks block
// (U+0300..U+036F) left behind by NFD decomposition.
func stripCombiningMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x0300 && r <= 0x036F {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
