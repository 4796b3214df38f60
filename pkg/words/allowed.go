package words

import "regexp"

// Playable length bounds for the game word lists.
const (
	MinLength = 3
	MaxLength = 10
)

var noVowelPattern = regexp.MustCompile(`^[^AEIOUY]+$`)

// hasTriplet reports whether any letter occurs three times in a row.
func hasTriplet(word string) bool {
	for i := 2; i < len(word); i++ {
		if word[i] == word[i-1] && word[i] == word[i-2] {
			return true
		}
	}
	return false
}

// IsAllowedLength reports whether word fits the playable length bounds.
func IsAllowedLength(word string) bool {
	return len(word) >= MinLength && len(word) <= MaxLength
}

// NormalizeAllowed canonicalizes value and applies the game-specific
// constraints on top: playable length, no letter tripled consecutively, and
// at least one vowel (Y counts). It reports ok=false instead of an error --
// callers iterate over noisy corpus lines and skip rejects without aborting.
//
// While there are some words with triplets (e.g. goddessship), no vowels
// (e.g. crwth, tsk), or both (e.g. brrr, hmmm), they're all either proper
// nouns, sounds, abbreviations, more commonly hyphenated, or Welsh, so we
// might as well strip them out early.
func NormalizeAllowed(value string) (string, bool) {
	word, err := Normalize(value, Options{Validate: true})
	if err != nil {
		return "", false
	}
	if !IsAllowedLength(word) {
		return "", false
	}
	if hasTriplet(word) || noVowelPattern.MatchString(word) {
		return "", false
	}
	return word, true
}
