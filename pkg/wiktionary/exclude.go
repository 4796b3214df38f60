package wiktionary

import "regexp"

// A sense is disqualifying when its raw tags mark it as informal, archaic,
// a misspelling, and so on. These match the raw extracted tags, not the
// NormalizeTag output.
var excludedTagMatchers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^lb\|en(?:\|[^|]+)*\|(?:informal|slang|stenoscript|internet slang|fandom slang|obsolete|archaic|nonstandard|text messaging|euphemism|derogatory|pharmaceutical drug|offensive|vulgar)`),
	regexp.MustCompile(`(?i)^abbr(?:eviation)? of\|`),
	regexp.MustCompile(`(?i)^eye dialect of\|`),
	regexp.MustCompile(`(?i)^misspelling of\|`),
	regexp.MustCompile(`(?i)^(?:obsolete|archaic|dated|euphemistic) (?:spelling|form) of\|`),
	regexp.MustCompile(`(?i)^obs (?:sp|form)\|`),
}

// Form-of references whose target decides admissibility: a plural or
// alternative form of a legitimate word is itself legitimate.
var formOfRefMatchers = []*regexp.Regexp{
	regexp.MustCompile(`^(?:plural|alternative spelling|alternative form) of\|en\|([^|]+)`),
	regexp.MustCompile(`^(?:plural|altform|alt form)\|en\|([^|]+)`),
}

// maxFormOfDepth bounds the form-of resolution to exactly one level.
// Dictionary cross references can be circular; one level is enough to
// rescue "plural of X" entries without chasing chains.
const maxFormOfDepth = 1

func isExcludedTag(tag string) bool {
	for _, matcher := range excludedTagMatchers {
		if matcher.MatchString(tag) {
			return true
		}
	}
	return false
}

func formOfTarget(tag string) (string, bool) {
	for _, matcher := range formOfRefMatchers {
		if match := matcher.FindStringSubmatch(tag); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// AllTagSetsExcluded reports whether every sense of word is disqualifying.
// A word with no tag table entry, or any sense with zero tags, is admissible
// (absence of information is not grounds for exclusion). A sense whose tags
// all disqualify can still be rescued by a form-of reference to an
// admissible target, resolved at most one level deep.
func (c *TagCorpus) AllTagSetsExcluded(word string) bool {
	return c.allTagSetsExcluded(word, 0)
}

func (c *TagCorpus) allTagSetsExcluded(word string, depth int) bool {
	tagSets := c.TagSets(word)
	if len(tagSets) == 0 {
		// No tags at all, so all 0 definitions are allowed
		return false
	}
	for _, tagSet := range tagSets {
		if len(tagSet) == 0 {
			// No tags on the definition, so it is allowed
			return false
		}
		excluded := false
		for _, tag := range tagSet {
			if isExcludedTag(tag) {
				excluded = true
				break
			}
		}
		if !excluded {
			return false
		}
		if depth < maxFormOfDepth {
			for _, tag := range tagSet {
				if target, ok := formOfTarget(tag); ok {
					if !c.allTagSetsExcluded(target, depth+1) {
						return false
					}
				}
			}
		}
	}
	return true
}
