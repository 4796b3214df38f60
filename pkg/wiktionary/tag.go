/*
Package wiktionary classifies dictionary definitions: it parses sense
markup tags, looks up words against the REST definition API, and fronts
the lookups with a durable length-partitioned cache.
*/
package wiktionary

import (
	"regexp"
	"strings"
)

// Raw senses carry markup of three broad shapes: ignorable plumbing
// (sense IDs, category annotations), label lists ("lb|en|...") whose parts
// freely intermix connective words with actual qualifying labels, and
// "form-of" cross references. NormalizeTag folds all of them into a small
// normalized vocabulary the exclusion logic can match on.

var ignoreTagMatchers = []*regexp.Regexp{
	regexp.MustCompile(`^senseid\|`),
	regexp.MustCompile(`^non-gloss definition\|`),
	regexp.MustCompile(`^ng\|`),
	regexp.MustCompile(`^n-g\|`),
	regexp.MustCompile(`^topics\|`),
	regexp.MustCompile(`^categorize\|`),
	regexp.MustCompile(`^catlangname\|`),
	regexp.MustCompile(`^cln\|`),
	regexp.MustCompile(`^cat\|`),
	regexp.MustCompile(`^C\|`),
	regexp.MustCompile(`^q\|`),
	regexp.MustCompile(`^qualifier\|`),
	regexp.MustCompile(`^taxfmt\|`),
}

type formOfMatcher struct {
	pattern *regexp.Regexp
	kind    string
}

var formOfMatchers = []formOfMatcher{
	{regexp.MustCompile(`^abbr(?:ev|eviation)? of\|en\|([^|]+)`), "abbr"},

	{regexp.MustCompile(`^plural of\|en\|([^|]+)`), "plural"},

	{regexp.MustCompile(`^init(?:ialism)? of\|en\|([^|]+)`), "init"},

	{regexp.MustCompile(`^alt(?:ernative) (?:form|spelling) of\|en\|([^|]+)`), "alt"},
	{regexp.MustCompile(`^alt ?(?:form|sp)\|en\|([^|]+)`), "alt"},

	{regexp.MustCompile(`^eye dialect of\|en\|([^|]+)`), "eye"},

	{regexp.MustCompile(`^(?:deliberate )?misspelling of\|en\|([^|]+)`), "misspelling"},
	{regexp.MustCompile(`^archaic (?:form|spelling) of\|en\|([^|]+)`), "archaic"},
	{regexp.MustCompile(`^obsolete (?:form|spelling) of\|en\|([^|]+)`), "obsolete"},

	{regexp.MustCompile(`^clipping of\|en\|([^|]+)`), "clipping"},

	{regexp.MustCompile(`^pronunciation spelling of\|en\|([^|]+)`), "pronunciation"},
}

var labelPrefixes = []string{"lb|en|", "term-label|en|", "label|en|", "l|en|"}

// qualifier maps a raw label part to its normalized form. A plain entry
// normalizes to itself; a pair rewrites (e.g. "_" joins with nothing,
// "&" becomes "and").
type qualifier struct {
	match   string
	replace string
}

// Joiners concatenate the accumulated label with the following part
// instead of starting a new label.
var labelJoiners = []qualifier{
	{"&", "and"},
	{"+", "with"},
	{"-", "-"},
	{"–", "–"},
	{"—", "—"},
	{":", ":"},
	{";", ";"},
	{"_", ""},
	{"and", "and"},
	{"by", "by"},
	{"except", "except"},
	{"except in", "outside"},
	{"or", "or"},
	{"outside", "outside"},
	{"with", "with"},
}

// Qualifiers fold as a modifying prefix onto the next label rather than
// standing alone ("very|rare" reads as one label "very rare").
var labelQualifiers = []qualifier{
	{"also", "also"},
	{"attested in", "attested in"},
	{"chiefly", "chiefly"},
	{"commonly", "often"},
	{"especially", "especially"},
	{"excluding", "excluding"},
	{"extremely", "extremely"},
	{"frequently", "frequently"},
	{"highly", "highly"},
	{"in", "in"},
	{"including", "including"},
	{"mainly", "chiefly"},
	{"many", "many"},
	{"markedly", "markedly"},
	{"mildly", "mildly"},
	{"mostly", "chiefly"},
	{"now", "now"},
	{"nowadays", "now"},
	{"occasionally", "occasionally"},
	{"of", "of"},
	{"of a", "of"},
	{"of an", "of"},
	{"often", "often"},
	{"originally", "originally"},
	{"otherwise", "otherwise"},
	{"particularly", "particularly"},
	{"possibly", "possibly"},
	{"primarily", "chiefly"},
	{"rarely", "rarely"},
	{"rather", "rather"},
	{"relatively", "relatively"},
	{"slightly", "slightly"},
	{"sometimes", "sometimes"},
	{"somewhat", "somewhat"},
	{"strongly", "strongly"},
	{"then", "then"},
	{"typically", "typically"},
	{"usually", "usually"},
	{"very", "very"},
	{"with respect to", "with respect to"},
	{"wrt", "with respect to"},
}

var bracketReplacer = strings.NewReplacer("[", "", "]", "")

func normalizeQualifier(label string, qualifiers []qualifier) (string, bool) {
	lower := strings.ToLower(label)
	for _, q := range qualifiers {
		if lower == q.match {
			return q.replace, true
		}
	}
	return "", false
}

func normalizeLabels(parts []string) []string {
	var labels []string
	appendNext := false
	for _, part := range parts {
		label := part
		joined, isJoiner := normalizeQualifier(part, labelJoiners)
		if isJoiner {
			label = joined
			appendNext = true
		}
		if appendNext {
			// A leading joiner has no label to extend; the part is consumed.
			if label != "" && len(labels) > 0 {
				labels[len(labels)-1] += " " + label
			}
			appendNext = isJoiner
		} else {
			if folded, isQualifier := normalizeQualifier(part, labelQualifiers); isQualifier {
				appendNext = true
				label = folded
			}
			labels = append(labels, label)
		}
	}
	for i, label := range labels {
		labels[i] = "lb|" + label
	}
	return labels
}

// NormalizeTag parses one raw sense tag. It returns nil for ignorable
// markup, an ordered sequence of "lb|<label>" tags for label lists, a
// single "f.<kind>|<target>" tag for form-of references, and the raw tag
// unchanged otherwise (the caller decides relevance of passthroughs).
func NormalizeTag(raw string) []string {
	tag := bracketReplacer.Replace(raw)
	for _, matcher := range ignoreTagMatchers {
		if matcher.MatchString(tag) {
			return nil
		}
	}
	for _, prefix := range labelPrefixes {
		if strings.HasPrefix(tag, prefix) {
			return normalizeLabels(strings.Split(tag[len(prefix):], "|"))
		}
	}
	for _, m := range formOfMatchers {
		if match := m.pattern.FindStringSubmatch(tag); match != nil {
			return []string{"f." + m.kind + "|" + bracketReplacer.Replace(match[1])}
		}
	}
	return []string{tag}
}
