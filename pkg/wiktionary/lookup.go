package wiktionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Status is the classification of a word's dictionary entry.
type Status int

const (
	// StatusError means the lookup could not be completed; callers retry.
	StatusError Status = iota
	// StatusDefined means the word has at least one admissible definition.
	StatusDefined
	// StatusExcluded means every definition falls under an exclusion rule.
	StatusExcluded
	// StatusUndefined means the dictionary has no English entry at all.
	StatusUndefined
)

// TerminalStatuses are the statuses worth persisting; StatusError only ever
// triggers a retry and never reaches a cache.
var TerminalStatuses = []Status{StatusDefined, StatusExcluded, StatusUndefined}

func (s Status) String() string {
	switch s {
	case StatusDefined:
		return "defined"
	case StatusExcluded:
		return "excluded"
	case StatusUndefined:
		return "undefined"
	default:
		return "error"
	}
}

// DefaultBaseURL is the public REST endpoint serving dictionary definitions.
const DefaultBaseURL = "https://en.wiktionary.org/api/rest_v1"

const acceptHeader = `application/json; charset=utf-8; profile="https://www.mediawiki.org/wiki/Specs/definition/0.8.0"`

// Client performs single-word definition lookups.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a lookup client. An empty baseURL selects the public
// endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type definitionEntry struct {
	PartOfSpeech string `json:"partOfSpeech"`
	Definitions  []struct {
		Definition string   `json:"definition"`
		Examples   []string `json:"examples"`
	} `json:"definitions"`
}

// Definitions carrying only a cross reference don't count as real entries.
var excludedFragments = []string{"Alternative form of ", "Alternative spelling of "}

// Semantic categories that disqualify a definition outright.
var excludedCategories = map[string]struct{}{
	"English_dated_forms":       {},
	"English_obsolete_forms":    {},
	"English_archaic_forms":     {},
	"Early_Modern_English":      {},
	"English_nonstandard_forms": {},

	"Appalachian_English":          {},
	"Multicultural_London_English": {},

	"English_given_names": {},

	"English_euphemisms":    {},
	"en:Recreational_drugs": {},
	"en:Furry_fandom":       {},

	"English_initialisms": {},
	"English_acronyms":    {},

	"English_short_forms": {},
	"English_ellipses":    {},

	"English_eye_dialect":             {},
	"English_pronunciation_spellings": {},

	"English_misspellings":             {},
	"English_intentional_misspellings": {},

	"English_abbreviations": {},

	"Requests_for_verification_in_English_entries": {},
}

var categoryPattern = regexp.MustCompile(`rel="mw:PageProp/Category" href="\./Category:([^#"]+)(#[^"]+)?"`)

func isAllowedDefinition(definition string) bool {
	for _, fragment := range excludedFragments {
		if strings.Contains(definition, fragment) {
			return false
		}
	}
	for _, match := range categoryPattern.FindAllStringSubmatch(definition, -1) {
		if _, excluded := excludedCategories[match[1]]; excluded {
			return false
		}
	}
	return true
}

func includesAllowedEntry(entries []definitionEntry) bool {
	for _, entry := range entries {
		for _, def := range entry.Definitions {
			if def.Definition != "" && isAllowedDefinition(def.Definition) {
				return true
			}
		}
	}
	return false
}

// Lookup classifies word with one definition API call. Network failures,
// unexpected statuses and malformed payloads are all classified as
// StatusError rather than propagated; the caller owns the retry policy.
func (c *Client) Lookup(ctx context.Context, word string) Status {
	endpoint := c.baseURL + "/page/definition/" + url.PathEscape(strings.ToLower(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Errorf("Error checking definition of %q: %v", word, err)
		return StatusError
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Error checking definition of %q: %v", word, err)
		return StatusError
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return StatusUndefined
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Errorf("Error checking definition of %q: %v", word, fmt.Errorf("unexpected response: %d", resp.StatusCode))
		return StatusError
	}

	var payload map[string][]definitionEntry
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Errorf("Error checking definition of %q: %v", word, err)
		return StatusError
	}

	english := payload["en"]
	if len(english) == 0 {
		// No English definitions
		return StatusUndefined
	}
	if includesAllowedEntry(english) {
		return StatusDefined
	}
	return StatusExcluded
}
