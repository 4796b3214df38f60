package wiktionary

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/charmbracelet/log"
)

// Page is one extracted dictionary page: a headword plus the raw tag-sets
// of its English senses, one set per definition line.
type Page struct {
	Title   string
	TagSets [][]string
}

// TitleFilter decides which page titles are worth extracting.
type TitleFilter func(title string) bool

var headwordPattern = regexp.MustCompile(`^[a-z]{2,10}$`)

// DefaultTitleFilter keeps plain lowercase headwords in the playable range.
func DefaultTitleFilter(title string) bool {
	return headwordPattern.MatchString(title)
}

type xmlPage struct {
	Title string `xml:"title"`
	Text  string `xml:"revision>text"`
}

var (
	englishStartPattern = regexp.MustCompile(`^(=+)English=+$`)
	senseTagPattern     = regexp.MustCompile(`\{\{([^}]+)\}\}`)
)

// ExtractTags streams a dictionary dump in XML export format and calls fn
// once per page that passes filter and carries an English section. Pages
// are decoded one at a time; the dump never loads fully into memory. An
// error from fn aborts the scan.
func ExtractTags(path string, filter TitleFilter, fn func(page Page) error) error {
	if filter == nil {
		filter = DefaultTitleFilter
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".br") {
		reader = brotli.NewReader(file)
	}

	decoder := xml.NewDecoder(reader)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		start, isStart := token.(xml.StartElement)
		if !isStart || start.Name.Local != "page" {
			continue
		}
		var raw xmlPage
		if err := decoder.DecodeElement(&raw, &start); err != nil {
			log.Errorf("Error reading page: %v", err)
			continue
		}
		if raw.Title == "" || raw.Text == "" || !filter(raw.Title) {
			continue
		}
		if !strings.Contains(raw.Text, "=English=") {
			continue
		}
		page := Page{
			Title:   raw.Title,
			TagSets: extractTagSets(englishLines(raw.Text)),
		}
		if err := fn(page); err != nil {
			return err
		}
	}
}

// englishLines isolates the English section: everything after the
// "==English==" heading up to the next heading of the same level.
func englishLines(text string) []string {
	var endPattern *regexp.Regexp
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if endPattern != nil {
			if endPattern.MatchString(line) {
				break
			}
			lines = append(lines, line)
			continue
		}
		if match := englishStartPattern.FindStringSubmatch(line); match != nil {
			level := len(match[1])
			endPattern = regexp.MustCompile(fmt.Sprintf(`^={%d}[^=]+={%d}$`, level, level))
		}
	}
	return lines
}

// extractTagSets collects the {{...}} template contents of every "# "
// definition line. Definitions only count once a headword template has
// opened the entry.
func extractTagSets(lines []string) [][]string {
	var tagSets [][]string
	sawHeadword := false
	for _, line := range lines {
		if strings.HasPrefix(line, "{{") {
			sawHeadword = true
		}
		if sawHeadword && strings.HasPrefix(line, "# ") {
			var tags []string
			for _, match := range senseTagPattern.FindAllStringSubmatch(line, -1) {
				tags = append(tags, match[1])
			}
			if tags == nil {
				tags = []string{}
			}
			tagSets = append(tagSets, tags)
		}
	}
	return tagSets
}
