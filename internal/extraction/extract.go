// Package extraction finds canonical skill tokens in job titles and descriptions.
package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/skillmatch/internal/catalog"
	"github.com/jonathan/skillmatch/internal/parsing"
)

// MaxSectionLength bounds how much text after a header is treated as part of that section.
const MaxSectionLength = 1000

var (
	bulletRe = regexp.MustCompile(`^\s*(?:[-*•·▪]|\d+[.)])\s+(.+)$`)
	tokenRe  = regexp.MustCompile(`[a-z0-9+#.]+(?:[/-][a-z0-9+#.]+)*`)
)

// Extractor scans free text against the catalog's patterns and keyword allowlist.
// It never fails; text without recognizable skills yields an empty slice.
type Extractor struct {
	catalog    *catalog.Catalog
	normalizer *parsing.Normalizer
}

// NewExtractor creates an Extractor.
func NewExtractor(cat *catalog.Catalog, normalizer *parsing.Normalizer) *Extractor {
	return &Extractor{catalog: cat, normalizer: normalizer}
}

// ExtractSkills runs every catalog pattern over the whole text and returns the
// sorted set of canonical tokens found.
func (e *Extractor) ExtractSkills(text string) []string {
	found := make(map[string]struct{})
	e.collectPatterns(parsing.Clean(text), found)
	return sortedTokens(found)
}

// ExtractSkillsFromSections unions ExtractSkills with an allowlist scan of the
// bullet lines under skill-related headers.
func (e *Extractor) ExtractSkillsFromSections(text string) []string {
	found := make(map[string]struct{})
	e.collectPatterns(parsing.Clean(text), found)

	for _, section := range e.sections(text) {
		for _, line := range strings.Split(section, "\n") {
			m := bulletRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			e.collectKeywords(m[1], found)
		}
	}

	return sortedTokens(found)
}

// ExtractJobSkills resolves the skills of a posting that has no structured list:
// the description (flattened when it is HTML) or, when that is blank, the title.
func (e *Extractor) ExtractJobSkills(description, title string) []string {
	text := description
	if LooksLikeHTML(text) {
		text = PlainText(text)
	}
	if strings.TrimSpace(text) == "" {
		text = title
	}
	return e.ExtractSkillsFromSections(text)
}

func (e *Extractor) collectPatterns(cleaned string, found map[string]struct{}) {
	if cleaned == "" {
		return
	}
	for _, p := range e.catalog.Patterns() {
		m := p.Regexp.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}
		token := p.Canonical
		if token == "" {
			token = e.normalizer.Normalize(m[1])
		}
		e.add(token, found)
	}
}

func (e *Extractor) collectKeywords(line string, found map[string]struct{}) {
	var tokens []string
	for _, tok := range tokenRe.FindAllString(parsing.Clean(line), -1) {
		if tok = strings.TrimRight(tok, "."); tok != "" {
			tokens = append(tokens, tok)
		}
	}

	maxWords := e.catalog.MaxKeywordWords()
	for n := maxWords; n >= 1; n-- {
		for i := 0; i+n <= len(tokens); i++ {
			phrase := strings.Join(tokens[i:i+n], " ")
			if e.catalog.IsTechKeyword(phrase) {
				e.add(e.normalizer.Normalize(phrase), found)
			}
		}
	}

	// "react/redux" style pairs
	for _, tok := range tokens {
		if !strings.Contains(tok, "/") || e.catalog.IsTechKeyword(tok) {
			continue
		}
		for _, part := range strings.Split(tok, "/") {
			if e.catalog.IsTechKeyword(part) {
				e.add(e.normalizer.Normalize(part), found)
			}
		}
	}
}

func (e *Extractor) add(token string, found map[string]struct{}) {
	if token == "" || e.catalog.IsStopWord(token) {
		return
	}
	found[token] = struct{}{}
}

func sortedTokens(found map[string]struct{}) []string {
	out := make([]string, 0, len(found))
	for token := range found {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}
