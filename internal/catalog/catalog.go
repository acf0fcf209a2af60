// Package catalog holds the static skill data used by the matcher: synonyms,
// extraction patterns, the category taxonomy and seniority levels.
//
// A Catalog is immutable once loaded and may be shared by any number of
// goroutines without locking.
package catalog

import (
	"regexp"
	"sort"
	"strings"
)

const (
	// leadingBoundary rejects a preceding character that would make the match
	// part of a longer identifier such as "asp.net" or "c++".
	leadingBoundary = `(?:^|[^a-z0-9+#.])`
	// trailingBoundary allows a trailing period so sentence ends still match.
	trailingBoundary = `(?:$|[^a-z0-9+#])`
)

// Document is the serialized form of a catalog.
type Document struct {
	Version         string            `yaml:"version" json:"version"`
	VarietyTarget   int               `yaml:"variety_target" json:"variety_target"`
	Categories      []string          `yaml:"categories" json:"categories"`
	Synonyms        map[string]string `yaml:"synonyms" json:"synonyms"`
	Patterns        []PatternEntry    `yaml:"patterns" json:"patterns"`
	StopWords       []string          `yaml:"stop_words,omitempty" json:"stop_words,omitempty"`
	TechKeywords    []string          `yaml:"tech_keywords,omitempty" json:"tech_keywords,omitempty"`
	SectionHeaders  []string          `yaml:"section_headers,omitempty" json:"section_headers,omitempty"`
	SeniorityLevels []SeniorityLevel  `yaml:"seniority_levels,omitempty" json:"seniority_levels,omitempty"`
}

// PatternEntry is one curated extraction pattern.
type PatternEntry struct {
	Category  string `yaml:"category" json:"category"`
	Pattern   string `yaml:"pattern" json:"pattern"`
	Canonical string `yaml:"canonical,omitempty" json:"canonical,omitempty"`
}

// SeniorityLevel is an ordered job level and the words that signal it.
type SeniorityLevel struct {
	Name    string   `yaml:"name" json:"name"`
	Rank    int      `yaml:"rank" json:"rank"`
	Aliases []string `yaml:"aliases" json:"aliases"`
}

// Pattern is a compiled extraction pattern. The skill text is capture group 1.
type Pattern struct {
	Category  string
	Canonical string
	Regexp    *regexp.Regexp
}

type seniorityMatcher struct {
	level SeniorityLevel
	re    *regexp.Regexp
}

// Catalog is the loaded, validated and compiled form of a Document.
type Catalog struct {
	version        string
	varietyTarget  int
	categories     []string
	synonyms       map[string]string
	patterns       []Pattern
	categoryOf     map[string]string
	stopWords      map[string]struct{}
	techKeywords   map[string]struct{}
	maxKeywordLen  int
	sectionHeaders []string
	seniority      []seniorityMatcher
}

// Version returns the document version, used to key cached results.
func (c *Catalog) Version() string { return c.version }

// VarietyTarget is the number of distinct categories that earns a full variety score.
func (c *Catalog) VarietyTarget() int { return c.varietyTarget }

// Categories returns a copy of the category taxonomy.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Synonym looks up a cleaned, lowercase spelling.
func (c *Catalog) Synonym(raw string) (string, bool) {
	canonical, ok := c.synonyms[raw]
	return canonical, ok
}

// Patterns returns the compiled patterns in declaration order. Callers must not modify the slice.
func (c *Catalog) Patterns() []Pattern { return c.patterns }

// CategoryOf returns the category of a canonical skill token.
func (c *Catalog) CategoryOf(token string) (string, bool) {
	category, ok := c.categoryOf[token]
	return category, ok
}

// IsStopWord reports whether token is a non-technical word to drop from extraction output.
func (c *Catalog) IsStopWord(token string) bool {
	_, ok := c.stopWords[token]
	return ok
}

// IsTechKeyword reports whether phrase is on the section bullet allowlist.
func (c *Catalog) IsTechKeyword(phrase string) bool {
	_, ok := c.techKeywords[phrase]
	return ok
}

// MaxKeywordWords is the word count of the longest allowlisted keyword.
func (c *Catalog) MaxKeywordWords() int { return c.maxKeywordLen }

// SectionHeaders returns the lowercase header names that open a skills section.
func (c *Catalog) SectionHeaders() []string { return c.sectionHeaders }

// SeniorityRank returns the highest seniority rank mentioned in text.
func (c *Catalog) SeniorityRank(text string) (int, bool) {
	lower := strings.ToLower(text)
	best, found := 0, false
	for _, m := range c.seniority {
		if m.re.MatchString(lower) && (!found || m.level.Rank > best) {
			best, found = m.level.Rank, true
		}
	}
	return best, found
}

func compile(doc *Document) (*Catalog, error) {
	c := &Catalog{
		version:        doc.Version,
		varietyTarget:  doc.VarietyTarget,
		categories:     append([]string(nil), doc.Categories...),
		synonyms:       make(map[string]string, len(doc.Synonyms)),
		patterns:       make([]Pattern, 0, len(doc.Patterns)),
		categoryOf:     make(map[string]string),
		stopWords:      make(map[string]struct{}, len(doc.StopWords)),
		techKeywords:   make(map[string]struct{}, len(doc.TechKeywords)),
		sectionHeaders: make([]string, 0, len(doc.SectionHeaders)),
	}

	known := make(map[string]bool, len(doc.Categories))
	for _, category := range doc.Categories {
		known[category] = true
	}

	for raw, canonical := range doc.Synonyms {
		c.synonyms[clean(raw)] = clean(canonical)
	}
	for raw, canonical := range c.synonyms {
		if next, ok := c.synonyms[canonical]; ok && next != canonical {
			return nil, &LoadError{
				Message: "synonym chain for " + raw + ": " + canonical + " maps to " + next,
			}
		}
	}

	for i, entry := range doc.Patterns {
		if !known[entry.Category] {
			return nil, &LoadError{Message: "pattern " + entry.Pattern + " uses unknown category " + entry.Category}
		}
		re, err := regexp.Compile(leadingBoundary + "(" + entry.Pattern + ")" + trailingBoundary)
		if err != nil {
			return nil, &PatternError{Index: i, Pattern: entry.Pattern, Cause: err}
		}
		canonical := clean(entry.Canonical)
		if target, ok := c.synonyms[canonical]; ok && target != canonical {
			return nil, &LoadError{
				Message: "pattern " + entry.Pattern + " has non-canonical token " + canonical + " (synonym of " + target + ")",
			}
		}
		c.patterns = append(c.patterns, Pattern{Category: entry.Category, Canonical: canonical, Regexp: re})
		if canonical != "" {
			if _, seen := c.categoryOf[canonical]; !seen {
				c.categoryOf[canonical] = entry.Category
			}
		}
	}

	for _, w := range doc.StopWords {
		c.stopWords[clean(w)] = struct{}{}
	}
	for _, k := range doc.TechKeywords {
		k = clean(k)
		c.techKeywords[k] = struct{}{}
		if n := len(strings.Fields(k)); n > c.maxKeywordLen {
			c.maxKeywordLen = n
		}
	}
	for _, h := range doc.SectionHeaders {
		c.sectionHeaders = append(c.sectionHeaders, clean(h))
	}
	// Longest headers first so "required skills" wins over "skills".
	sort.SliceStable(c.sectionHeaders, func(i, j int) bool {
		return len(c.sectionHeaders[i]) > len(c.sectionHeaders[j])
	})

	for _, level := range doc.SeniorityLevels {
		quoted := make([]string, 0, len(level.Aliases))
		for _, alias := range level.Aliases {
			quoted = append(quoted, regexp.QuoteMeta(clean(alias)))
		}
		re, err := regexp.Compile(`(?:^|[^a-z0-9])(?:` + strings.Join(quoted, "|") + `)\.?(?:$|[^a-z0-9])`)
		if err != nil {
			return nil, &LoadError{Message: "seniority level " + level.Name, Cause: err}
		}
		c.seniority = append(c.seniority, seniorityMatcher{level: level, re: re})
	}

	return c, nil
}

func clean(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
