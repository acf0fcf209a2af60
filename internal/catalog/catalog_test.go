package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, cat.Version())
	assert.Equal(t, 5, cat.VarietyTarget())
	assert.Contains(t, cat.Categories(), "databases")
	assert.NotEmpty(t, cat.Patterns())

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, cat, again)
}

func TestDefault_SynonymsAreIdempotent(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	for raw, canonical := range cat.synonyms {
		next, ok := cat.Synonym(canonical)
		if ok {
			assert.Equal(t, canonical, next, "synonym %q leads to a chain", raw)
		}
	}
}

func TestCatalog_CategoryOf(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	tests := []struct {
		token    string
		expected string
	}{
		{"python", "languages"},
		{"react", "frontend"},
		{"postgresql", "databases"},
		{"docker", "devops"},
		{"aws", "cloud"},
		{"react native", "mobile"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			category, ok := cat.CategoryOf(tt.token)
			require.True(t, ok)
			assert.Equal(t, tt.expected, category)
		})
	}

	_, ok := cat.CategoryOf("underwater basket weaving")
	assert.False(t, ok)
}

func TestCatalog_SeniorityRank(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name      string
		title     string
		wantRank  int
		wantFound bool
	}{
		{name: "senior", title: "Senior Backend Engineer", wantRank: 3, wantFound: true},
		{name: "abbreviated", title: "Sr. Data Engineer", wantRank: 3, wantFound: true},
		{name: "highest wins", title: "Senior Staff Engineer", wantRank: 4, wantFound: true},
		{name: "junior", title: "Junior Developer", wantRank: 1, wantFound: true},
		{name: "hyphenated", title: "Mid-Level Frontend Developer", wantRank: 2, wantFound: true},
		{name: "intern", title: "Software Engineering Intern", wantRank: 0, wantFound: true},
		{name: "substring is not a level", title: "Leadership Coach", wantFound: false},
		{name: "none", title: "Backend Engineer", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, found := cat.SeniorityRank(tt.title)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantRank, rank)
			}
		})
	}
}

func TestCatalog_SectionHeadersLongestFirst(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	headers := cat.SectionHeaders()
	require.NotEmpty(t, headers)
	for i := 1; i < len(headers); i++ {
		assert.GreaterOrEqual(t, len(headers[i-1]), len(headers[i]))
	}
}

func TestParse_RejectsUnknownCategory(t *testing.T) {
	doc := `
version: "1"
variety_target: 3
categories: [languages]
synonyms: {}
patterns:
  - { category: frontend, pattern: 'react' }
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "unknown category")
}

func TestParse_RejectsBadPattern(t *testing.T) {
	doc := `
version: "1"
variety_target: 3
categories: [languages]
synonyms: {}
patterns:
  - { category: languages, pattern: 'go(' }
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var patternErr *PatternError
	require.True(t, errors.As(err, &patternErr))
	assert.Equal(t, 0, patternErr.Index)
}

func TestParse_RejectsSchemaViolation(t *testing.T) {
	doc := `
version: "1"
variety_target: 0
categories: [languages]
synonyms: {}
patterns:
  - { category: languages, pattern: 'go' }
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestParse_RejectsSynonymChain(t *testing.T) {
	doc := `
version: "1"
variety_target: 3
categories: [languages]
synonyms:
  js: ecmascript
  ecmascript: javascript
patterns:
  - { category: languages, pattern: 'javascript' }
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "synonym chain")
}

func TestParse_RejectsNonCanonicalPattern(t *testing.T) {
	doc := `
version: "1"
variety_target: 3
categories: [frontend]
synonyms:
  reactjs: react
patterns:
  - { category: frontend, pattern: 'react', canonical: ReactJS }
`
	_, err := Parse([]byte(doc))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "non-canonical token reactjs (synonym of react)")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	doc := `
version: "custom"
variety_target: 2
categories: [languages, databases]
synonyms:
  Postgres: PostgreSQL
patterns:
  - { category: databases, pattern: 'postgres(?:ql)?', canonical: postgresql }
  - { category: languages, pattern: 'python' }
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cat, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", cat.Version())
	assert.Equal(t, 2, cat.VarietyTarget())

	canonical, ok := cat.Synonym("postgres")
	require.True(t, ok)
	assert.Equal(t, "postgresql", canonical)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
