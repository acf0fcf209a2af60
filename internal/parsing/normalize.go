// Package parsing canonicalizes free-text skill names into comparable tokens.
package parsing

import (
	"strings"

	"github.com/jonathan/skillmatch/internal/catalog"
	"golang.org/x/text/unicode/norm"
)

// Normalizer maps skill spellings to canonical tokens using a catalog's synonym table.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	catalog *catalog.Catalog
}

// NewNormalizer creates a Normalizer backed by cat.
func NewNormalizer(cat *catalog.Catalog) *Normalizer {
	return &Normalizer{catalog: cat}
}

// Normalize returns the canonical token for raw, or the cleaned input when the
// synonym table has no entry. Blank input yields "".
func (n *Normalizer) Normalize(raw string) string {
	cleaned := Clean(raw)
	if cleaned == "" {
		return ""
	}
	if canonical, ok := n.catalog.Synonym(cleaned); ok {
		return canonical
	}
	return cleaned
}

// NormalizeAll normalizes each skill and deduplicates, keeping first-occurrence order.
// Blank entries are dropped.
func (n *Normalizer) NormalizeAll(raws []string) []string {
	out := make([]string, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		token := n.Normalize(raw)
		if token == "" {
			continue
		}
		if _, exists := seen[token]; exists {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// Clean applies compatibility folding, lowercases, trims and collapses inner whitespace.
func Clean(raw string) string {
	folded := norm.NFKC.String(raw)
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
