package fuzzy

import "github.com/jonathan/skillmatch/internal/cache"

// Normalizer canonicalizes a token before comparison.
type Normalizer interface {
	Normalize(raw string) string
}

// Matcher decides whether two skill tokens are close enough to be treated as equal.
type Matcher struct {
	threshold  float64
	normalizer Normalizer
	cache      cache.Cache[string, float64]
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithNormalizer canonicalizes both tokens before measuring distance, so
// synonyms such as "reactjs" and "react" score 1.
func WithNormalizer(n Normalizer) Option {
	return func(m *Matcher) { m.normalizer = n }
}

// WithCache memoizes similarity results in c.
func WithCache(c cache.Cache[string, float64]) Option {
	return func(m *Matcher) { m.cache = c }
}

// NewMatcher creates a Matcher. A threshold outside (0, 1] falls back to DefaultThreshold.
func NewMatcher(threshold float64, opts ...Option) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	m := &Matcher{threshold: threshold}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Threshold returns the configured match threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Similarity scores a against b, normalizing first when a Normalizer is set.
func (m *Matcher) Similarity(a, b string) float64 {
	if m.normalizer != nil {
		a, b = m.normalizer.Normalize(a), m.normalizer.Normalize(b)
	}
	if a == b {
		return 1
	}
	if m.cache == nil {
		return Similarity(a, b)
	}

	// Symmetric key
	if a > b {
		a, b = b, a
	}
	key := a + "\x00" + b
	if score, ok := m.cache.Get(key); ok {
		return score
	}
	score := Similarity(a, b)
	m.cache.Add(key, score)
	return score
}

// IsMatch reports whether Similarity(a, b) exceeds the threshold. Identical
// tokens always match, even at threshold 1.
func (m *Matcher) IsMatch(a, b string) bool {
	score := m.Similarity(a, b)
	return score == 1 || score > m.threshold
}
