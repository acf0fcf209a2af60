// Package ranking scores job postings against a candidate's skills and orders them by relevance.
package ranking

import (
	"math"
	"sort"

	"github.com/jonathan/skillmatch/internal/catalog"
	"github.com/jonathan/skillmatch/internal/extraction"
	"github.com/jonathan/skillmatch/internal/fuzzy"
	"github.com/jonathan/skillmatch/internal/parsing"
	"github.com/jonathan/skillmatch/internal/types"
)

// Default weights for scoring components
const (
	matchWeight        = 0.5
	completenessWeight = 0.2
	varietyWeight      = 0.15
	levelWeight        = 0.15

	// fuzzyCredit is the partial credit a fuzzy match earns relative to an exact one.
	fuzzyCredit = 0.8
)

// Candidate is a normalized candidate profile, prepared once per batch.
type Candidate struct {
	// Skills are canonical tokens in sorted order.
	Skills []string
	Level  string
	set    map[string]struct{}
}

// Has reports whether the candidate lists token.
func (c Candidate) Has(token string) bool {
	_, ok := c.set[token]
	return ok
}

// Scorer computes the relevance of one posting for one candidate.
type Scorer struct {
	catalog    *catalog.Catalog
	normalizer *parsing.Normalizer
	extractor  *extraction.Extractor
	matcher    *fuzzy.Matcher
	level      LevelSignal
}

// ScorerOption configures a Scorer.
type ScorerOption func(*Scorer)

// WithLevelSignal replaces the neutral level signal.
func WithLevelSignal(l LevelSignal) ScorerOption {
	return func(s *Scorer) { s.level = l }
}

// NewScorer creates a Scorer.
func NewScorer(cat *catalog.Catalog, normalizer *parsing.Normalizer, extractor *extraction.Extractor, matcher *fuzzy.Matcher, opts ...ScorerOption) *Scorer {
	s := &Scorer{
		catalog:    cat,
		normalizer: normalizer,
		extractor:  extractor,
		matcher:    matcher,
		level:      NeutralLevel{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewCandidate normalizes raw skills into a Candidate.
func (s *Scorer) NewCandidate(skills []string, level string) Candidate {
	tokens := s.normalizer.NormalizeAll(skills)
	sort.Strings(tokens)

	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return Candidate{Skills: tokens, Level: level, set: set}
}

// ResolveSkills returns the posting's canonical required skills: the structured
// list when it has any, otherwise the skills extracted from its text.
func (s *Scorer) ResolveSkills(job types.JobPostingInput) []string {
	if skills := s.normalizer.NormalizeAll(job.SkillsRequired); len(skills) > 0 {
		return skills
	}
	return s.extractor.ExtractJobSkills(job.Description, job.Title)
}

// Score computes a ScoredJob. The posting's fields are copied unchanged except
// SkillsRequired, which is replaced by the resolved skill list.
func (s *Scorer) Score(c Candidate, job types.JobPostingInput) types.ScoredJob {
	jobSkills := s.ResolveSkills(job)

	scored := types.ScoredJob{
		JobPostingInput: job,
		MatchedSkills:   []string{},
		MissingSkills:   []string{},
		Breakdown:       &types.ScoreBreakdown{},
	}
	scored.SkillsRequired = jobSkills

	// No resolvable skills means nothing to match against.
	if len(jobSkills) == 0 {
		return scored
	}

	var exact, fuzzyCount int
	categories := make(map[string]struct{})
	for _, skill := range jobSkills {
		if c.Has(skill) {
			exact++
			scored.MatchedSkills = append(scored.MatchedSkills, skill)
			s.addCategory(categories, skill, "")
			continue
		}
		if match, ok := s.fuzzyMatch(c, skill); ok {
			fuzzyCount++
			scored.MatchedSkills = append(scored.MatchedSkills, skill)
			s.addCategory(categories, skill, match)
			continue
		}
		scored.MissingSkills = append(scored.MissingSkills, skill)
	}

	matchCount := float64(exact) + fuzzyCredit*float64(fuzzyCount)
	m := matchCount / math.Max(1, float64(len(jobSkills))) * 100
	cs := matchCount / math.Max(1, float64(len(c.Skills))) * 100
	v := s.varietyScore(len(categories))
	l := clampLevel(s.level.Score(c.Level, job))

	scored.MatchCount = matchCount
	scored.RelevanceScore = math.Round(matchWeight*m + completenessWeight*cs + varietyWeight*v + levelWeight*l)
	scored.Breakdown = &types.ScoreBreakdown{Match: m, Completeness: cs, Variety: v, Level: l}
	return scored
}

// fuzzyMatch returns the first candidate skill, in sorted order, close enough to skill.
func (s *Scorer) fuzzyMatch(c Candidate, skill string) (string, bool) {
	for _, candidate := range c.Skills {
		if s.matcher.IsMatch(skill, candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (s *Scorer) addCategory(categories map[string]struct{}, skill, fallback string) {
	if category, ok := s.catalog.CategoryOf(skill); ok {
		categories[category] = struct{}{}
		return
	}
	if fallback == "" {
		return
	}
	if category, ok := s.catalog.CategoryOf(fallback); ok {
		categories[category] = struct{}{}
	}
}

func (s *Scorer) varietyScore(matchedCategories int) float64 {
	target := float64(max(1, s.catalog.VarietyTarget()))
	return math.Min(float64(matchedCategories)/target, 1) * 100
}

func clampLevel(l float64) float64 {
	return math.Min(100, math.Max(0, l))
}
