package ranking

import (
	"sort"
	"time"

	"github.com/jonathan/skillmatch/internal/types"
)

// Boosts applied by Rank, in order.
const (
	highMatchBoost  = 5.0
	fewMissingBoost = 3.0
	recentBoost     = 2.0

	highMatchCount  = 5.0
	fewMissingLimit = 2
)

// RecencyPredicate reports whether a posting date counts as recent.
type RecencyPredicate func(postedAt time.Time) bool

// RecentWithin accepts postings dated no earlier than window before now().
func RecentWithin(window time.Duration, now func() time.Time) RecencyPredicate {
	return func(postedAt time.Time) bool {
		return !postedAt.Before(now().Add(-window))
	}
}

type rankOptions struct {
	recent RecencyPredicate
}

// RankOption configures Rank.
type RankOption func(*rankOptions)

// WithRecency enables the recency boost.
func WithRecency(p RecencyPredicate) RankOption {
	return func(o *rankOptions) { o.recent = p }
}

// Rank returns a boosted copy of jobs sorted by relevance score, descending.
// Jobs with equal scores keep their input order. The input slice is not modified.
func Rank(jobs []types.ScoredJob, opts ...RankOption) []types.ScoredJob {
	var o rankOptions
	for _, opt := range opts {
		opt(&o)
	}

	ranked := make([]types.ScoredJob, len(jobs))
	copy(ranked, jobs)

	for i := range ranked {
		boost := computeBoost(&ranked[i], &o)
		ranked[i].RelevanceScore += boost
		ranked[i].Boost += boost
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RelevanceScore > ranked[j].RelevanceScore
	})

	return ranked
}

func computeBoost(job *types.ScoredJob, o *rankOptions) float64 {
	boost := 0.0
	if job.MatchCount >= highMatchCount {
		boost += highMatchBoost
	}
	if len(job.MissingSkills) <= fewMissingLimit {
		boost += fewMissingBoost
	}
	// Undated postings skip the recency boost.
	if o.recent != nil && job.PostedAt != nil && o.recent(*job.PostedAt) {
		boost += recentBoost
	}
	return boost
}
