// Package pipeline orchestrates skill normalization, job scoring, ranking and
// gap aggregation behind the two public contracts of the matcher.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skillmatch/internal/cache"
	"github.com/jonathan/skillmatch/internal/catalog"
	"github.com/jonathan/skillmatch/internal/extraction"
	"github.com/jonathan/skillmatch/internal/fuzzy"
	"github.com/jonathan/skillmatch/internal/gaps"
	"github.com/jonathan/skillmatch/internal/metrics"
	"github.com/jonathan/skillmatch/internal/parsing"
	"github.com/jonathan/skillmatch/internal/ranking"
	"github.com/jonathan/skillmatch/internal/types"
)

// Options holds the tunables of a Pipeline.
type Options struct {
	FuzzyThreshold float64
	// ParallelThreshold is the batch size above which jobs are scored concurrently.
	ParallelThreshold int
	Workers           int
	// SimilarityCacheSize bounds the fuzzy similarity memo; 0 disables it.
	SimilarityCacheSize int
	// RecencyWindow enables the recency boost when positive.
	RecencyWindow time.Duration
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold:      fuzzy.DefaultThreshold,
		ParallelThreshold:   50,
		Workers:             8,
		SimilarityCacheSize: 4096,
		RecencyWindow:       30 * 24 * time.Hour,
	}
}

// Pipeline scores, ranks and aggregates. It is safe for concurrent use.
type Pipeline struct {
	catalog    *catalog.Catalog
	normalizer *parsing.Normalizer
	scorer     *ranking.Scorer
	opts       Options
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger; the default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithClock replaces time.Now for the recency boost.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New wires a Pipeline over cat.
func New(cat *catalog.Catalog, opts Options, options ...Option) (*Pipeline, error) {
	p := &Pipeline{
		catalog:    cat,
		normalizer: parsing.NewNormalizer(cat),
		opts:       opts,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, o := range options {
		o(p)
	}

	matcherOpts := []fuzzy.Option{fuzzy.WithNormalizer(p.normalizer)}
	if opts.SimilarityCacheSize > 0 {
		lru, err := cache.NewLRU[string, float64](opts.SimilarityCacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create similarity cache: %w", err)
		}
		matcherOpts = append(matcherOpts, fuzzy.WithCache(lru))
	}

	matcher := fuzzy.NewMatcher(opts.FuzzyThreshold, matcherOpts...)
	p.scorer = ranking.NewScorer(
		cat,
		p.normalizer,
		extraction.NewExtractor(cat, p.normalizer),
		matcher,
		ranking.WithLevelSignal(ranking.NewSeniorityLevel(cat)),
	)

	p.logger.Debug("pipeline ready",
		zap.String("catalog_version", cat.Version()),
		zap.Float64("fuzzy_threshold", matcher.Threshold()),
		zap.Int("similarity_cache_size", opts.SimilarityCacheSize),
	)
	return p, nil
}

// CatalogVersion identifies the catalog results were computed with.
func (p *Pipeline) CatalogVersion() string {
	return p.catalog.Version()
}

type scoreOptions struct {
	candidateLevel string
}

// ScoreOption configures a single ScoreAndRankJobs call.
type ScoreOption func(*scoreOptions)

// WithCandidateLevel supplies the candidate's seniority, e.g. "senior".
func WithCandidateLevel(level string) ScoreOption {
	return func(o *scoreOptions) { o.candidateLevel = level }
}

// ScoreAndRankJobs scores every posting against the candidate and returns them
// ranked, best first. The only error is cancellation of ctx.
func (p *Pipeline) ScoreAndRankJobs(ctx context.Context, candidateSkills []string, jobs []types.JobPostingInput, opts ...ScoreOption) ([]types.ScoredJob, error) {
	var so scoreOptions
	for _, o := range opts {
		o(&so)
	}

	start := time.Now()
	candidate := p.scorer.NewCandidate(candidateSkills, so.candidateLevel)
	parallel := len(jobs) > p.opts.ParallelThreshold

	scored := make([]types.ScoredJob, len(jobs))
	if parallel {
		if err := p.scoreParallel(ctx, candidate, jobs, scored); err != nil {
			return nil, err
		}
	} else {
		for i := range jobs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			scored[i] = p.scorer.Score(candidate, jobs[i])
		}
	}

	var rankOpts []ranking.RankOption
	if p.opts.RecencyWindow > 0 {
		rankOpts = append(rankOpts, ranking.WithRecency(ranking.RecentWithin(p.opts.RecencyWindow, p.now)))
	}
	ranked := ranking.Rank(scored, rankOpts...)

	elapsed := time.Since(start)
	metrics.JobsScored.Add(float64(len(jobs)))
	metrics.OperationDuration.WithLabelValues("score").Observe(elapsed.Seconds())
	p.logger.Debug("scored job batch",
		zap.Int("jobs", len(jobs)),
		zap.Int("candidate_skills", len(candidate.Skills)),
		zap.Bool("parallel", parallel),
		zap.Duration("duration", elapsed),
	)

	return ranked, nil
}

// scoreParallel fills scored[i] for each job. Each worker writes only its own index.
func (p *Pipeline) scoreParallel(ctx context.Context, candidate ranking.Candidate, jobs []types.JobPostingInput, scored []types.ScoredJob) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.opts.Workers))

	for i := range jobs {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			scored[i] = p.scorer.Score(candidate, jobs[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// Cancellation seen by the loop before any worker failed.
	return ctx.Err()
}

// ComputeSkillGaps aggregates the missing skills of ranked jobs into at most topN items.
func (p *Pipeline) ComputeSkillGaps(candidateSkills []string, jobs []types.ScoredJob, topN int) ([]types.SkillGapItem, error) {
	start := time.Now()
	items, err := gaps.Compute(p.normalizer, candidateSkills, jobs, topN)
	if err != nil {
		return nil, err
	}

	metrics.OperationDuration.WithLabelValues("gaps").Observe(time.Since(start).Seconds())
	metrics.GapItems.Observe(float64(len(items)))
	p.logger.Debug("computed skill gaps",
		zap.Int("jobs", len(jobs)),
		zap.Int("top_n", topN),
		zap.Int("gaps", len(items)),
	)
	return items, nil
}

// Analyze scores and ranks req.Jobs, then computes their gap list.
func (p *Pipeline) Analyze(ctx context.Context, req types.AnalyzeRequest) (*types.AnalyzeResponse, error) {
	topN := gaps.DefaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}
	// Fail fast before scoring.
	if topN <= 0 {
		return nil, &gaps.InvalidArgumentError{Argument: "top_n", Message: fmt.Sprintf("must be positive, got %d", topN)}
	}

	ranked, err := p.ScoreAndRankJobs(ctx, req.CandidateSkills, req.Jobs, WithCandidateLevel(req.CandidateLevel))
	if err != nil {
		return nil, err
	}
	items, err := p.ComputeSkillGaps(req.CandidateSkills, ranked, topN)
	if err != nil {
		return nil, err
	}
	return &types.AnalyzeResponse{Jobs: ranked, Gaps: items}, nil
}
