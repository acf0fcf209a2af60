package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/skillmatch/internal/catalog"
	"github.com/jonathan/skillmatch/internal/gaps"
	"github.com/jonathan/skillmatch/internal/types"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestPipeline(t *testing.T, mutate func(*Options)) *Pipeline {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	p, err := New(cat, opts, WithLogger(zaptest.NewLogger(t)), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return p
}

func sampleJobs() []types.JobPostingInput {
	return []types.JobPostingInput{
		{ID: "fe", Title: "Frontend Engineer", SkillsRequired: []string{"react", "typescript", "docker"}},
		{ID: "be", Title: "Backend Engineer", SkillsRequired: []string{"go", "postgresql", "kubernetes", "aws"}},
		{ID: "fs", Title: "Fullstack Engineer", SkillsRequired: []string{"react", "javascript", "node.js"}},
	}
}

func TestScoreAndRankJobs_OrdersByRelevance(t *testing.T) {
	p := newTestPipeline(t, nil)

	ranked, err := p.ScoreAndRankJobs(context.Background(), []string{"React", "JavaScript"}, sampleJobs())
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "fs", ranked[0].ID)
	assert.Equal(t, "be", ranked[2].ID)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].RelevanceScore, ranked[i].RelevanceScore)
	}

	var fe types.ScoredJob
	for _, j := range ranked {
		if j.ID == "fe" {
			fe = j
		}
	}
	// 37 base plus the few-missing boost.
	assert.Equal(t, 40.0, fe.RelevanceScore)
	assert.Equal(t, 3.0, fe.Boost)
}

func TestScoreAndRankJobs_Empty(t *testing.T) {
	p := newTestPipeline(t, nil)

	ranked, err := p.ScoreAndRankJobs(context.Background(), []string{"go"}, nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestScoreAndRankJobs_ParallelMatchesSequential(t *testing.T) {
	var jobs []types.JobPostingInput
	stacks := [][]string{
		{"go", "docker", "kubernetes"},
		{"python", "django", "postgresql", "redis"},
		{"react", "typescript"},
		{"java", "spring", "aws", "terraform", "kafka"},
	}
	for i := 0; i < 120; i++ {
		jobs = append(jobs, types.JobPostingInput{
			ID:             fmt.Sprintf("job-%03d", i),
			Title:          "Engineer",
			SkillsRequired: stacks[i%len(stacks)],
		})
	}
	skills := []string{"Go", "Docker", "Python", "PostgreSQL"}

	seq := newTestPipeline(t, func(o *Options) { o.ParallelThreshold = 1000 })
	par := newTestPipeline(t, func(o *Options) {
		o.ParallelThreshold = 10
		o.Workers = 4
	})

	want, err := seq.ScoreAndRankJobs(context.Background(), skills, jobs)
	require.NoError(t, err)
	got, err := par.ScoreAndRankJobs(context.Background(), skills, jobs)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestScoreAndRankJobs_Cancelled(t *testing.T) {
	jobs := sampleJobs()
	for _, threshold := range []int{1000, 0} {
		t.Run(fmt.Sprintf("threshold_%d", threshold), func(t *testing.T) {
			p := newTestPipeline(t, func(o *Options) { o.ParallelThreshold = threshold })
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			ranked, err := p.ScoreAndRankJobs(ctx, []string{"react"}, jobs)
			assert.ErrorIs(t, err, context.Canceled)
			assert.Nil(t, ranked)
		})
	}
}

func TestScoreAndRankJobs_RecencyBoost(t *testing.T) {
	recent := fixedNow.Add(-24 * time.Hour)
	stale := fixedNow.Add(-90 * 24 * time.Hour)
	jobs := []types.JobPostingInput{
		{ID: "stale", Title: "Engineer", SkillsRequired: []string{"go", "rust", "c++"}, PostedAt: &stale},
		{ID: "recent", Title: "Engineer", SkillsRequired: []string{"go", "rust", "c++"}, PostedAt: &recent},
	}

	p := newTestPipeline(t, nil)
	ranked, err := p.ScoreAndRankJobs(context.Background(), []string{"go"}, jobs)
	require.NoError(t, err)

	assert.Equal(t, "recent", ranked[0].ID)
	assert.Equal(t, ranked[1].RelevanceScore+2, ranked[0].RelevanceScore)

	noRecency := newTestPipeline(t, func(o *Options) { o.RecencyWindow = 0 })
	ranked, err = noRecency.ScoreAndRankJobs(context.Background(), []string{"go"}, jobs)
	require.NoError(t, err)
	assert.Equal(t, "stale", ranked[0].ID)
	assert.Equal(t, ranked[0].RelevanceScore, ranked[1].RelevanceScore)
}

func TestScoreAndRankJobs_CandidateLevel(t *testing.T) {
	p := newTestPipeline(t, nil)
	jobs := []types.JobPostingInput{{ID: "1", Title: "Senior Backend Engineer", SkillsRequired: []string{"go"}}}

	senior, err := p.ScoreAndRankJobs(context.Background(), []string{"go"}, jobs, WithCandidateLevel("senior"))
	require.NoError(t, err)
	junior, err := p.ScoreAndRankJobs(context.Background(), []string{"go"}, jobs, WithCandidateLevel("junior"))
	require.NoError(t, err)

	assert.Greater(t, senior[0].RelevanceScore, junior[0].RelevanceScore)
	assert.Equal(t, 100.0, senior[0].Breakdown.Level)
}

func TestComputeSkillGaps(t *testing.T) {
	p := newTestPipeline(t, nil)
	skills := []string{"React", "JavaScript"}

	ranked, err := p.ScoreAndRankJobs(context.Background(), skills, sampleJobs())
	require.NoError(t, err)

	items, err := p.ComputeSkillGaps(skills, ranked, 3)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, item := range items {
		assert.NotEqual(t, "react", item.Skill)
		assert.NotEqual(t, "javascript", item.Skill)
	}
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].Importance, items[i].Importance)
	}
}

func TestComputeSkillGaps_InvalidTopN(t *testing.T) {
	p := newTestPipeline(t, nil)

	_, err := p.ComputeSkillGaps(nil, nil, 0)
	var invalid *gaps.InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)
}

func TestAnalyze(t *testing.T) {
	p := newTestPipeline(t, nil)

	resp, err := p.Analyze(context.Background(), types.AnalyzeRequest{
		CandidateSkills: []string{"React", "JavaScript"},
		Jobs:            sampleJobs(),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Jobs, 3)
	assert.NotEmpty(t, resp.Gaps)
	assert.LessOrEqual(t, len(resp.Gaps), gaps.DefaultTopN)

	one := 1
	resp, err = p.Analyze(context.Background(), types.AnalyzeRequest{
		CandidateSkills: []string{"React"},
		Jobs:            sampleJobs(),
		TopN:            &one,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Gaps, 1)
}

func TestAnalyze_InvalidTopNSkipsScoring(t *testing.T) {
	p := newTestPipeline(t, nil)
	zero := 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Analyze(ctx, types.AnalyzeRequest{Jobs: sampleJobs(), TopN: &zero})

	var invalid *gaps.InvalidArgumentError
	assert.ErrorAs(t, err, &invalid)
}

func TestNew_LogsEffectiveThreshold(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	core, logs := observer.New(zapcore.DebugLevel)

	opts := DefaultOptions()
	opts.FuzzyThreshold = 0
	_, err = New(cat, opts, WithLogger(zap.New(core)))
	require.NoError(t, err)

	entries := logs.FilterMessage("pipeline ready").All()
	require.Len(t, entries, 1)
	assert.Equal(t, 0.85, entries[0].ContextMap()["fuzzy_threshold"])
}

func TestCatalogVersion(t *testing.T) {
	p := newTestPipeline(t, nil)
	assert.Equal(t, "2024.2", p.CatalogVersion())
}
