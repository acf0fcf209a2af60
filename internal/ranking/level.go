package ranking

import (
	"math"

	"github.com/jonathan/skillmatch/internal/catalog"
	"github.com/jonathan/skillmatch/internal/types"
)

// neutralLevelScore is used when either side's seniority is unknown.
const neutralLevelScore = 50.0

// levelStepPenalty is subtracted per seniority step between candidate and job.
const levelStepPenalty = 30.0

// LevelSignal scores seniority alignment between a candidate and a job in [0, 100].
type LevelSignal interface {
	Score(candidateLevel string, job types.JobPostingInput) float64
}

// NeutralLevel always returns 50.
type NeutralLevel struct{}

// Score implements LevelSignal.
func (NeutralLevel) Score(string, types.JobPostingInput) float64 {
	return neutralLevelScore
}

// SeniorityLevel compares the catalog seniority rank of the candidate's level
// with the rank found in the job title.
type SeniorityLevel struct {
	catalog *catalog.Catalog
}

// NewSeniorityLevel creates a SeniorityLevel signal.
func NewSeniorityLevel(cat *catalog.Catalog) *SeniorityLevel {
	return &SeniorityLevel{catalog: cat}
}

// Score implements LevelSignal.
func (s *SeniorityLevel) Score(candidateLevel string, job types.JobPostingInput) float64 {
	candidateRank, ok := s.catalog.SeniorityRank(candidateLevel)
	if !ok {
		return neutralLevelScore
	}
	jobRank, ok := s.catalog.SeniorityRank(job.Title)
	if !ok {
		return neutralLevelScore
	}
	diff := math.Abs(float64(candidateRank - jobRank))
	return math.Max(0, 100-levelStepPenalty*diff)
}
