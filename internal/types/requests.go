package types

import "github.com/go-playground/validator/v10"

// DefaultGapScore is the relevance assumed for a job submitted without one.
const DefaultGapScore = 50.0

// ScoreJobsRequest asks for a batch of postings to be scored and ranked.
// Postings come from Jobs, from stored postings named by PostingIDs, or both.
type ScoreJobsRequest struct {
	CandidateSkills []string          `json:"candidate_skills" validate:"max=500"`
	CandidateLevel  string            `json:"candidate_level,omitempty"`
	Jobs            []JobPostingInput `json:"jobs,omitempty" validate:"max=5000,dive"`
	PostingIDs      []string          `json:"posting_ids,omitempty" validate:"max=5000,dive,required"`
}

// ScoreJobsResponse carries ranked jobs, best first.
type ScoreJobsResponse struct {
	Jobs []ScoredJob `json:"jobs"`
}

// GapJobInput is a scored job as accepted by the gap endpoint. RelevanceScore
// is optional there.
type GapJobInput struct {
	JobPostingInput
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
	MatchedSkills  []string `json:"matched_skills,omitempty"`
	MatchCount     float64  `json:"match_count,omitempty"`
	MissingSkills  []string `json:"missing_skills"`
}

// ToScoredJob fills a missing relevance score with DefaultGapScore.
func (g GapJobInput) ToScoredJob() ScoredJob {
	score := DefaultGapScore
	if g.RelevanceScore != nil {
		score = *g.RelevanceScore
	}
	return ScoredJob{
		JobPostingInput: g.JobPostingInput,
		RelevanceScore:  score,
		MatchedSkills:   g.MatchedSkills,
		MatchCount:      g.MatchCount,
		MissingSkills:   g.MissingSkills,
	}
}

// SkillGapsRequest asks for the gap list of an already ranked batch.
type SkillGapsRequest struct {
	CandidateSkills []string      `json:"candidate_skills" validate:"max=500"`
	Jobs            []GapJobInput `json:"jobs" validate:"max=5000,dive"`
	TopN            *int          `json:"top_n,omitempty"`
}

// ScoredJobs converts the request jobs in order.
func (r *SkillGapsRequest) ScoredJobs() []ScoredJob {
	out := make([]ScoredJob, 0, len(r.Jobs))
	for _, j := range r.Jobs {
		out = append(out, j.ToScoredJob())
	}
	return out
}

// SkillGapsResponse carries the prioritized gap list.
type SkillGapsResponse struct {
	Gaps []SkillGapItem `json:"gaps"`
}

// AnalyzeRequest scores, ranks and computes gaps in one call.
type AnalyzeRequest struct {
	CandidateSkills []string          `json:"candidate_skills" validate:"max=500"`
	CandidateLevel  string            `json:"candidate_level,omitempty"`
	Jobs            []JobPostingInput `json:"jobs" validate:"max=5000,dive"`
	TopN            *int              `json:"top_n,omitempty"`
}

// AnalyzeResponse combines ranked jobs and their gap list.
type AnalyzeResponse struct {
	Jobs []ScoredJob    `json:"jobs"`
	Gaps []SkillGapItem `json:"gaps"`
}

// Validate validates the ScoreJobsRequest using the validator.
func (r *ScoreJobsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SkillGapsRequest using the validator.
func (r *SkillGapsRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
