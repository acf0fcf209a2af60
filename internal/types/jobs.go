// Package types provides type definitions for structured data used throughout the skillmatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// JobPostingInput represents one job opening supplied by an external source.
type JobPostingInput struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	URL         string `json:"url,omitempty" validate:"omitempty,url"`
	Source      string `json:"source"`
	Description string `json:"description,omitempty"`
	// SkillsRequired may be empty, in which case skills are extracted from the description.
	SkillsRequired []string   `json:"skills_required,omitempty"`
	PostedAt       *time.Time `json:"posted_at,omitempty"`
}

// ScoredJob is a job posting with its relevance against a candidate.
type ScoredJob struct {
	JobPostingInput
	// RelevanceScore is 0-100 before ranking boosts and is never clamped.
	RelevanceScore float64  `json:"relevance_score"`
	MatchedSkills  []string `json:"matched_skills"`
	// MatchCount is exact matches plus 0.8 per fuzzy match.
	MatchCount    float64         `json:"match_count"`
	MissingSkills []string        `json:"missing_skills"`
	Boost         float64         `json:"boost,omitempty"`
	Breakdown     *ScoreBreakdown `json:"score_breakdown,omitempty"`
}

// ScoreBreakdown holds the unweighted components of a relevance score.
type ScoreBreakdown struct {
	Match        float64 `json:"match"`
	Completeness float64 `json:"completeness"`
	Variety      float64 `json:"variety"`
	Level        float64 `json:"level"`
}

// Priority ranks how urgently a missing skill should be learned.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// SkillGapItem is one entry of the prioritized gap list.
type SkillGapItem struct {
	Skill      string   `json:"skill"`
	Priority   Priority `json:"priority"`
	Reason     string   `json:"reason"`
	Frequency  float64  `json:"frequency"`
	Importance float64  `json:"importance"`
}
