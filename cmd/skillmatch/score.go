package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/db"
	"github.com/jonathan/skillmatch/internal/pipeline"
	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/jonathan/skillmatch/internal/types"
	schemadocs "github.com/jonathan/skillmatch/schemas"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score and rank job postings against a candidate",
	Long:  "Reads a score request (candidate_skills, candidate_level, jobs, posting_ids) and writes the jobs ranked by relevance, best first.",
	RunE:  runScore,
}

var (
	scoreInput  string
	scoreOutput string
	scoreLevel  string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "in", "i", "", "Path to input score request JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to output scored jobs JSON file (required)")
	scoreCmd.Flags().StringVar(&scoreLevel, "level", "", "Candidate seniority, overrides candidate_level")
	markRequired(scoreCmd, "in", "out")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	// 1. Load request
	var req types.ScoreJobsRequest
	if err := readJSON(scoreInput, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid score request: %w", err)
	}
	if scoreLevel != "" {
		req.CandidateLevel = scoreLevel
	}

	// 2. Resolve stored postings
	jobs := req.Jobs
	if len(req.PostingIDs) > 0 {
		if a.cfg.Database.URL == "" {
			return fmt.Errorf("posting_ids require database.url to be configured")
		}
		database, err := db.Connect(cmd.Context(), a.cfg.Database.URL)
		if err != nil {
			return err
		}
		defer database.Close()

		stored, err := database.GetJobPostingsByIDs(cmd.Context(), req.PostingIDs)
		if err != nil {
			return err
		}
		jobs = append(jobs, stored...)
	}

	// 3. Score and rank
	ranked, err := a.pipeline.ScoreAndRankJobs(cmd.Context(), req.CandidateSkills, jobs, pipeline.WithCandidateLevel(req.CandidateLevel))
	if err != nil {
		return fmt.Errorf("failed to score jobs: %w", err)
	}

	// 4. Write and check output (validation is non-fatal)
	if err := writeJSON(scoreOutput, types.ScoreJobsResponse{Jobs: ranked}); err != nil {
		return err
	}
	if err := schemas.ValidateFile(schemadocs.ScoredJobs, scoreOutput); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
	}

	if p := printer(cmd); p != nil {
		p.PrintRankedJobs(ranked)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully scored %d jobs to %s\n", len(ranked), scoreOutput)
	return nil
}
