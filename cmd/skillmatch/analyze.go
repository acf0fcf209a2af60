package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/jonathan/skillmatch/internal/types"
	schemadocs "github.com/jonathan/skillmatch/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score, rank and compute skill gaps in one pass",
	Long:  "Reads an analyze request (candidate_skills, candidate_level, jobs, top_n) and writes the ranked jobs together with their skill-gap list.",
	RunE:  runAnalyze,
}

var (
	analyzeInput  string
	analyzeOutput string
	analyzeTopN   int
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "in", "i", "", "Path to input analyze request JSON file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Path to output analysis JSON file (required)")
	analyzeCmd.Flags().IntVar(&analyzeTopN, "top-n", 0, "Maximum number of gaps, overrides top_n (default gaps.default_top_n)")
	markRequired(analyzeCmd, "in", "out")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	var req types.AnalyzeRequest
	if err := readJSON(analyzeInput, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid analyze request: %w", err)
	}
	topN := resolveTopN(cmd, "top-n", analyzeTopN, req.TopN, a.cfg.Gaps.DefaultTopN)
	req.TopN = &topN

	resp, err := a.pipeline.Analyze(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to analyze jobs: %w", err)
	}

	if err := writeJSON(analyzeOutput, resp); err != nil {
		return err
	}
	// The combined document has no schema of its own; check each half.
	if err := schemas.ValidateValue(schemadocs.ScoredJobs, types.ScoreJobsResponse{Jobs: resp.Jobs}); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
	}
	if err := schemas.ValidateValue(schemadocs.SkillGaps, types.SkillGapsResponse{Gaps: resp.Gaps}); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
	}

	if p := printer(cmd); p != nil {
		p.PrintRankedJobs(resp.Jobs)
		p.PrintSkillGaps(resp.Gaps)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully analyzed %d jobs (%d skill gaps) to %s\n", len(resp.Jobs), len(resp.Gaps), analyzeOutput)
	return nil
}
