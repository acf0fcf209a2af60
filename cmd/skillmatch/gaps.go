package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/schemas"
	"github.com/jonathan/skillmatch/internal/types"
	schemadocs "github.com/jonathan/skillmatch/schemas"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Compute the prioritized skill-gap list of ranked jobs",
	Long:  "Reads a skill-gap request (candidate_skills, ranked jobs with missing_skills, top_n) and writes the gap list ordered by importance.",
	RunE:  runGaps,
}

var (
	gapsInput  string
	gapsOutput string
	gapsTopN   int
)

func init() {
	gapsCmd.Flags().StringVarP(&gapsInput, "in", "i", "", "Path to input skill-gap request JSON file (required)")
	gapsCmd.Flags().StringVarP(&gapsOutput, "out", "o", "", "Path to output skill gaps JSON file (required)")
	gapsCmd.Flags().IntVar(&gapsTopN, "top-n", 0, "Maximum number of gaps, overrides top_n (default gaps.default_top_n)")
	markRequired(gapsCmd, "in", "out")

	rootCmd.AddCommand(gapsCmd)
}

func runGaps(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	var req types.SkillGapsRequest
	if err := readJSON(gapsInput, &req); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid skill-gap request: %w", err)
	}

	topN := resolveTopN(cmd, "top-n", gapsTopN, req.TopN, a.cfg.Gaps.DefaultTopN)
	items, err := a.pipeline.ComputeSkillGaps(req.CandidateSkills, req.ScoredJobs(), topN)
	if err != nil {
		return fmt.Errorf("failed to compute skill gaps: %w", err)
	}

	if err := writeJSON(gapsOutput, types.SkillGapsResponse{Gaps: items}); err != nil {
		return err
	}
	if err := schemas.ValidateFile(schemadocs.SkillGaps, gapsOutput); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
	}

	if p := printer(cmd); p != nil {
		p.PrintSkillGaps(items)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote %d skill gaps to %s\n", len(items), gapsOutput)
	return nil
}

// resolveTopN prefers an explicitly set flag, then the request, then the configured default.
func resolveTopN(cmd *cobra.Command, flag string, flagValue int, requested *int, fallback int) int {
	if cmd.Flags().Changed(flag) {
		return flagValue
	}
	if requested != nil {
		return *requested
	}
	return fallback
}
