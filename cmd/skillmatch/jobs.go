package main

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/db"
	"github.com/jonathan/skillmatch/internal/types"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage stored job postings",
}

var jobsImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import job postings from a JSON array",
	RunE:  runJobsImport,
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored job postings as JSON",
	RunE:  runJobsList,
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete stored job postings by id",
	RunE:  runJobsDelete,
}

var (
	jobsDeleteIDs   []string
	jobsImportInput string
	jobsListSource  string
	jobsListLimit   int
)

func init() {
	jobsImportCmd.Flags().StringVarP(&jobsImportInput, "in", "i", "", "Path to JSON array of job postings (required)")
	markRequired(jobsImportCmd, "in")

	jobsListCmd.Flags().StringVar(&jobsListSource, "source", "", "Only postings from this source")
	jobsListCmd.Flags().IntVar(&jobsListLimit, "limit", db.DefaultListLimit, "Maximum number of postings")

	jobsDeleteCmd.Flags().StringSliceVar(&jobsDeleteIDs, "id", nil, "Posting id to delete (repeatable, required)")
	markRequired(jobsDeleteCmd, "id")

	jobsCmd.AddCommand(jobsImportCmd, jobsListCmd, jobsDeleteCmd)
	rootCmd.AddCommand(jobsCmd)
}

func connectDB(cmd *cobra.Command) (*db.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database.url is not configured")
	}
	return db.Connect(cmd.Context(), cfg.Database.URL)
}

func runJobsImport(cmd *cobra.Command, _ []string) error {
	var postings []types.JobPostingInput
	if err := readJSON(jobsImportInput, &postings); err != nil {
		return err
	}
	validate := validator.New()
	for i := range postings {
		if err := validate.Struct(&postings[i]); err != nil {
			return fmt.Errorf("invalid job posting at index %d: %w", i, err)
		}
	}

	database, err := connectDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(cmd.Context()); err != nil {
		return err
	}
	if err := database.UpsertJobPostings(cmd.Context(), postings); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Successfully imported %d job postings\n", len(postings))
	return nil
}

func runJobsList(cmd *cobra.Command, _ []string) error {
	database, err := connectDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	postings, err := database.ListJobPostings(cmd.Context(), jobsListSource, jobsListLimit)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(postings)
}

func runJobsDelete(cmd *cobra.Command, _ []string) error {
	database, err := connectDB(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.DeleteJobPostings(cmd.Context(), jobsDeleteIDs); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted job postings: %v\n", jobsDeleteIDs)
	return nil
}
