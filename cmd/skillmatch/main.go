// Package main provides the skillmatch CLI and HTTP API server.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/skillmatch/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "skillmatch",
	Short:        "Skill matching, job ranking and skill-gap analysis",
	Long:         "skillmatch scores job postings against a candidate's skills, ranks them by relevance and aggregates the skills missing across the ranked jobs into a prioritized gap list.",
	SilenceUsage: true,
}

var (
	configPath string
	logLevel   string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default skillmatch.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print a summary of ranked jobs and skill gaps")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, formatError(err))
		os.Exit(1)
	}
}

// formatError renders config problems one per line.
func formatError(err error) string {
	var ve *config.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Sprintf("Error: %v\n", err)
	}
	var sb strings.Builder
	sb.WriteString("Error: invalid configuration:\n")
	for _, problem := range ve.Problems {
		sb.WriteString("  - " + problem + "\n")
	}
	return sb.String()
}
