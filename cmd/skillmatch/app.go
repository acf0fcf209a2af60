package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/catalog"
	"github.com/jonathan/skillmatch/internal/config"
	"github.com/jonathan/skillmatch/internal/logging"
	"github.com/jonathan/skillmatch/internal/observability"
	"github.com/jonathan/skillmatch/internal/pipeline"
)

// app bundles what every command needs.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	catalog  *catalog.Catalog
	pipeline *pipeline.Pipeline
}

func loadApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}

	p, err := pipeline.New(cat, pipelineOptions(cfg), pipeline.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	logger.Debug("loaded configuration",
		zap.String("catalog_version", cat.Version()),
		zap.Float64("fuzzy_threshold", cfg.Scoring.FuzzyThreshold),
	)
	return &app{cfg: cfg, logger: logger, catalog: cat, pipeline: p}, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func pipelineOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		FuzzyThreshold:      cfg.Scoring.FuzzyThreshold,
		ParallelThreshold:   cfg.Scoring.ParallelThreshold,
		Workers:             cfg.Scoring.Workers,
		SimilarityCacheSize: cfg.Scoring.SimilarityCacheSize,
		RecencyWindow:       cfg.Ranking.RecencyWindow,
	}
}

// readJSON decodes the file at path into v.
func readJSON(path string, v any) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("failed to unmarshal input JSON: %w", err)
	}
	return nil
}

// writeJSON writes v as indented JSON, creating the output directory if needed.
func writeJSON(path string, v any) error {
	jsonOutput, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// printer returns a verbose-mode printer, or nil when --verbose is off.
func printer(cmd *cobra.Command) *observability.Printer {
	if !verbose {
		return nil
	}
	return observability.NewPrinter(cmd.OutOrStdout())
}

// markRequired marks flags as required or panics during init.
func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}
