package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skillmatch/internal/cache"
	"github.com/jonathan/skillmatch/internal/db"
	"github.com/jonathan/skillmatch/internal/server"
	"github.com/jonathan/skillmatch/internal/server/ratelimit"
)

var (
	servePort    int
	serveMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the scoring, skill-gap and analyze endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Create the job_postings table before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()
	if servePort != 0 {
		a.cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := server.Dependencies{Pipeline: a.pipeline, Logger: a.logger}

	if url := a.cfg.Database.URL; url != "" {
		database, err := db.Connect(ctx, url)
		if err != nil {
			return err
		}
		defer database.Close()
		if serveMigrate {
			if err := database.Migrate(ctx); err != nil {
				return err
			}
		}
		deps.Postings = database
	}

	if url := a.cfg.Cache.RedisURL; url != "" {
		results, err := cache.NewResultCache(url, a.cfg.Cache.TTL)
		if err != nil {
			return fmt.Errorf("failed to create result cache: %w", err)
		}
		defer func() { _ = results.Close() }()
		// The server bypasses a failing cache, so an unreachable Redis is not fatal.
		if err := results.Ping(ctx); err != nil {
			a.logger.Warn("result cache unavailable at startup", zap.Error(err))
		}
		deps.Results = results
	}

	srv := server.New(server.Config{
		Port:           a.cfg.Server.Port,
		ReadTimeout:    a.cfg.Server.ReadTimeout,
		WriteTimeout:   a.cfg.Server.WriteTimeout,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		DefaultTopN:    a.cfg.Gaps.DefaultTopN,
		RateLimit: ratelimit.Settings{
			Enabled:           a.cfg.RateLimit.Enabled,
			RequestsPerSecond: a.cfg.RateLimit.RequestsPerSecond,
			Burst:             a.cfg.RateLimit.Burst,
			Whitelist:         a.cfg.RateLimit.Whitelist,
		},
	}, deps)

	return srv.Start(ctx)
}
