package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"journal-loader/core/config"
	"journal-loader/core/database"
	"journal-loader/core/logger"
	"journal-loader/core/storage"
	"journal-loader/feature/journal"
	"journal-loader/feature/journal/sources"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	medlineLocators []string
	pmcLocators     []string
	dryRunSync      bool
)

// syncCmd loads journal feeds into the database.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Load Medline and PMC journal lists into the database",
	Long: `Sync journal metadata from the NLM Medline list and the NIH PMC type A CSV.

Each record is matched against the stored journals by ISSN, NLM title
abbreviation and title. Unmatched records are created, matched ones are
updated, and records resolving to a journal already seen in this run are
skipped. Medline sources are processed before PMC sources.

Locators are local paths or s3://bucket/object URLs.

Examples:
  # Load the Medline list
  sync --medline J_Medline.txt

  # Preview a PMC load without writing
  sync --pmc s3://feeds/jlist.csv --dry-run

  # Both, in one run
  sync --medline J_Medline.txt --pmc jlist.csv`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringSliceVar(&medlineLocators, "medline", nil, "Medline file locators (repeatable or comma-separated)")
	syncCmd.Flags().StringSliceVar(&pmcLocators, "pmc", nil, "NIH PMC type A CSV locators (repeatable or comma-separated)")
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Simulate the sync without writing")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	req := buildSyncRequest(cmd, cfg)

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := journal.NewRepository(db, journal.DefaultBatchSize)
	if err := repo.Migrate(); err != nil {
		return err
	}

	// Storage is only needed for s3:// locators
	var client storage.Client
	if needsStorage(req) {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc := journal.NewService(repo, client, l, nil)
	summary, err := svc.Run(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderSummaryTable(*summary))
	if total, err := repo.Count(ctx); err != nil {
		l.Warn("Failed to count journals", zap.Error(err))
	} else {
		l.Info("Journals stored", zap.Int64("total", total))
	}
	if summary.Errored > 0 {
		l.Warn("Some journals could not be written", zap.Int("errors", summary.Errored))
	}
	return nil
}

// buildSyncRequest merges command-line flags over the configured defaults.
func buildSyncRequest(cmd *cobra.Command, cfg *config.Config) journal.Request {
	req := journal.Request{
		Medline: medlineLocators,
		PMC:     pmcLocators,
		DryRun:  cfg.Sync.DryRun,
	}
	if len(req.Medline) == 0 && len(req.PMC) == 0 {
		req.Medline = cfg.Sync.MedlineLocators()
		req.PMC = cfg.Sync.PMCLocators()
	}
	if cmd.Flags().Changed("dry-run") {
		req.DryRun = dryRunSync
	}
	return req
}

func needsStorage(req journal.Request) bool {
	for _, loc := range append(append([]string{}, req.Medline...), req.PMC...) {
		if sources.IsRemote(loc) {
			return true
		}
	}
	return false
}
