package cmd

import (
	"context"
	"fmt"
	"strings"

	"journal-loader/core/config"
	"journal-loader/core/database"
	"journal-loader/core/reconcile"
	"journal-loader/feature/journal"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	// Flags for the match command
	matchName  string
	matchNLMTA string
	matchISSNs []string
)

// matchCmd resolves one set of keys against the stored journals.
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Show which stored journal a record would resolve to",
	Long: `Loads the match index from the database and resolves the given keys
exactly as a sync would, without writing anything.

Examples:
  match --name "Journal One" --issn Print:0000-0001
  match --nlmta "J One" --issn 0000-0001 --issn Online:0000-0002`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchName, "name", "", "Journal title")
	matchCmd.Flags().StringVar(&matchNLMTA, "nlmta", "", "NLM title abbreviation")
	matchCmd.Flags().StringSliceVar(&matchISSNs, "issn", nil, "Typed ISSNs such as Print:0000-0001")

	RootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rec := reconcile.Record{Name: matchName, NLMTA: matchNLMTA, ISSNs: matchISSNs}
	if !rec.HasKeys() {
		return fmt.Errorf("%w: --nlmta or --issn is required", reconcile.ErrInsufficientKeys)
	}

	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := journal.NewRepository(db, journal.DefaultBatchSize)
	idx, err := reconcile.LoadMatchIndex(ctx, repo)
	if err != nil {
		return err
	}

	m := idx.Find(rec.NLMTA, rec.Name, rec.ISSNs)
	fmt.Fprintln(cmd.OutOrStdout(), renderMatch(ctx, repo, idx.Len(), m))
	return nil
}

func renderMatch(ctx context.Context, repo reconcile.Repository, indexed int, m reconcile.Match) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(fmt.Sprintf("Match against %d journals", indexed))

	tw.AppendRow(table.Row{"Status", m.Status.String()})
	if m.Status != reconcile.Matched {
		return tw.Render()
	}

	tw.AppendRow(table.Row{"ID", m.ID})
	j, err := repo.Get(ctx, m.ID)
	if err != nil {
		tw.AppendRow(table.Row{"Error", err.Error()})
		return tw.Render()
	}
	tw.AppendRow(table.Row{"Name", j.Name})
	tw.AppendRow(table.Row{"NLMTA", j.NLMTA})
	tw.AppendRow(table.Row{"ISSNs", strings.Join(j.ISSNs, ", ")})
	tw.AppendRow(table.Row{"PMC participation", string(j.PMCParticipation)})
	return tw.Render()
}
