package cmd

import (
	"strconv"

	"journal-loader/core/reconcile"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var outcomeLabels = map[reconcile.Outcome]string{
	reconcile.OutcomeCreated:                 "Created",
	reconcile.OutcomeUpdated:                 "Updated",
	reconcile.OutcomeOK:                      "Unchanged",
	reconcile.OutcomeSkippedInsufficientKeys: "Skipped (no ISSN or NLMTA)",
	reconcile.OutcomeSkippedDuplicate:        "Skipped (duplicate)",
	reconcile.OutcomeErrored:                 "Errors",
}

// renderSummaryTable renders the run counters as a table.
func renderSummaryTable(s reconcile.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	title := "Journal sync"
	if s.DryRun {
		title = "Journal sync (dry run, nothing written)"
	}
	tw.SetTitle(title)
	tw.AppendHeader(table.Row{"Outcome", "Journals"})

	for _, o := range reconcile.Outcomes {
		tw.AppendRow(table.Row{outcomeLabels[o], strconv.Itoa(s.Count(o))})
	}
	tw.AppendFooter(table.Row{"Total", strconv.Itoa(s.Total())})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})

	return tw.Render()
}
