package cmd

import (
	"context"
	"testing"

	"journal-loader/core/database"
	"journal-loader/core/reconcile"
	"journal-loader/feature/journal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMatch(t *testing.T) {
	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	repo := journal.NewRepository(db, 0)
	require.NoError(t, repo.Migrate())

	id, err := repo.Create(ctx, reconcile.Journal{Record: reconcile.Record{
		Name:  "Journal One",
		NLMTA: "J One",
		ISSNs: []string{"Print:0000-0001"},
	}})
	require.NoError(t, err)

	idx, err := reconcile.LoadMatchIndex(ctx, repo)
	require.NoError(t, err)

	m := idx.Find("J One", "Journal One", nil)
	require.Equal(t, reconcile.Matched, m.Status)

	out := renderMatch(ctx, repo, idx.Len(), m)
	assert.Contains(t, out, "Match against 1 journals")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Print:0000-0001")

	out = renderMatch(ctx, repo, idx.Len(), idx.Find("J One", "Journal One", nil))
	assert.Contains(t, out, reconcile.Duplicate.String())
	assert.NotContains(t, out, id)
}
