package journal

import (
	"context"
	"errors"
	"testing"

	"journal-loader/core/database"
	"journal-loader/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupTestRepository opens a migrated in-memory SQLite repository.
func setupTestRepository(t *testing.T, batchSize int) *Repository {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	repo := NewRepository(db, batchSize)
	require.NoError(t, repo.Migrate())
	return repo
}

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t, 0)

	id, err := repo.Create(ctx, reconcile.Journal{Record: reconcile.Record{
		Name:  "Journal One",
		NLMTA: "J One",
		ISSNs: []string{"Print:0000-0001", "Online:0000-0002"},
	}})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Journal One", got.Name)
	assert.Equal(t, []string{"Print:0000-0001", "Online:0000-0002"}, got.ISSNs)
	assert.Equal(t, reconcile.ParticipationNone, got.PMCParticipation)

	got.PMCParticipation = reconcile.ParticipationA
	got.ISSNs = []string{"Print:0000-0009"}
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, reconcile.ParticipationA, again.PMCParticipation)
	assert.Equal(t, []string{"Print:0000-0009"}, again.ISSNs)

	// Participation can be cleared back to the zero value.
	again.PMCParticipation = reconcile.ParticipationNone
	require.NoError(t, repo.Update(ctx, again))
	cleared, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, reconcile.ParticipationNone, cleared.PMCParticipation)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRepository_Missing(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t, 0)

	_, err := repo.Get(ctx, "does-not-exist")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Update(ctx, reconcile.Journal{ID: "does-not-exist", Record: reconcile.Record{Name: "x"}})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_StreamAll(t *testing.T) {
	ctx := context.Background()
	repo := setupTestRepository(t, 2)

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		_, err := repo.Create(ctx, reconcile.Journal{Record: reconcile.Record{Name: name, NLMTA: name}})
		require.NoError(t, err)
	}

	t.Run("Visits every journal across batches", func(t *testing.T) {
		seen := make(map[string]bool)
		err := repo.StreamAll(ctx, func(j reconcile.Journal) error {
			seen[j.Name] = true
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, seen, 5)
	})

	t.Run("Callback error stops iteration", func(t *testing.T) {
		stop := errors.New("stop")
		calls := 0
		err := repo.StreamAll(ctx, func(j reconcile.Journal) error {
			calls++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, calls)
	})

	t.Run("Feeds the match index", func(t *testing.T) {
		idx, err := reconcile.LoadMatchIndex(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, 5, idx.Len())
	})
}

func TestRepository_DatabaseErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("Stream query fails", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		sqlMock.ExpectQuery("SELECT \\* FROM `journals`").WillReturnError(errors.New("connection reset"))

		err := NewRepository(db, 10).StreamAll(ctx, func(reconcile.Journal) error { return nil })
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("Get query fails", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		sqlMock.ExpectQuery("SELECT \\* FROM `journals`").WillReturnError(errors.New("connection reset"))

		_, err := NewRepository(db, 10).Get(ctx, "id")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("Insert fails", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec("INSERT INTO `journals`").WillReturnError(errors.New("duplicate entry"))
		sqlMock.ExpectRollback()

		id, err := NewRepository(db, 10).Create(ctx, reconcile.Journal{Record: reconcile.Record{Name: "x"}})
		assert.Error(t, err)
		assert.Empty(t, id)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Update fails", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec("UPDATE `journals`").WillReturnError(errors.New("lock wait timeout"))
		sqlMock.ExpectRollback()

		err := NewRepository(db, 10).Update(ctx, reconcile.Journal{ID: "id", Record: reconcile.Record{Name: "x"}})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "lock wait timeout")
	})
}
