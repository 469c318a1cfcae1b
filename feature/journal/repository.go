package journal

import (
	"context"
	"errors"
	"fmt"

	"journal-loader/core/reconcile"
	"journal-loader/feature/journal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultBatchSize is the number of rows read per query while streaming.
const DefaultBatchSize = 500

// Repository implements reconcile.Repository over GORM.
type Repository struct {
	db        *gorm.DB
	batchSize int
}

// NewRepository creates a repository. A batchSize <= 0 uses DefaultBatchSize.
func NewRepository(db *gorm.DB, batchSize int) *Repository {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Repository{db: db, batchSize: batchSize}
}

// Migrate creates or updates the journals table.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&models.Journal{}); err != nil {
		return fmt.Errorf("failed to migrate journals table: %w", err)
	}
	return nil
}

// StreamAll reads the table in primary key order, one batch at a time.
func (r *Repository) StreamAll(ctx context.Context, fn func(reconcile.Journal) error) error {
	var batch []models.Journal
	result := r.db.WithContext(ctx).FindInBatches(&batch, r.batchSize, func(tx *gorm.DB, _ int) error {
		for _, row := range batch {
			if err := fn(row.ToDomain()); err != nil {
				return err
			}
		}
		return nil
	})
	if result.Error != nil {
		return fmt.Errorf("failed to stream journals: %w", result.Error)
	}
	return nil
}

// Create inserts a journal under a newly generated UUID and returns it.
func (r *Repository) Create(ctx context.Context, journal reconcile.Journal) (string, error) {
	row := models.FromDomain(journal)
	row.ID = uuid.NewString()

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("failed to create journal %q: %w", journal.Name, err)
	}
	return row.ID, nil
}

// Get fetches a journal by id. A missing id is an error.
func (r *Repository) Get(ctx context.Context, id string) (reconcile.Journal, error) {
	var row models.Journal
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reconcile.Journal{}, fmt.Errorf("journal %s not found: %w", id, err)
	}
	if err != nil {
		return reconcile.Journal{}, fmt.Errorf("failed to get journal %s: %w", id, err)
	}
	return row.ToDomain(), nil
}

// Update overwrites every mutable column of an existing journal.
func (r *Repository) Update(ctx context.Context, journal reconcile.Journal) error {
	row := models.FromDomain(journal)

	result := r.db.WithContext(ctx).
		Model(&models.Journal{ID: journal.ID}).
		Select("journal_name", "nlmta", "issns", "pmc_participation").
		Updates(&row)
	if result.Error != nil {
		return fmt.Errorf("failed to update journal %s: %w", journal.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("journal %s not found: %w", journal.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// Count returns the number of stored journals.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Journal{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count journals: %w", err)
	}
	return n, nil
}
