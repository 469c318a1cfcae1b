package journal

import (
	"journal-loader/core/metrics"
	"journal-loader/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates the journal feature over a migrated database. The
// feature is disabled when db is nil. baseDir confines local locators sent
// over HTTP.
func NewFeature(db *gorm.DB, client storage.Client, logger *zap.Logger, m *metrics.Metrics, baseDir string) *Feature {
	svc := NewService(NewRepository(db, DefaultBatchSize), client, logger, m)
	return &Feature{service: svc, handler: NewHandler(svc, baseDir), enabled: db != nil}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "journal"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's sync service.
func (f *Feature) Service() *Service {
	return f.service
}
