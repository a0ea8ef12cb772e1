package catalog

import (
	"bookdrop/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	hasDB   bool
}

// NewFeature creates the catalog feature.
func NewFeature(db *gorm.DB, store storage.Client, storageCfg storage.Config, logger *zap.Logger) *Feature {
	svc := NewService(db, logger)
	covers := NewCovers(store, storageCfg, logger)
	return &Feature{handler: NewHandler(svc, covers, logger), hasDB: db != nil}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.hasDB
}

// Load registers the feature's routes and prepares the cover image bucket.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Covers exposes the cover store so startup can ensure the bucket exists.
func (f *Feature) Covers() *Covers {
	return f.handler.covers
}
