package loans

import (
	"bookdrop/feature/library"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	hasDB   bool
}

// NewFeature creates the loans feature.
func NewFeature(db *gorm.DB, policy library.Config, logger *zap.Logger) *Feature {
	svc := NewService(db, policy, logger)
	return &Feature{handler: NewHandler(svc, logger), hasDB: db != nil}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "loans"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.hasDB
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
