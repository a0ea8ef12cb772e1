package returnbox

import (
	"bookdrop/core/mqtt"
	"bookdrop/feature/library"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service   *Service
	handler   *Handler
	transport *mqtt.Client
	hasDB     bool
}

// NewFeature creates the return box feature. The transport client is used
// both to subscribe the ingest handlers and to publish unlock commands.
func NewFeature(db *gorm.DB, transport *mqtt.Client, cfg mqtt.Config, policy library.Config, logger *zap.Logger) *Feature {
	svc := NewService(db, transport, cfg, policy, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h, transport: transport, hasDB: db != nil}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "returnbox"
}

// IsEnabled checks if the feature is enabled. The engine is useless without
// a database to finalize into.
func (f *Feature) IsEnabled() bool {
	return f.hasDB
}

// Load subscribes the ingest handlers and registers the feature's routes.
// Subscriptions must be registered before the transport connects so they are
// applied on every (re)connection.
func (f *Feature) Load(app fiber.Router) error {
	f.transport.Subscribe(ScanTopicFilter, 1, f.service.HandleMessage)
	f.transport.Subscribe(CommandTopicFilter, 1, f.service.HandleMessage)
	f.handler.RegisterRoutes(app)
	return nil
}
