package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookdrop/core/config"
	"bookdrop/core/database"
	"bookdrop/core/loader"
	"bookdrop/core/logger"
	"bookdrop/core/middleware/auth"
	"bookdrop/core/middleware/rayid"
	"bookdrop/core/mqtt"
	"bookdrop/core/storage"
	"bookdrop/feature/catalog"
	"bookdrop/feature/library/models"
	"bookdrop/feature/loans"
	"bookdrop/feature/returnbox"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "bookdrop/docs/swagger"
)

// @title Book Drop API
// @version 1.0
// @description Return box session reconciliation and library catalog API.
// @host localhost:3000
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the book drop server",
	Long:  `Starts the MQTT ingest, the HTTP server and all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(models.All()...); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		// 4. Initialize Storage (Optional)
		var store storage.Client
		if cfg.Storage.Enabled {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}

		// 5. Initialize MQTT Transport
		transport := mqtt.NewClient(cfg.Mqtt, logg)

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 7. Register Features
		mgr := loader.NewManager()
		mgr.Register(returnbox.NewFeature(db, transport, cfg.Mqtt, cfg.Library, logg))
		catalogFeature := catalog.NewFeature(db, store, cfg.Storage, logg)
		mgr.Register(catalogFeature)
		mgr.Register(loans.NewFeature(db, cfg.Library, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := rayid.Logger(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features (registers routes and MQTT subscriptions)
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Prepare the cover image bucket
		if covers := catalogFeature.Covers(); covers.Enabled() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := covers.EnsureBucket(ctx); err != nil {
				logg.Warn("Cover image bucket unavailable", zap.Error(err))
			}
			cancel()
		}

		// 10. Connect the transport (subscriptions were registered by LoadAll)
		if err := transport.Connect(); err != nil {
			logg.Fatal("Failed to start MQTT client", zap.Error(err))
		}

		// 11. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 12. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
		transport.Disconnect()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
