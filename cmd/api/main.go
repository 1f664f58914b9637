package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/docs"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/config"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/database"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/database/migration"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/filestore"
	handlers "github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/http/handler"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/http/middleware"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/logger"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/metrics"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/otel"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/render/docx"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/render/latex"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/repository"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/repository/postgres"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/service"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/storage"
	"github.com/matematicocardenas25-crypto/generador-documentos-cientificos/internal/watcher"
)

const (
	shutdownTimeout = 10 * time.Second
	// bodyLimit leaves room for MaxContentLength runes of multi-byte text plus the JSON envelope.
	bodyLimit = 8 << 20
)

// @title Generador de Documentos Científicos API
// @version 1.0
// @description Generates Word and LaTeX documents from lightly marked-up text.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logger.New(cfg.IsProduction())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server_failed", "error", err.Error())
	}
}

func run(cfg *config.AppConfig, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", "error", err.Error())
		}
	}()

	// Optional manifest database
	var (
		db       *sql.DB
		fileRepo repository.GeneratedFileRepository
	)
	if cfg.Database.Enabled() {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		fileRepo = postgres.NewGeneratedFilePostgres(db)
	} else {
		log.Info("manifest_disabled", "reason", "DB_HOST not set")
	}

	backend, err := newBackend(cfg)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	store := filestore.New(backend, filestore.Options{
		UniqueSuffix: cfg.Storage.UniqueFilenames,
		Location:     cfg.Location(),
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	domainMetrics, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	loc := cfg.Location()
	docSvc := service.NewDocumentService(
		store,
		fileRepo,
		docx.NewRenderer(),
		latex.NewRenderer(cfg.Document.AuthorAffiliation),
		service.Options{
			DefaultTitle:  cfg.Document.DefaultTitle,
			DefaultAuthor: cfg.Document.DefaultAuthor,
			FileTTL:       cfg.Storage.FileTTL(),
			Now:           func() time.Time { return time.Now().In(loc) },
		},
		domainMetrics,
		log,
	)

	if cfg.Storage.Driver == config.StorageDriverLocal && cfg.Storage.WatchTempDir {
		w, err := watcher.New(cfg.Storage.TempDir, nil, domainMetrics, log)
		if err != nil {
			log.Warn("watcher_disabled", "error", err.Error())
		} else {
			go func() {
				if err := w.Run(ctx); err != nil {
					log.Warn("watcher_stopped", "error", err.Error())
				}
			}()
		}
	}
	go service.RunJanitor(ctx, docSvc, cfg.Storage.CleanupInterval(), log)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit,
	})

	// Register global middleware
	app.Use(recover.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(httpMetrics.Handler())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSAllowOrigins}))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, docSvc)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	// Frontend assets, index.html at /
	app.Static("/", cfg.StaticDir, fiber.Static{Index: "index.html"})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("server_started",
			"addr", addr,
			"storage_driver", cfg.Storage.Driver,
			"manifest", fileRepo != nil,
			"app_env", cfg.AppEnv,
		)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server_stopping")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newBackend selects the generated-file backend from STORAGE_DRIVER.
func newBackend(cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverLocal:
		return storage.NewLocal(cfg.Storage.TempDir)
	case config.StorageDriverMinIO:
		// Initialize reusable S3-compatible object storage client (MinIO-supported)
		return storage.NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
