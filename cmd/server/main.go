package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/atelier/backend/internal/application/catalog"
	identityapp "github.com/atelier/backend/internal/application/identity"
	productionapp "github.com/atelier/backend/internal/application/production"
	workforceapp "github.com/atelier/backend/internal/application/workforce"
	"github.com/atelier/backend/internal/infrastructure/auth"
	"github.com/atelier/backend/internal/infrastructure/cache"
	"github.com/atelier/backend/internal/infrastructure/config"
	"github.com/atelier/backend/internal/infrastructure/event"
	"github.com/atelier/backend/internal/infrastructure/export"
	"github.com/atelier/backend/internal/infrastructure/insights"
	"github.com/atelier/backend/internal/infrastructure/logger"
	"github.com/atelier/backend/internal/infrastructure/persistence"
	"github.com/atelier/backend/internal/infrastructure/storage"
	"github.com/atelier/backend/internal/infrastructure/telemetry"
	"github.com/atelier/backend/internal/interfaces/http/handler"
	"github.com/atelier/backend/internal/interfaces/http/middleware"
	"github.com/atelier/backend/internal/interfaces/http/router"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	hashPassword := flag.String("hash-password", "", "Print the bcrypt hash of the given password and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to hash password:", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting atelier backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	if err := run(cfg, log); err != nil {
		log.Fatal("Server stopped with error", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer shutdown(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer shutdown(log, "meter provider", meterProvider.Shutdown)
	meter := meterProvider.Meter("atelier-backend")

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.DefaultDBTracingConfig()
		dbTracing.Enabled = true
		dbTracing.SlowQueryThresh = cfg.Telemetry.DBSlowQueryThresh
		dbTracing.LogFullSQL = cfg.App.Env == "development"
		if err := telemetry.NewDBTracingPlugin(dbTracing, log).Register(db.DB); err != nil {
			return fmt.Errorf("register db tracing: %w", err)
		}
	}

	// Redis backs the session blacklist and, optionally, the order locks
	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		redisClient = client
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	fabricRepo := persistence.NewGormFabricRepository(db.DB)
	seamstressRepo := persistence.NewGormSeamstressRepository(db.DB)

	locker, err := cache.NewOrderLocker(cfg.OrderLock, redisClient, log)
	if err != nil {
		return err
	}

	// Events
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(productionapp.NewActivityLogHandler(log))
	productionMetrics, err := telemetry.NewProductionMetrics(meter, log)
	if err != nil {
		return fmt.Errorf("init production metrics: %w", err)
	}
	eventBus.Subscribe(productionMetrics)
	if err := eventBus.Start(ctx); err != nil {
		return fmt.Errorf("start event bus: %w", err)
	}
	defer shutdown(log, "event bus", eventBus.Stop)

	// Application services
	orderService := productionapp.NewOrderService(orderRepo, productRepo, seamstressRepo, locker, log)
	orderService.SetEventPublisher(eventBus)
	productService := catalogapp.NewProductService(productRepo, log)
	productService.SetEventPublisher(eventBus)
	fabricService := catalogapp.NewFabricService(fabricRepo, log)
	fabricService.SetEventPublisher(eventBus)
	seamstressService := workforceapp.NewSeamstressService(seamstressRepo, log)

	reportStorage, err := newReportStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	exportService := productionapp.NewExportService(orderService, export.NewWorkbookWriter(time.Local),
		reportStorage, cfg.Storage.ReportPrefix, log)

	var generator productionapp.InsightsGenerator
	if cfg.Insights.Enabled {
		gemini, err := insights.NewGeminiGenerator(ctx, cfg.Insights, log)
		if err != nil {
			return fmt.Errorf("init insights: %w", err)
		}
		generator = gemini
	}
	insightsService := productionapp.NewInsightsService(orderRepo, seamstressRepo, generator, cfg.Insights.MaxOrders, log)
	dashboardService := productionapp.NewDashboardService(orderRepo)

	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}
	sessionService := identityapp.NewSessionService(cfg.Auth, auth.NewJWTService(cfg.JWT), blacklist, log)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return fmt.Errorf("set trusted proxies: %w", err)
	}

	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		return fmt.Errorf("init http metrics: %w", err)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/api/v1/health"))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(httpMetrics)
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	if cfg.HTTP.GzipEnabled {
		engine.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	limiterCtx, stopLimiters := context.WithCancel(ctx)
	defer stopLimiters()
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		limiter.StartCleanup(limiterCtx)
		engine.Use(middleware.RateLimit(limiter))
	}
	var authLimit gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		limiter.StartCleanup(limiterCtx)
		authLimit = middleware.RateLimit(limiter)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		Authenticator: sessionService,
		SkipPaths:     router.PublicPaths(r.BasePath()),
		Logger:        log,
	}))
	r.Register(router.APIGroups(router.Handlers{
		System:       handler.NewSystemHandler(db, version),
		Auth:         handler.NewAuthHandler(sessionService),
		Orders:       handler.NewOrderHandler(orderService, exportService),
		Products:     handler.NewProductHandler(productService),
		Fabrics:      handler.NewFabricHandler(fabricService),
		Seamstresses: handler.NewSeamstressHandler(seamstressService),
		Dashboard:    handler.NewDashboardHandler(dashboardService, insightsService),
	}, authLimit)...)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// newReportStorage returns the S3 store when enabled. Without it, publishing
// reports answers STORAGE_UNAVAILABLE while direct downloads keep working.
func newReportStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (productionapp.ReportStorage, error) {
	if !cfg.Storage.Enabled {
		log.Info("Report storage disabled")
		return nil, nil
	}
	s3Storage, err := storage.NewS3ReportStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration))
	if err != nil {
		return nil, fmt.Errorf("init report storage: %w", err)
	}
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure report bucket: %w", err)
	}
	log.Info("Report storage ready", zap.String("bucket", s3Storage.Bucket()))
	return s3Storage, nil
}

func shutdown(log *zap.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("Shutdown failed", zap.String("component", name), zap.Error(err))
	}
}
