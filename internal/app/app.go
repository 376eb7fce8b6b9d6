package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/eduatlas/catalog/pkg/database"
	"github.com/eduatlas/catalog/pkg/health"
	"github.com/eduatlas/catalog/pkg/httpclient"
	pkgkafka "github.com/eduatlas/catalog/pkg/kafka"
	"github.com/eduatlas/catalog/pkg/middleware"
	"github.com/eduatlas/catalog/pkg/tracing"

	"github.com/eduatlas/catalog/internal/config"
	"github.com/eduatlas/catalog/internal/event"
	handler "github.com/eduatlas/catalog/internal/handler/http"
	"github.com/eduatlas/catalog/internal/repository"
	cacherepo "github.com/eduatlas/catalog/internal/repository/cache"
	"github.com/eduatlas/catalog/internal/repository/postgres"
	"github.com/eduatlas/catalog/internal/search"
	esengine "github.com/eduatlas/catalog/internal/search/elasticsearch"
	memengine "github.com/eduatlas/catalog/internal/search/memory"
	"github.com/eduatlas/catalog/internal/service"
	"github.com/eduatlas/catalog/internal/uploader"
	cdnuploader "github.com/eduatlas/catalog/internal/uploader/cdn"
	memuploader "github.com/eduatlas/catalog/internal/uploader/memory"
	s3uploader "github.com/eduatlas/catalog/internal/uploader/s3"
)

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	httpServer     *http.Server
	consumers      []*pkgkafka.Consumer
	pool           *pgxpool.Pool
	redisClient    *redis.Client
	kafkaProducer  *pkgkafka.Producer
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{cfg: cfg, logger: logger}

	// Tracing.
	tracingCfg := tracing.DefaultConfig("catalog")
	tracingCfg.Environment = cfg.Environment
	tracingCfg.OTLPEndpoint = cfg.OTELEndpoint
	tracingCfg.SampleRate = cfg.OTELSampleRate
	tracingCfg.Enabled = cfg.OTELEnabled
	shutdown, err := tracing.InitTracer(ctx, tracingCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	app.tracerShutdown = shutdown

	// PostgreSQL.
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.PostgresHost
	pgCfg.Port = cfg.PostgresPort
	pgCfg.User = cfg.PostgresUser
	pgCfg.Password = cfg.PostgresPassword
	pgCfg.DBName = cfg.PostgresDB
	pgCfg.SSLMode = cfg.PostgresSSLMode

	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	app.pool = pool

	var repo repository.ProductRepository = postgres.NewProductRepository(pool)

	// Optional Redis read-through cache.
	if cfg.CacheEnabled {
		redisCfg := database.DefaultRedisConfig()
		redisCfg.Host = cfg.RedisHost
		redisCfg.Port = cfg.RedisPort
		redisCfg.Password = cfg.RedisPassword
		redisCfg.DB = cfg.RedisDB

		redisClient, err := database.NewRedisClient(ctx, redisCfg)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		app.redisClient = redisClient
		repo = cacherepo.NewProductRepository(repo, redisClient, cfg.CacheTTL, logger)
		logger.Info("redis product cache enabled",
			slog.String("addr", redisCfg.Addr()),
			slog.Duration("ttl", cfg.CacheTTL),
		)
	}

	// Search engine.
	var eng search.Engine
	var esEng *esengine.Engine
	switch cfg.SearchEngine {
	case "elasticsearch":
		esEng, err = esengine.New(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, logger)
		if err != nil {
			return nil, fmt.Errorf("init elasticsearch engine: %w", err)
		}
		eng = esEng
		logger.Info("elasticsearch search engine initialized",
			slog.String("url", cfg.ElasticsearchURL),
			slog.String("index", cfg.ElasticsearchIndex),
		)
	default:
		eng = memengine.New()
		logger.Info("in-memory search engine initialized")
	}

	bridge := search.NewBridge(eng, logger)

	// Picture uploader.
	up, err := newUploader(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	// Kafka producer and indexing consumer.
	var producer *event.Producer
	if cfg.KafkaEnabled {
		app.kafkaProducer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		producer = event.NewProducer(app.kafkaProducer, logger)

		eventConsumer := event.NewConsumer(bridge, logger)
		consumerCfg := pkgkafka.ConsumerConfig{
			Brokers:  cfg.KafkaBrokers,
			GroupID:  cfg.KafkaGroupID,
			Topic:    event.TopicProductCreated,
			MinBytes: 1,
			MaxBytes: 10e6, // 10 MB
		}
		app.consumers = append(app.consumers, pkgkafka.NewConsumer(consumerCfg, eventConsumer.Handle, logger))
		logger.Info("kafka wired", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Service layer.
	productService := service.NewProductService(repo, up, bridge, producer, service.ProductServiceConfig{
		PageSize:          cfg.ItemsPerPage,
		DefaultDepartment: cfg.DefaultDepartment,
		IndexTimeout:      cfg.IndexTimeout,
	}, logger)
	searchService := service.NewSearchService(eng, repo, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", pool.Ping)
	if esEng != nil {
		healthHandler.Register("elasticsearch", esEng.Ping)
	}
	if cfg.KafkaEnabled {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return pkgkafka.PingBrokers(ctx, cfg.KafkaBrokers)
		})
	}

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(productService, searchService, healthHandler, corsCfg, logger)

	app.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return app, nil
}

func newUploader(ctx context.Context, cfg *config.Config, logger *slog.Logger) (uploader.Uploader, error) {
	switch cfg.Uploader {
	case "cdn":
		client := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultCircuitBreakerConfig("cdn-uploader"),
			logger,
		)
		return cdnuploader.New(client, cdnuploader.Config{
			UploadURL:    cfg.CDNUploadURL,
			UploadPreset: cfg.CDNUploadPreset,
		}, logger), nil
	case "s3":
		up, err := s3uploader.New(ctx, s3uploader.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			BaseURL:   cfg.S3BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 uploader: %w", err)
		}
		return up, nil
	default:
		logger.Warn("in-memory uploader active, pictures will not survive restarts")
		return memuploader.New("memory://uploads"), nil
	}
}

// Run starts the HTTP server and Kafka consumers, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1+len(a.consumers))

	for _, c := range a.consumers {
		go func() {
			if err := c.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer: %w", err)
			}
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	for _, c := range a.consumers {
		if err := c.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.kafkaProducer != nil {
		if err := a.kafkaProducer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.pool.Close()

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
