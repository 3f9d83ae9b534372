// @title           Studyhall Highlighter API
// @version         1.0
// @description     Text highlighting for notebook chapters: highlight classes, captured highlights, sessions and exports.

// @contact.name   API Support

// @host      localhost:4000
// @BasePath  /

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"studyhall/highlighter/internal/cache"
	"studyhall/highlighter/internal/content"
	"studyhall/highlighter/internal/data"
	"studyhall/highlighter/internal/objectstore"
	"studyhall/highlighter/internal/ratelimit"
	"studyhall/highlighter/internal/scheduler"
	"studyhall/highlighter/internal/service"
	"studyhall/highlighter/internal/validator"
)

var (
	version = "1.0.0"
)

type config struct {
	port       int
	env        string
	store      string
	contentURL string

	db struct {
		dsn        string
		migrations string
	}

	log struct {
		level  string
		format string
	}

	ratelimit struct {
		ipRateLimit      int
		sessionRateLimit int
	}

	cors struct {
		trustedOrigin string
	}

	workspace struct {
		captureDelay time.Duration
		restoreDelay time.Duration
		idleTimeout  time.Duration
		workers      int
	}

	redisConfig cache.RedisConfig
	redisTTL    time.Duration

	s3           objectstore.Config
	exportExpiry time.Duration
}

type application struct {
	config             config
	logger             *slog.Logger
	models             data.Models
	redis              *cache.RedisClient
	scheduler          *scheduler.Scheduler
	services           *service.Service
	wg                 sync.WaitGroup
	ipRateLimiter      *ratelimit.RateLimiter
	sessionRateLimiter *ratelimit.RateLimiter
}

func main() {
	// .env only fills in defaults; real environment variables win.
	_ = godotenv.Load()

	var cfg config

	flag.IntVar(&cfg.port, "port", envInt("PORT", 4000), "API server port")
	flag.StringVar(&cfg.env, "env", envString("ENV", "development"), "Environment (development|staging|production)")
	flag.StringVar(&cfg.store, "store", envString("STORE", "memory"), "Highlight store (memory|postgres)")
	flag.StringVar(&cfg.contentURL, "content-url", envString("CONTENT_URL", "http://localhost:8000"), "Notebook backend base URL")

	flag.StringVar(&cfg.db.dsn, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN")
	flag.StringVar(&cfg.db.migrations, "db-migrations", envString("DB_MIGRATIONS", "file://migrations"), "Migration source URL")

	flag.StringVar(&cfg.log.level, "log-level", envString("LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	flag.StringVar(&cfg.log.format, "log-format", envString("LOG_FORMAT", "text"), "Log format (text|json)")

	flag.IntVar(&cfg.ratelimit.ipRateLimit, "ip-rate-limit", envInt("IP_RATE_LIMIT", 30), "Requests per second per IP")
	flag.IntVar(&cfg.ratelimit.sessionRateLimit, "session-rate-limit", envInt("SESSION_RATE_LIMIT", 10), "Selections per second per session")

	flag.StringVar(&cfg.cors.trustedOrigin, "cors-trusted-origin", envString("CORS_TRUSTED_ORIGIN", "*"), "Trusted CORS origin")

	flag.DurationVar(&cfg.workspace.captureDelay, "capture-delay", envDuration("CAPTURE_DELAY", 10*time.Millisecond), "Delay before a selection is captured")
	flag.DurationVar(&cfg.workspace.restoreDelay, "restore-delay", envDuration("RESTORE_DELAY", 100*time.Millisecond), "Delay before highlights are restored")
	flag.DurationVar(&cfg.workspace.idleTimeout, "session-idle-timeout", envDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute), "Close sessions idle for this long")
	flag.IntVar(&cfg.workspace.workers, "scheduler-workers", envInt("SCHEDULER_WORKERS", 4), "Scheduler worker goroutines")

	flag.StringVar(&cfg.redisConfig.Host, "redis-host", envString("REDIS_HOST", ""), "Redis Host (empty disables the content cache)")
	flag.StringVar(&cfg.redisConfig.Port, "redis-port", envString("REDIS_PORT", "6379"), "Redis Port")
	flag.StringVar(&cfg.redisConfig.Password, "redis-password", envString("REDIS_PASSWORD", ""), "Redis Password")
	flag.IntVar(&cfg.redisConfig.DB, "redis-db", envInt("REDIS_DB", 0), "Redis DB")
	flag.IntVar(&cfg.redisConfig.PoolSize, "redis-poolsize", envInt("REDIS_POOLSIZE", 10), "Redis Pool Size")
	flag.DurationVar(&cfg.redisTTL, "redis-ttl", envDuration("REDIS_TTL", 5*time.Minute), "Content cache TTL")

	flag.StringVar(&cfg.s3.Bucket, "s3-bucket", envString("S3_BUCKET", ""), "Export bucket (empty disables export)")
	flag.StringVar(&cfg.s3.Region, "s3-region", envString("AWS_REGION", "us-east-1"), "Export bucket region")
	flag.StringVar(&cfg.s3.Endpoint, "s3-endpoint", envString("S3_ENDPOINT", ""), "S3-compatible endpoint")
	cfg.s3.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.s3.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	flag.DurationVar(&cfg.exportExpiry, "export-url-expiry", envDuration("EXPORT_URL_EXPIRY", 15*time.Minute), "Presigned export URL lifetime")

	flag.Parse()

	logger := newLogger(cfg)

	if err := validateConfig(cfg); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	app, cleanup, err := newApplication(cfg, logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer cleanup()

	err = app.serve(NewHandlers(app, app.services))
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// validateConfig rejects flag values the application has no branch for.
func validateConfig(cfg config) error {
	v := validator.New()

	v.Check(validator.PermittedValue(cfg.store, "memory", "postgres"), "store", "must be memory or postgres")
	v.Check(cfg.store != "postgres" || cfg.db.dsn != "", "db-dsn", "must be provided for the postgres store")
	v.Check(validator.PermittedValue(cfg.log.format, "text", "json"), "log-format", "must be text or json")
	v.Check(validator.PermittedValue(strings.ToLower(cfg.log.level), "debug", "info", "warn", "error"), "log-level", "must be debug, info, warn or error")
	v.Check(cfg.workspace.workers > 0, "scheduler-workers", "must be greater than zero")
	v.Check(cfg.ratelimit.sessionRateLimit > 0, "session-rate-limit", "must be greater than zero")

	if !v.Valid() {
		return fmt.Errorf("invalid configuration: %v", v.Errors)
	}
	return nil
}

func newLogger(cfg config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.log.level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.log.format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// newApplication connects every backing service named by cfg. The returned
// cleanup releases them in reverse order.
func newApplication(cfg config, logger *slog.Logger) (*application, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	switch cfg.store {
	case "memory":
		app.models = data.NewMemoryModels()
	case "postgres":
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { db.Close() })
		logger.Info("Successful connection to database")

		if err := data.Migrate(db, cfg.db.migrations); err != nil {
			cleanup()
			return nil, nil, err
		}
		app.models = data.NewModels(db)
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.store)
	}

	// A nil *RedisClient must not reach content.NewClient as a non-nil
	// interface.
	var contentCache content.Cache
	if cfg.redisConfig.Host != "" {
		redisClient, err := cache.NewRedisClient(cfg.redisConfig, "content", cfg.redisTTL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() { redisClient.Close() })
		app.redis = redisClient
		contentCache = redisClient
		logger.Info("Successful connection to redis")
	}

	var storage service.ObjectStorage
	if cfg.s3.Bucket != "" {
		awsConfig, err := objectstore.LoadAWSConfig(context.Background(), cfg.s3)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		storage = objectstore.New(awsConfig, cfg.s3.Bucket, cfg.s3.Endpoint)
		logger.Info("export enabled", "bucket", cfg.s3.Bucket)
	}

	app.scheduler = scheduler.NewScheduler(cfg.workspace.workers, logger)
	app.scheduler.Start()
	closers = append(closers, app.scheduler.Stop)

	limiterCtx, stopLimiters := context.WithCancel(context.Background())
	closers = append(closers, stopLimiters)
	app.ipRateLimiter = ratelimit.NewRateLimiter(limiterCtx, cfg.ratelimit.ipRateLimit, time.Second)
	app.sessionRateLimiter = ratelimit.NewRateLimiter(limiterCtx, cfg.ratelimit.sessionRateLimit, time.Second)

	app.services = service.NewServices(
		app.models,
		content.NewClient(cfg.contentURL, contentCache, logger),
		storage,
		app.scheduler,
		service.Config{
			Workspace: service.WorkspaceConfig{
				CaptureDelay: cfg.workspace.captureDelay,
				RestoreDelay: cfg.workspace.restoreDelay,
			},
			ExportURLExpiry: cfg.exportExpiry,
		},
		logger,
	)
	closers = append(closers, app.services.Workspace.CloseAll)

	return app, cleanup, nil
}

func openDB(cfg config) (*sql.DB, error) {
	if cfg.db.dsn == "" {
		return nil, errors.New("db-dsn is required for the postgres store")
	}

	db, err := sql.Open("postgres", cfg.db.dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(15 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}
