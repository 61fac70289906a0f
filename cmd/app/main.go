package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bohemiyan/authz"
	"github.com/bohemiyan/authz/internal/config"
	"github.com/bohemiyan/authz/internal/db"
	"github.com/bohemiyan/authz/internal/routes"
	"github.com/bohemiyan/authz/zapLogger"
)

func main() {
	logFile := zapLogger.Init()

	cfg, err := config.LoadConfig()
	if err != nil {
		zapLogger.Log.Fatalf("Failed to load config: %v", err)
	}

	pgDB, err := db.NewPostgresDB(cfg)
	if err != nil {
		zapLogger.Log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	zapLogger.Log.Info("Successfully connected to PostgreSQL database")
	defer pgDB.Close()

	redisClient, err := db.NewRedisClient(cfg)
	if err != nil {
		zapLogger.Log.Fatalf("Failed to initialize Redis: %v", err)
	}
	zapLogger.Log.Info("Successfully connected to Redis")
	defer redisClient.Close()

	if err := authz.AutoMigrate(pgDB.GormDB); err != nil {
		zapLogger.Log.Fatalf("Failed to migrate policy tables: %v", err)
	}
	if err := authz.SeedDefaults(pgDB.GormDB); err != nil {
		zapLogger.Log.Fatalf("Failed to seed policy tables: %v", err)
	}

	snapshot, err := authz.LoadSnapshot(pgDB.GormDB)
	if err != nil {
		zapLogger.Log.Fatalf("Failed to load policy snapshot: %v", err)
	}

	metrics := authz.NewMetrics(prometheus.DefaultRegisterer)
	engine := authz.New(snapshot,
		authz.WithLogger(zapLogger.Log),
		authz.WithMetrics(metrics),
	)

	var sink authz.Sink = authz.NewLogSink(zapLogger.Log)
	if cfg.AuditEnabled {
		dbSink := authz.NewDBSink(pgDB.GormDB, zapLogger.Log, cfg.AuditBuffer)
		defer dbSink.Close()
		sink = dbSink
	}

	cache := authz.NewDecisionCache(redisClient, cfg.CachePrefix, cfg.CacheTTL)
	guard := authz.NewGuard(engine, sink)

	app := fiber.New()
	app.Use(zapLogger.FiberLoggingMiddleware(logFile))

	routes.Setup(app, &routes.Deps{
		Engine: engine,
		Guard:  guard,
		Cache:  cache,
		Audit:  sink,
		DB:     pgDB,
		Log:    zapLogger.Log,
	})

	addr := fmt.Sprintf(":%d", cfg.AppPort)
	zapLogger.Log.Infof("Server started on port %d", cfg.AppPort)
	log.Fatal(app.Listen(addr))
}
