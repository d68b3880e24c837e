package app

import (
	"context"
	"io"
	"net/http"

	"go-hrsuit/internal/config"
	"go-hrsuit/internal/media"
	"go-hrsuit/internal/metrics"
	"go-hrsuit/internal/middleware"
	"go-hrsuit/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, migrates the schema and mounts every
// module on router. The returned cleanup closes what was opened.
func BuildApp(ctx context.Context, router *gin.Engine, cfg config.Config, logger *zap.Logger) (func(), error) {
	log := logger.Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.Retries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, cfg.Retries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	log.Info("redis connection established")

	cleanup := func() {
		_ = rdb.Close()
		_ = sqlDB.Close()
	}

	if err := autoMigrate(gormDB); err != nil {
		cleanup()
		return nil, err
	}

	store, err := media.NewStore(ctx, cfg.Media, logger)
	if err != nil {
		cleanup()
		return nil, err
	}
	if closer, ok := store.(io.Closer); ok {
		dbCleanup := cleanup
		cleanup = func() {
			_ = closer.Close()
			dbCleanup()
		}
	}

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		metrics.GinMiddleware(),
		cors.New(corsConfig(cfg.CORS)),
	)
	router.GET("/metrics", metrics.Handler())
	router.GET("/healthz", healthz(sqlDB, rdb))

	rbacService, err := registerModules(router, modules{
		sqlDB:  sqlDB,
		gormDB: gormDB,
		rdb:    rdb,
		media:  store,
		cfg:    cfg,
		logger: logger,
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	if err := rbacService.LoadPolicy(ctx); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = origins
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	c.AllowHeaders = []string{
		"Origin", "Content-Length", "Content-Type", "Authorization",
		middleware.RequestIDHeader, middleware.IdempotencyHeader,
	}
	c.ExposeHeaders = []string{middleware.RequestIDHeader, "Idempotent-Replayed"}
	c.AllowCredentials = true
	return c
}
