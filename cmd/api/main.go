package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/jdvillanueva/brgy-health-api/api/swagger"
	"github.com/jdvillanueva/brgy-health-api/internal/handler"
	"github.com/jdvillanueva/brgy-health-api/internal/middleware"
	"github.com/jdvillanueva/brgy-health-api/internal/repository"
	"github.com/jdvillanueva/brgy-health-api/internal/service"
	"github.com/jdvillanueva/brgy-health-api/pkg/cache"
	"github.com/jdvillanueva/brgy-health-api/pkg/config"
	"github.com/jdvillanueva/brgy-health-api/pkg/database"
	"github.com/jdvillanueva/brgy-health-api/pkg/jobs"
	"github.com/jdvillanueva/brgy-health-api/pkg/logger"
	corsmiddleware "github.com/jdvillanueva/brgy-health-api/pkg/middleware/cors"
	reqidmiddleware "github.com/jdvillanueva/brgy-health-api/pkg/middleware/requestid"
	"github.com/jdvillanueva/brgy-health-api/pkg/storage"
)

// @title Barangay Health Records API
// @version 1.0.0
// @description Resident health record keeping, review queue and analytics
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	validate := validator.New()
	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Analytics.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, analytics cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Analytics.CacheTTL, logr, true)
		}
	}

	residentRepo := repository.NewResidentRepository(db)
	recordRepo := repository.NewHealthRecordRepository(db)
	pendingRepo := repository.NewPendingResidentRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activitySvc := service.NewActivityService(activityRepo, logr, cfg.ActivityLog.Limit)
	authSvc := service.NewAuthService(adminRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	sessionSvc := service.NewSessionService(cfg.Session.IdleTimeout, cfg.Session.WarningWindow, logr)
	residentSvc := service.NewResidentService(residentRepo, recordRepo, activitySvc, validate, logr)
	pendingSvc := service.NewPendingService(pendingRepo, residentRepo, recordRepo, activitySvc, validate, logr)
	recordSvc := service.NewHealthRecordService(recordRepo, pendingRepo, residentRepo, activitySvc, validate, logr)
	analyticsSvc := service.NewAnalyticsService(recordRepo, cacheSvc, logr)

	var reportSvc *service.ReportService
	var reportQueue *jobs.Queue
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exporter := service.NewExportService(recordRepo, residentRepo, analyticsSvc, store, signer, service.ExportConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Exports.SignedURLTTL,
		}, logr, nil, nil)
		reportSvc = service.NewReportService(nil, exporter, logr)
		reportQueue = jobs.NewQueue("exports", reportSvc.Process, jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			Logger:     logr,
		})
		reportSvc.SetQueue(reportQueue)
		reportQueue.Start(ctx)
		defer reportQueue.Stop()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authHandler := handler.NewAuthHandler(authSvc, sessionSvc)
	residentHandler := handler.NewResidentHandler(residentSvc, analyticsSvc)
	pendingHandler := handler.NewPendingHandler(pendingSvc, analyticsSvc)
	recordHandler := handler.NewHealthRecordHandler(recordSvc, analyticsSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/pending-residents", pendingHandler.Submit)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc, sessionSvc))
	{
		authed.POST("/auth/logout", authHandler.Logout)
		authed.GET("/auth/me", authHandler.Me)

		authed.GET("/residents", residentHandler.List)
		authed.GET("/residents/:id", residentHandler.Get)
		authed.POST("/residents", residentHandler.Register)
		authed.PUT("/residents/:id", residentHandler.Update)

		authed.GET("/health-records", recordHandler.List)
		authed.GET("/health-records/:id", recordHandler.Get)
		authed.POST("/health-records", recordHandler.Create)
		authed.PUT("/health-records/:id", recordHandler.Update)
		authed.DELETE("/health-records/:id", recordHandler.Delete)

		authed.GET("/pending-residents", pendingHandler.List)
		authed.POST("/pending-residents/accept/:id", pendingHandler.Accept)
		authed.DELETE("/pending-residents/remove/:id", pendingHandler.Reject)

		authed.GET("/analytics/summary", analyticsHandler.Summary)
		authed.GET("/analytics/heatmap", analyticsHandler.Heatmap)

		authed.GET("/activity-logs", activityHandler.Recent)
	}

	// The state probe must not reset the idle clock, so it skips Touch.
	passive := api.Group("")
	passive.Use(middleware.JWTPassive(authSvc))
	passive.GET("/auth/session", authHandler.Session)

	if reportSvc != nil {
		reportHandler := handler.NewReportHandler(reportSvc)
		authed.POST("/exports", reportHandler.Create)
		authed.GET("/exports/:id", reportHandler.Status)
		// Download links carry their own signed token.
		api.GET("/exports/download/:token", reportHandler.Download)
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sessionSvc.Sweep()
			}
		}
	}()

	if reportSvc != nil {
		interval := cfg.Exports.CleanupInterval
		if interval <= 0 {
			interval = time.Hour
		}
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					reportSvc.Cleanup(cfg.Exports.SignedURLTTL)
				}
			}
		}()
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
	logr.Info("server stopped")
}
