package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tripgrid/trip-logistics-api/api/swagger"
	"github.com/tripgrid/trip-logistics-api/internal/handler"
	"github.com/tripgrid/trip-logistics-api/internal/middleware"
	"github.com/tripgrid/trip-logistics-api/internal/repository"
	"github.com/tripgrid/trip-logistics-api/internal/service"
	"github.com/tripgrid/trip-logistics-api/pkg/cache"
	"github.com/tripgrid/trip-logistics-api/pkg/config"
	"github.com/tripgrid/trip-logistics-api/pkg/database"
	"github.com/tripgrid/trip-logistics-api/pkg/logger"
	corsmiddleware "github.com/tripgrid/trip-logistics-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tripgrid/trip-logistics-api/pkg/middleware/requestid"
	"github.com/tripgrid/trip-logistics-api/pkg/storage"
)

// @title Trip Logistics API
// @version 1.0.0
// @description Lodging calendar, transports and pickup coordination for group trips
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	cacheEnabled := cfg.Calendar.CacheEnabled
	var cacheRepo service.CacheRepository
	if cacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, calendar cache disabled", "error", err)
			cacheEnabled = false
		} else {
			defer redisClient.Close()
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Calendar.CacheTTL, logr, cacheEnabled)

	validate := validator.New()

	tripRepo := repository.NewTripRepository(db)
	personRepo := repository.NewPersonRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	transportRepo := repository.NewTransportRepository(db)

	tripSvc := service.NewTripService(tripRepo, validate, logr)
	rosterSvc := service.NewRosterService(personRepo, roomRepo, cacheSvc, validate, logr)
	assignmentSvc := service.NewAssignmentService(assignmentRepo, cacheSvc, validate, logr)
	transportSvc := service.NewTransportService(transportRepo, cacheSvc, validate, logr)
	calendarSvc := service.NewCalendarService(
		assignmentRepo, transportRepo, personRepo, roomRepo,
		cacheSvc, metricsSvc,
		service.CalendarServiceConfig{CacheTTL: cfg.Calendar.CacheTTL, UnknownLabel: cfg.Calendar.UnknownLabel},
		logr,
	)
	pickupSvc := service.NewPickupService(transportRepo, metricsSvc, service.PickupServiceConfig{
		DefaultWindowMinutes: cfg.Pickups.DefaultWindowMinutes,
		MaxWindowMinutes:     cfg.Pickups.MaxWindowMinutes,
	}, logr)
	shareSvc := service.NewShareService(tripRepo, service.ShareServiceConfig{
		Enabled: cfg.Share.Enabled,
		Secret:  cfg.Share.Secret,
		TTL:     cfg.Share.TTL,
	}, logr)

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc = service.NewExportService(transportRepo, personRepo, calendarSvc, store, signer, service.ExportServiceConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
		}, logr)
		exportSvc.Start(context.Background())
		defer exportSvc.Stop()

		go func() {
			ticker := time.NewTicker(cfg.Exports.CleanupInterval)
			defer ticker.Stop()
			for range ticker.C {
				exportSvc.Cleanup(cfg.Exports.SignedURLTTL)
			}
		}()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	tripHandler := handler.NewTripHandler(tripSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)
	transportHandler := handler.NewTransportHandler(transportSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc, shareSvc)
	pickupHandler := handler.NewPickupHandler(pickupSvc)
	shareHandler := handler.NewShareHandler(shareSvc)

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/trips", tripHandler.List)
		api.POST("/trips", tripHandler.Create)
		api.GET("/trips/:id", tripHandler.Get)
		api.PUT("/trips/:id", tripHandler.Update)
		api.DELETE("/trips/:id", tripHandler.Delete)

		api.GET("/trips/:id/people", rosterHandler.ListPeople)
		api.POST("/trips/:id/people", rosterHandler.CreatePerson)
		api.PUT("/people/:personId", rosterHandler.UpdatePerson)
		api.DELETE("/people/:personId", rosterHandler.DeletePerson)

		api.GET("/trips/:id/rooms", rosterHandler.ListRooms)
		api.POST("/trips/:id/rooms", rosterHandler.CreateRoom)
		api.PUT("/rooms/:roomId", rosterHandler.UpdateRoom)
		api.DELETE("/rooms/:roomId", rosterHandler.DeleteRoom)

		api.GET("/trips/:id/assignments", assignmentHandler.List)
		api.POST("/trips/:id/assignments", assignmentHandler.Create)
		api.PUT("/assignments/:assignmentId", assignmentHandler.Update)
		api.DELETE("/assignments/:assignmentId", assignmentHandler.Delete)

		api.GET("/trips/:id/transports", transportHandler.List)
		api.POST("/trips/:id/transports", transportHandler.Create)
		api.PUT("/transports/:transportId", transportHandler.Update)
		api.DELETE("/transports/:transportId", transportHandler.Delete)

		api.GET("/trips/:id/calendar", calendarHandler.Month)
		api.GET("/trips/:id/pickup-groups", pickupHandler.Groups)
		api.POST("/transports/:transportId/claim", pickupHandler.Claim)
		api.DELETE("/transports/:transportId/claim", pickupHandler.Release)

		if cfg.Share.Enabled {
			api.POST("/trips/:id/share", shareHandler.Create)
			api.GET("/shared/:token/calendar", calendarHandler.SharedMonth)
		}

		if exportSvc != nil {
			exportHandler := handler.NewExportHandler(exportSvc)
			api.POST("/trips/:id/exports", exportHandler.Create)
			api.GET("/exports/:jobId", exportHandler.Get)
			api.GET("/exports/:jobId/download", exportHandler.Download)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
