package main

import (
	"context"
	"fmt"
	"log"
	"net/http/pprof"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/unischedule/api/swagger"
	internalcache "github.com/noah-isme/unischedule/internal/cache"
	internalhandler "github.com/noah-isme/unischedule/internal/handler"
	"github.com/noah-isme/unischedule/internal/jobstore"
	internalmiddleware "github.com/noah-isme/unischedule/internal/middleware"
	"github.com/noah-isme/unischedule/internal/repository"
	"github.com/noah-isme/unischedule/internal/service"
	"github.com/noah-isme/unischedule/pkg/cache"
	"github.com/noah-isme/unischedule/pkg/config"
	"github.com/noah-isme/unischedule/pkg/database"
	"github.com/noah-isme/unischedule/pkg/export"
	"github.com/noah-isme/unischedule/pkg/jobs"
	"github.com/noah-isme/unischedule/pkg/logger"
	corsmiddleware "github.com/noah-isme/unischedule/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/unischedule/pkg/middleware/requestid"
	"github.com/noah-isme/unischedule/pkg/storage"
)

// @title Unischedule API
// @version 0.1.0
// @description Timetabling solver service: instance validation, solve/reoptimize jobs, saved schedules and exports.
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	metricsHandler := internalhandler.NewMetricsHandler(metricsSvc)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise database", "error", err)
	}
	defer db.Close()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET("/metrics", metricsHandler.Prometheus)

	scheduleRepo := repository.NewScheduleRepository(db)

	registry := jobstore.NewRegistry()
	queueCfg := jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		BufferSize: cfg.Jobs.BufferSize,
		MaxRetries: cfg.Jobs.MaxRetries,
		RetryDelay: cfg.Jobs.RetryDelay,
		Logger:     logr,
	}
	runner := jobstore.NewRunner(registry, queueCfg, logr).WithObserver(metricsSvc)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	runner.Start(workerCtx)
	defer runner.Stop()

	solverSvc := service.NewSolverService(runner, registry, scheduleRepo, logr)
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("instance cache disabled", "error", err)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		solverSvc = solverSvc.WithCache(internalcache.NewInstanceCache(cacheRepo, cfg.Cache.TTL, logr))
	}

	fs, err := storage.NewLocalStorage(cfg.Export.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Export.SignedURLSecret, cfg.Export.SignedURLTTL)
	exportSvc := service.NewExportService(export.NewCSVExporter(), export.NewPDFExporter(), fs, signer)

	solverHandler := internalhandler.NewSolverHandler(solverSvc)
	exportHandler := internalhandler.NewExportHandler(solverSvc, exportSvc)

	api := r.Group(cfg.APIPrefix)
	v1 := api.Group("/v1")

	v1.POST("/validate", solverHandler.Validate)
	v1.POST("/explain", solverHandler.Explain)
	v1.GET("/jobs/:id", solverHandler.JobStatus)
	v1.GET("/jobs/:id/result", solverHandler.JobResult)
	v1.GET("/schedules", solverHandler.ListSchedules)
	v1.GET("/schedules/:id", solverHandler.GetSchedule)
	v1.GET("/schedules/:id/export", exportHandler.Export)

	secured := v1.Group("")
	secured.Use(internalmiddleware.Auth(cfg.JWT.Secret))
	secured.POST("/solve", solverHandler.Solve)
	secured.POST("/reoptimize", solverHandler.Reoptimize)
	secured.POST("/schedules", solverHandler.SaveSchedule)
	secured.DELETE("/schedules/:id", solverHandler.DeleteSchedule)

	registerPprof(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func registerPprof(r *gin.Engine) {
	group := r.Group("/debug/pprof")
	group.GET("/", gin.WrapF(pprof.Index))
	group.GET("/cmdline", gin.WrapF(pprof.Cmdline))
	group.GET("/profile", gin.WrapF(pprof.Profile))
	group.POST("/symbol", gin.WrapF(pprof.Symbol))
	group.GET("/symbol", gin.WrapF(pprof.Symbol))
	group.GET("/trace", gin.WrapF(pprof.Trace))
	group.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
	group.GET("/block", gin.WrapH(pprof.Handler("block")))
	group.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
	group.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	group.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
	group.GET("/threadcreate", gin.WrapH(pprof.Handler("threadcreate")))
}
