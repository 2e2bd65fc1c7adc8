package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/abduss/memorial/internal/auth"
	"github.com/abduss/memorial/internal/config"
	"github.com/abduss/memorial/internal/ledger"
	"github.com/abduss/memorial/internal/logger"
	"github.com/abduss/memorial/internal/media"
	"github.com/abduss/memorial/internal/mediastore"
	"github.com/abduss/memorial/internal/metrics"
	"github.com/abduss/memorial/internal/server"
	"github.com/abduss/memorial/internal/storage"
	"github.com/abduss/memorial/internal/upload"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, cfgErr := config.Load()

	log, err := logger.InitLevel(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if cfgErr != nil {
		log.Fatal("load config", zap.Error(cfgErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	minioClient, err := storage.NewMinIOClient(cfg.MinIO)
	if err != nil {
		log.Fatal("connect minio", zap.Error(err))
	}
	if err := storage.EnsureBucket(ctx, minioClient, cfg.MinIO.Bucket, cfg.MinIO.Region); err != nil {
		log.Fatal("ensure bucket", zap.Error(err))
	}

	deps := server.Dependencies{
		Config:      cfg,
		ObjectStore: minioClient,
		AuthService: auth.NewService(cfg.Auth),
	}

	var recorder upload.Recorder
	if cfg.Ledger.Enabled {
		dbPool, err := storage.NewPostgresPool(ctx, cfg.Ledger.Postgres)
		if err != nil {
			log.Fatal("connect postgres", zap.Error(err))
		}
		defer dbPool.Close()

		repo := ledger.NewRepository(dbPool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal("ensure ledger schema", zap.Error(err))
		}
		deps.DB = dbPool
		deps.Ledger = repo
		recorder = repo
	}

	store := mediastore.NewMinIOStore(minioClient, cfg.MinIO.Bucket)
	deps.MediaService = media.NewService(store, cfg.Media)
	deps.UploadService = upload.NewService(store, deps.MediaService.Delivery(), cfg.Media, recorder)

	metrics.InitMetrics()
	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(deps)

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("memorial API listening",
			zap.String("addr", cfg.Server.Address()),
			zap.String("bucket", cfg.MinIO.Bucket),
			zap.Bool("ledger", cfg.Ledger.Enabled),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
