package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"meup-backend/config"
	"meup-backend/internal/cloudsync"
	v1 "meup-backend/internal/delivery/http/v1"
	"meup-backend/internal/domain"
	"meup-backend/internal/events"
	"meup-backend/internal/kv"
	"meup-backend/internal/movement"
	filerepo "meup-backend/internal/repository/file"
	pgrepo "meup-backend/internal/repository/postgres"
	"meup-backend/internal/store"
	"meup-backend/internal/usecase"
	"meup-backend/pkg/audit"
	"meup-backend/pkg/database"
	"meup-backend/pkg/logger"
	"meup-backend/pkg/redis"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init()
	auditLog := audit.Init("meup-backend")
	defer auditLog.Sync()
	logger.Log.Info("Starting meup backend", "port", cfg.Port)

	// 3. Setup Snapshot Repository (file by default, Postgres when configured)
	var repo domain.SnapshotRepository
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		repo, err = pgrepo.NewSnapshotRepository(dbPool, cfg.StorageKey)
		if err != nil {
			logger.Log.Error("Failed to prepare snapshot table", "error", err)
			os.Exit(1)
		}
	} else {
		repo, err = filerepo.NewSnapshotRepository(cfg.DataDir, cfg.StorageKey)
		if err != nil {
			logger.Log.Error("Failed to prepare data dir", "error", err)
			os.Exit(1)
		}
	}

	// 4. Setup Store and Event Bus
	bus := events.NewBus()
	st, err := store.New(repo, bus)
	if err != nil {
		logger.Log.Error("Failed to load snapshot", "error", err)
		os.Exit(1)
	}

	seedParams, err := hashSeedParams(cfg)
	if err != nil {
		logger.Log.Error("Failed to hash demo credentials", "error", err)
		os.Exit(1)
	}
	if store.Empty(st) {
		if err := store.Seed(st, seedParams); err != nil {
			logger.Log.Error("Failed to seed demo data", "error", err)
			os.Exit(1)
		}
		logger.Log.Info("Demo data seeded")
	}

	// 5. Setup KV Slot Store (Redis when configured, in-memory otherwise)
	var slots kv.SlotStore
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err == nil && redis.Client() != nil {
		slots = kv.NewRedisStore(redis.Client())
		defer redis.Close()
		logger.Log.Info("KV slots backed by Redis")
	} else {
		slots = kv.NewMemoryStore()
		logger.Log.Warn("KV slots in memory only", "reason", err)
	}

	// 6. Setup Cloud Sync. With no external base URL the mirror points at this
	// instance's own KV endpoint, so the endpoints stay exercised locally.
	syncBase := cfg.SyncBaseURL
	if syncBase == "" {
		syncBase = "http://127.0.0.1:" + cfg.Port + "/v1/kv"
	}
	syncClient := cloudsync.NewClient(syncBase)
	syncManager := cloudsync.NewManager(syncClient, st, cfg.SyncInterval, cfg.DataDir)
	st.OnSave(syncManager.HandleSave)
	if cfg.SyncRoom != "" {
		syncManager.Start(cfg.SyncRoom)
	} else {
		syncManager.Restore()
	}

	// 7. Setup UseCases
	validate := validator.New()
	authUC := usecase.NewAuthUsecase(st, validate, cfg.JWTSecret)
	jobUC := usecase.NewJobUsecase(st)
	offerUC := usecase.NewOfferUsecase(st)
	assignmentUC := usecase.NewAssignmentUsecase(st)
	chatUC := usecase.NewChatUsecase(st)
	ratingUC := usecase.NewRatingUsecase(st, validate)
	adminUC := usecase.NewAdminUsecase(st, authUC, func(ctx context.Context) error {
		return store.Seed(st, seedParams)
	})

	// 8. Movement Simulator
	simCtx, simCancel := context.WithCancel(context.Background())
	defer simCancel()
	sim := movement.New(st, cfg.MoveInterval)
	go sim.Run(simCtx)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		JobUC:        jobUC,
		OfferUC:      offerUC,
		AssignmentUC: assignmentUC,
		ChatUC:       chatUC,
		RatingUC:     ratingUC,
		AdminUC:      adminUC,
		Store:        st,
		SyncManager:  syncManager,
		Slots:        slots,
		Bus:          bus,
		Config:       cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	simCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func hashSeedParams(cfg *config.Config) (store.SeedParams, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return store.SeedParams{}, err
	}
	demoHash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return store.SeedParams{}, err
	}
	return store.SeedParams{
		AdminEmail:        cfg.AdminEmail,
		AdminPasswordHash: string(adminHash),
		DemoPasswordHash:  string(demoHash),
	}, nil
}
