package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/pet-service/internal/api/http"
	"github.com/spec-kit/pet-service/internal/api/http/handlers"
	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/config"
	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/observability"
	"github.com/spec-kit/pet-service/internal/persistence"
	"github.com/spec-kit/pet-service/internal/repository"
	"github.com/spec-kit/pet-service/internal/service"
	"github.com/spec-kit/pet-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	petRepo := repository.NewPetRepository(pool)
	breedRepo := repository.NewBreedRepository(pool)
	geneRepo := repository.NewGeneRepository(pool)
	morphologyRepo := repository.NewMorphologyRepository(pool)
	eventLogRepo := repository.NewEventLogRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	recordRepo := repository.NewPetRecordRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	publisher := events.NewPublisher(dispatcher)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	policy := passwordPolicy(cfg.Password)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	userService := service.NewUserService(service.UserDependencies{
		UserRepo:  userRepo,
		Hasher:    hasher,
		Policy:    policy,
		Publisher: publisher,
	})
	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:          userRepo,
		PasswordResetRepo: resetRepo,
		Hasher:            hasher,
		Policy:            policy,
		Publisher:         publisher,
		ResetSender:       notificationService,
	})
	petService := service.NewPetService(service.PetDependencies{
		PetRepo:        petRepo,
		UserRepo:       userRepo,
		BreedRepo:      breedRepo,
		GeneRepo:       geneRepo,
		MorphologyRepo: morphologyRepo,
		EventLog:       eventLogRepo,
		Publisher:      publisher,
	})
	recordService := service.NewPetRecordService(service.PetRecordDependencies{
		RecordRepo: recordRepo,
		PetRepo:    petRepo,
		Publisher:  publisher,
	})
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		BreedRepo:      breedRepo,
		GeneRepo:       geneRepo,
		MorphologyRepo: morphologyRepo,
		Publisher:      publisher,
		Cache:          redis.ClientHandle(),
		CacheTTL:       cfg.Cache.CatalogTTL(),
		Logger:         logger,
	})
	auditService := service.NewAuditService(dispatcher, eventLogRepo, metrics, logger)
	worker.StartEventWorkers(auditService, notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, userService),
		Users:          handlers.NewUsersHandler(userService),
		Pets:           handlers.NewPetsHandler(petService, auditService),
		Records:        handlers.NewPetRecordsHandler(recordService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func passwordPolicy(cfg config.PasswordPolicyConfig) *domain.PasswordPolicy {
	policy := domain.DefaultPasswordPolicy()
	if cfg.MinLength > 0 {
		policy.MinLength = cfg.MinLength
	}
	if cfg.MaxLength > 0 {
		policy.MaxLength = cfg.MaxLength
	}
	policy.RequireUppercase = cfg.RequireUppercase
	policy.RequireLowercase = cfg.RequireLowercase
	policy.RequireDigit = cfg.RequireDigit
	policy.RequireSpecial = cfg.RequireSpecial
	return policy
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
