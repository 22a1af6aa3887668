package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noobie-hq/noobie-api/internal/config"
	"github.com/noobie-hq/noobie-api/internal/database"
	"github.com/noobie-hq/noobie-api/internal/handler"
	"github.com/noobie-hq/noobie-api/internal/middleware"
	"github.com/noobie-hq/noobie-api/internal/models"
	"github.com/noobie-hq/noobie-api/internal/repository"
	"github.com/noobie-hq/noobie-api/internal/review"
	"github.com/noobie-hq/noobie-api/internal/router"
	"github.com/noobie-hq/noobie-api/internal/service"
	"github.com/noobie-hq/noobie-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Position{}, &models.CodeSubmission{}, &models.Invitation{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var classifier ai.Classifier
	var generator ai.TaskGenerator
	if cfg.OpenAIAPIKey != "" {
		aiClient, err := ai.NewOpenAIClient(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.AIModel,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create openai client: %v", err)
		}
		classifier = aiClient
		generator = aiClient
	} else {
		logger.Warn().Msg("no OpenAI API key configured; commit reviews will be unavailable")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	submissionRepo := repository.NewCodeSubmissionRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTokenTTL, logger)
	commitService := service.NewCommitReviewService(authService, userRepo, positionRepo, submissionRepo, classifier, review.NewDefaultScorer(), validate, logger)
	profileService := service.NewProfileService(authService, userRepo, positionRepo, validate, logger)
	invitationService := service.NewInvitationService(invitationRepo, positionRepo, validate, cfg.InviteBaseURL, cfg.InviteTTL, logger)
	trainingService := service.NewTrainingTaskService(generator, validate, logger)
	leaderboardService := service.NewLeaderboardService(userRepo, redisClient, cfg.LeaderboardCacheTTL, cfg.LeaderboardSize, logger)

	commitHandler := handler.NewCommitHandler(commitService, logger)
	profileHandler := handler.NewProfileHandler(profileService, logger)
	authHandler := handler.NewAuthHandler(authService, validate, logger)
	invitationHandler := handler.NewInvitationHandler(invitationService, logger)
	trainingHandler := handler.NewTrainingTaskHandler(trainingService, logger)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		CommitHandler:       commitHandler,
		ProfileHandler:      profileHandler,
		AuthHandler:         authHandler,
		InvitationHandler:   invitationHandler,
		TrainingTaskHandler: trainingHandler,
		LeaderboardHandler:  leaderboardHandler,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
