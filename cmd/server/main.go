package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/talent-pipeline/internal/config"
	"github.com/fadilmartias/talent-pipeline/internal/domain/fiber/handler"
	"github.com/fadilmartias/talent-pipeline/internal/events"
	"github.com/fadilmartias/talent-pipeline/internal/middleware"
	"github.com/fadilmartias/talent-pipeline/internal/model"
	"github.com/fadilmartias/talent-pipeline/internal/repository"
	"github.com/fadilmartias/talent-pipeline/internal/scoring"
	"github.com/fadilmartias/talent-pipeline/internal/service"
	"github.com/fadilmartias/talent-pipeline/internal/storage"
	"github.com/fadilmartias/talent-pipeline/internal/usecase"
	"github.com/fadilmartias/talent-pipeline/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	storageConfig := config.LoadStorageConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: int(storageConfig.MaxUpload) + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.HeaderUserID + ", " + middleware.HeaderUserEmail + ", " + middleware.HeaderUserRole,
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.Identity())
	app.Use(middleware.RateLimiter(120, time.Minute))

	db := ConnectDB()

	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	companyRepo := repository.NewCompanyRepository(db)

	store, err := storage.NewLocalStore(storageConfig.Dir, appConfig.BaseURL, storageConfig.SigningKey)
	if err != nil {
		log.Fatal(err)
	}

	analyzer, embedder := textServices(ctx)
	policy := scoring.NewPolicy(analyzer)

	publisher := newPublisher()
	defer publisher.Close()

	presets := config.LoadPipelineConfig()
	stages := presets.Stages()

	applicationUC := usecase.NewApplicationUsecase(appRepo, jobRepo, profileRepo, store, policy, publisher, stages)
	pipelineUC := usecase.NewPipelineUsecase(appRepo, jobRepo, publisher, stages)
	jobUC := usecase.NewJobUsecase(jobRepo, profileRepo, embedder, presets).WithCompanies(companyRepo)
	companyUC := usecase.NewCompanyUsecase(companyRepo, jobRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, policy)

	handler.NewApplicationHandler(applicationUC, storageConfig.MaxUpload).RegisterRoutes(app)
	handler.NewPipelineHandler(pipelineUC).RegisterRoutes(app)
	handler.NewJobHandler(jobUC).RegisterRoutes(app)
	handler.NewCompanyHandler(companyUC).RegisterRoutes(app)
	handler.NewProfileHandler(profileUC, storageConfig.MaxUpload).RegisterRoutes(app)
	handler.NewFilesHandler(store).RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// textServices picks the analyzer for scoring and the embedder for job
// recommendations. Either may be nil; both features degrade without them.
func textServices(ctx context.Context) (scoring.Analyzer, usecase.Embedder) {
	var (
		analyzer scoring.Analyzer
		embedder usecase.Embedder
	)

	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		log.Printf("Gemini unavailable, job recommendations disabled: %v", err)
	} else {
		embedder = gemini
	}

	switch provider := config.LoadAIConfig().Provider; provider {
	case config.ProviderGemini:
		if gemini != nil {
			analyzer = gemini
		}
	case config.ProviderOpenRouter:
		analyzer = service.NewOpenRouterService()
	case config.ProviderNone:
	default:
		log.Printf("Warning: unknown AI_PROVIDER %q, scoring runs with placeholder results", provider)
	}
	return analyzer, embedder
}

func newPublisher() events.Publisher {
	cfg := config.LoadRabbitMQConfig()
	if cfg.URL == "" {
		return events.LogPublisher{}
	}
	p, err := events.NewRabbitMQPublisher(cfg.URL, cfg.Queue)
	if err != nil {
		log.Printf("RabbitMQ unavailable, logging events instead: %v", err)
		return events.LogPublisher{}
	}
	return p
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	for _, ext := range []string{"vector", "uuid-ossp"} {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "` + ext + `"`).Error; err != nil {
			log.Fatalf("could not enable extension %s: %v", ext, err)
		}
	}
	err = db.AutoMigrate(&model.Company{}, &model.Job{}, &model.Application{}, &model.Profile{}, &model.StageTransition{})
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
