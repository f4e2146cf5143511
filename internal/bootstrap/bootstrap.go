package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emre/communia/internal/app/controllers"
	appMigrations "github.com/emre/communia/internal/app/migrations"
	appRepos "github.com/emre/communia/internal/app/repositories"
	appRoutes "github.com/emre/communia/internal/app/routes"
	appServices "github.com/emre/communia/internal/app/services"
	"github.com/emre/communia/internal/config"
	"github.com/emre/communia/internal/db"
	appMiddleware "github.com/emre/communia/internal/middleware"
	pkgAuth "github.com/emre/communia/internal/pkg/auth"
	"github.com/emre/communia/internal/pkg/logger"
	"github.com/emre/communia/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	UserService         appServices.UserService
	CommunityService    appServices.CommunityService
	ChatService         appServices.ChatService
	EventService        appServices.EventService
	MessageService      appServices.MessageService
	UserController      *appControllers.UserController
	CommunityController *appControllers.CommunityController
	ChatController      *appControllers.ChatController
	EventController     *appControllers.EventController
	MessageController   *appControllers.MessageController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services and
// controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.User, deps.JWTService, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.User, deps.Repos.Chat, lgr)
	deps.CommunityService = appServices.NewCommunityService(
		deps.Repos.Community,
		deps.Repos.Chat,
		deps.Repos.Thread,
		deps.Repos.User,
		deps.Repos.Event,
		database,
		lgr,
	)
	deps.ChatService = appServices.NewChatService(
		deps.Repos.Chat,
		deps.Repos.Thread,
		deps.Repos.Community,
		deps.Repos.User,
		database,
		lgr,
	)
	deps.EventService = appServices.NewEventService(deps.Repos.Event, deps.Repos.Community, database, lgr)
	deps.MessageService = appServices.NewMessageService(deps.Repos.Chat, deps.Repos.Thread, database, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthService, lgr)

	deps.UserController = appControllers.NewUserController(deps.AuthService, deps.UserService, lgr)
	deps.CommunityController = appControllers.NewCommunityController(deps.CommunityService, lgr)
	deps.ChatController = appControllers.NewChatController(deps.ChatService, lgr)
	deps.EventController = appControllers.NewEventController(deps.EventService, lgr)
	deps.MessageController = appControllers.NewMessageController(deps.MessageService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.UserController,
		deps.CommunityController,
		deps.ChatController,
		deps.EventController,
		deps.MessageController,
		deps.AuthMiddleware,
		cfg.Server.APIKey,
	)

	return router
}
