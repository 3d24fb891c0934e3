// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"

	"papertrade/internal/api"
	"papertrade/internal/api/handler"
	"papertrade/internal/config"
	"papertrade/internal/quote"
	"papertrade/internal/repository"
	"papertrade/internal/repository/postgres"
	"papertrade/internal/service"
	"papertrade/internal/util"
	"papertrade/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client

	// Repositories
	UserRepository        repository.UserRepository
	TransactionRepository repository.TransactionRepository

	// Quote source
	Quotes quote.Source

	// Services
	AuthService      service.AuthService
	PortfolioService service.PortfolioService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	redisClient, err := db.NewRedisClient(app.Config.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.Redis = redisClient
	app.Logger.Info("Redis connection established.")

	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	provider := quote.NewAlphaVantageClient(app.Config.Quote.BaseURL, app.Config.Quote.APIKey, app.Config.Quote.Timeout)
	app.Quotes = quote.NewCachedSource(provider, app.Redis, app.Logger)
	app.Logger.Info("Quote source initialized.")

	app.AuthService = service.NewAuthService(
		app.DB,
		app.UserRepository,
		app.Logger,
		app.Config.Auth.JWTSecret,
		app.Config.Auth.TokenTTL,
	)
	app.PortfolioService = service.NewPortfolioService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.UserRepository,
		app.TransactionRepository,
		app.Quotes,
		app.Logger,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	authHandler := handler.NewAuthHandler(app.AuthService, app.Logger)
	portfolioHandler := handler.NewPortfolioHandler(app.PortfolioService, app.Logger, api.UserIDFromContext)
	app.HTTPHandler = api.NewRouter(authHandler, portfolioHandler, app.Config.Auth.JWTSecret, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			app.Logger.Error("Failed to close redis connection", "error", err)
			return fmt.Errorf("failed to close redis connection: %w", err)
		}
		app.Logger.Info("Redis connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
