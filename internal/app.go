// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "github.com/hethus/Bank-Control-API/internal/api"
	"github.com/hethus/Bank-Control-API/internal/api/handler"
	"github.com/hethus/Bank-Control-API/internal/auth"
	"github.com/hethus/Bank-Control-API/internal/config"
	"github.com/hethus/Bank-Control-API/internal/repository"
	"github.com/hethus/Bank-Control-API/internal/repository/postgres"
	"github.com/hethus/Bank-Control-API/internal/service"
	"github.com/hethus/Bank-Control-API/internal/util"
	"github.com/hethus/Bank-Control-API/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Tokens *auth.TokenManager

	// Repositories
	UserRepository     repository.UserRepository
	BankRepository     repository.BankRepository
	CreditRepository   repository.CreditRepository
	HistoricRepository repository.HistoricRepository

	// Services
	UserService     service.UserService
	BankService     service.BankService
	CreditService   service.CreditService
	HistoricService service.HistoricService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Token manager
	app.Tokens = auth.NewTokenManager(app.Config.JWTSecret, app.Config.JWTTTL)

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.BankRepository = postgres.NewBankRepository(app.DB)
	app.CreditRepository = postgres.NewCreditRepository(app.DB)
	app.HistoricRepository = postgres.NewHistoricRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 6. Initialize Services
	app.UserService = service.NewUserService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.BankRepository,
		app.HistoricRepository,
		app.Tokens,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.BankService = service.NewBankService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.BankRepository,
		app.CreditRepository,
		app.HistoricRepository,
		app.Config.BanksListLiveOnly,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.CreditService = service.NewCreditService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.BankRepository,
		app.CreditRepository,
		app.HistoricRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.HistoricService = service.NewHistoricService(
		app.DB,
		app.UserRepository,
		app.HistoricRepository,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	userHandler := handler.NewUserHandler(app.UserService, app.Logger)
	bankHandler := handler.NewBankHandler(app.BankService, app.Logger)
	creditHandler := handler.NewCreditHandler(app.CreditService, app.Logger)
	historicHandler := handler.NewHistoricHandler(app.HistoricService, app.Logger)
	app.HTTPHandler = router.NewRouter(userHandler, bankHandler, creditHandler, historicHandler, app.Tokens, app.Logger)
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
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
