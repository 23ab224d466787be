package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/harborcrest/userdesk/internal/console/command"
	"github.com/harborcrest/userdesk/internal/console/service"
	"github.com/harborcrest/userdesk/internal/console/store"
	"github.com/harborcrest/userdesk/internal/console/store/drivers/sqlite"
	"github.com/harborcrest/userdesk/pkg/adminsdk"
	"github.com/harborcrest/userdesk/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the console with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db  store.Store
	sdk *adminsdk.Client

	// Services
	sessionService    *service.SessionService
	userService       *service.UserService
	roleService       *service.RoleService
	departmentService *service.DepartmentService

	runner *command.Runner
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "userdesk",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.sdk = adminsdk.NewClient(cfg.APIBaseURL)
	app.sdk.HTTPClient = &http.Client{Timeout: cfg.HTTPTimeout}

	app.initServices()

	app.runner = &command.Runner{
		Sessions:    app.sessionService,
		Users:       app.userService,
		Roles:       app.roleService,
		Departments: app.departmentService,
		In:          os.Stdin,
		Out:         os.Stdout,
		Logger:      app.logger,
	}

	return app, nil
}

// Run starts the command loop and blocks until the operator quits.
func (app *Application) Run() error {
	app.logger.Info("console starting",
		"api_base_url", app.cfg.APIBaseURL,
		"version", BuildVersion,
	)

	err := app.runner.Run(context.Background())

	if closeErr := app.db.Close(); closeErr != nil {
		app.logger.Error("error closing state database", "error", closeErr)
		if err == nil {
			err = closeErr
		}
	}

	app.logger.Info("console stopped")
	return err
}

// initDatabase initializes the local state database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.StateFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize state database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply state migrations: %w", err)
	}

	app.logger.Info("state migrations applied successfully")
	return nil
}

// initServices initializes the business logic services
func (app *Application) initServices() {
	app.sessionService = &service.SessionService{
		SDK:   app.sdk,
		Store: app.db,
		TTL:   app.cfg.SessionTTL,
	}
	app.userService = service.NewUserService(app.sdk, app.cfg.SingleRowEdit)
	app.roleService = service.NewRoleService(app.sdk, app.cfg.SingleRowEdit)
	app.departmentService = service.NewDepartmentService(app.sdk)
}
