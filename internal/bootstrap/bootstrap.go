package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/burak/courserate/internal/app/auth"
	"github.com/burak/courserate/internal/app/repositories"
	"github.com/burak/courserate/internal/app/services"
	"github.com/burak/courserate/internal/config"
	"github.com/burak/courserate/internal/db"
	"github.com/burak/courserate/internal/pkg/logger"
	"github.com/burak/courserate/internal/pkg/passwords"
)

// App holds the wired application: the open database connection and the
// service layer the UI calls into. Everything underneath the services is an
// implementation detail.
type App struct {
	Config   *config.Config
	DB       *db.Manager
	Repos    *repositories.Repositories
	Services *services.Services
	Sessions *auth.SessionManager
}

// LoadConfigAndSetupLogger loads configuration and configures the logger
// from it.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase opens the database file, enables foreign-key enforcement
// and creates the tables if absent. Running against an existing file keeps
// its data.
func SetupDatabase(ctx context.Context, cfg *config.Config) (*db.Manager, error) {
	mgr := db.NewManager()
	if err := mgr.Open(ctx, cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := mgr.EnableForeignKeys(ctx); err != nil {
		mgr.Close()
		return nil, err
	}

	if err := mgr.CreateTables(ctx); err != nil {
		mgr.Close()
		return nil, err
	}

	return mgr, nil
}

// NewApp wires the full application from a config file path.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	cfg, err := LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}

	mgr, err := SetupDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	hasher, err := passwords.ForMode(cfg.Passwords.Mode)
	if err != nil {
		mgr.Close()
		return nil, err
	}
	if cfg.Passwords.Mode == passwords.ModeBcrypt {
		logger.Warn().Msg("Password hashing set to bcrypt; databases written in plaintext mode are not readable")
	}

	repos := repositories.NewRepositories(mgr)
	sessions := auth.NewSessionManager()
	svcs := services.NewServices(repos, sessions, hasher)

	return &App{
		Config:   cfg,
		DB:       mgr,
		Repos:    repos,
		Services: svcs,
		Sessions: sessions,
	}, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.DB.Close()
}
