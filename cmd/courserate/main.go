package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"

	"github.com/burak/courserate/internal/bootstrap"
	"github.com/burak/courserate/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", filepath.Join("configs", "config.yaml"), "path to the configuration file")
	reset := flag.Bool("reset", false, "wipe all rows from all tables and exit")
	flag.Parse()

	ctx := context.Background()

	app, err := bootstrap.NewApp(ctx, *configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer app.Close()

	if *reset {
		if err := app.DB.ClearTables(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to clear tables")
			os.Exit(1)
		}
		logger.Info().Msg("All tables cleared")
		return
	}

	logger.Info().
		Str("database", app.Config.Database.Path).
		Msg("Database ready; service layer initialized")
}
