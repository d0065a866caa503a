package setup

import (
	"log/slog"

	"oruma/app"
	"oruma/config"
	"oruma/database"
)

// InitDatabase opens the configured database through a pool and creates the schema
func InitDatabase(cfg *config.Config, logger *slog.Logger) (*database.Pool, *database.Handle, error) {
	pool := database.NewPool(cfg.DataDir, logger)
	handle := pool.Get(cfg.DBName)

	// Open eagerly so a bad path fails at startup rather than on the first request
	if _, err := handle.DB(); err != nil {
		pool.Close()
		return nil, nil, err
	}

	logger.Info("database initialized", "name", cfg.DBName, "dir", cfg.DataDir)
	return pool, handle, nil
}

// InitApp initializes the application with all dependencies
func InitApp(handle *database.Handle, cfg *config.Config, logger *slog.Logger) *app.App {
	application := app.New(handle, cfg.ImportMaxRecords, logger)
	logger.Info("application initialized", "import_max_records", cfg.ImportMaxRecords)
	return application
}

// Shutdown performs graceful shutdown of all services
func Shutdown(pool *database.Pool, logger *slog.Logger) {
	logger.Info("shutting down services...")

	if pool != nil {
		if err := pool.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
			return
		}
		logger.Info("database closed")
	}
}
