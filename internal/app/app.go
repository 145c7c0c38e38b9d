// Package app wires the configured note store into a notes.Service.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"weekboard/internal/config"
	"weekboard/internal/db"
	"weekboard/internal/notes"
)

// App bundles the note service with the resources it holds open.
type App struct {
	Notes  *notes.Service
	closer func(context.Context) error
}

// Open connects to the store selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		logger.Info("connecting to MongoDB", "uri", cfg.Store.MongoURI)
		database, err := db.ConnectMongo(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
		if err != nil {
			return nil, err
		}
		repo := notes.NewMongoRepo(database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Warn("failed to ensure indexes", "error", err)
		}
		return &App{
			Notes:  notes.NewService(repo),
			closer: database.Client().Disconnect,
		}, nil

	case config.DriverSQLite:
		logger.Info("opening SQLite database", "path", cfg.Store.SQLitePath)
		sqlDB, err := db.OpenSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		repo := notes.NewSQLiteRepo(sqlDB)
		if err := repo.Migrate(ctx); err != nil {
			sqlDB.Close()
			return nil, err
		}
		return &App{
			Notes:  notes.NewService(repo),
			closer: func(context.Context) error { return sqlDB.Close() },
		}, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store; notes are lost on exit")
		return &App{Notes: notes.NewService(notes.NewMemoryRepo())}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// Close releases the store connection.
func (a *App) Close(ctx context.Context) error {
	if a.closer == nil {
		return nil
	}
	return a.closer(ctx)
}
