package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/forgo/freelancehub/api/internal/config"
	"github.com/forgo/freelancehub/api/internal/database"
	"github.com/forgo/freelancehub/api/internal/repository/memstore"
	"github.com/forgo/freelancehub/api/internal/repository/mongostore"
	"github.com/forgo/freelancehub/api/internal/service"
)

// Backend bundles the stores for one DB_DRIVER
type Backend struct {
	Accounts service.AccountStore
	Projects service.ProjectStore
	// Store is nil for the memory driver
	Store interface {
		Ping(ctx context.Context) error
	}
	close func() error
}

// Close releases the underlying connection
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects to the configured driver, prepares its schema and returns
// the account and project stores.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverSurrealDB:
		db := database.NewSurrealDB(database.Config{
			Host:      cfg.Host,
			Port:      cfg.Port,
			User:      cfg.User,
			Password:  cfg.Password,
			Namespace: cfg.Namespace,
			Database:  cfg.Database,
		})
		if err := db.Connect(ctx); err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("connected to database",
			slog.String("driver", cfg.Driver),
			slog.String("host", cfg.Host),
			slog.String("database", cfg.Database),
		)
		return &Backend{
			Accounts: NewAccountRepository(db),
			Projects: NewProjectRepository(db),
			Store:    db,
			close:    db.Close,
		}, nil

	case config.DriverMongoDB:
		db := database.NewMongo(database.MongoConfig{
			URI:      cfg.MongoURL,
			Database: cfg.MongoDatabase,
		})
		if err := db.Connect(ctx); err != nil {
			return nil, err
		}
		if err := db.EnsureIndexes(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("connected to database",
			slog.String("driver", cfg.Driver),
			slog.String("database", cfg.MongoDatabase),
		)
		return &Backend{
			Accounts: mongostore.NewAccountStore(db.Collection(database.AccountsCollection)),
			Projects: mongostore.NewProjectStore(db.Collection(database.ProjectsCollection)),
			Store:    db,
			close:    db.Close,
		}, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		return &Backend{
			Accounts: memstore.NewAccountStore(),
			Projects: memstore.NewProjectStore(),
		}, nil
	}

	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
}
