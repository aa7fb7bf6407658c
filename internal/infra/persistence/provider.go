// Package persistence selects the credential store backend from configuration.
package persistence

import (
	"log/slog"

	"faceauth/config"
	"faceauth/internal/domain/repository"
	"faceauth/internal/infra/persistence/memory"
	"faceauth/internal/infra/persistence/mongo"
	"faceauth/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for UserRepository, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewUserRepository opens the configured store and returns its repository.
func NewUserRepository(params Params) (repository.UserRepository, error) {
	driver := params.Config.Store.Driver
	logger := params.Logger.With(slog.String("store", driver))

	switch driver {
	case config.StoreDriverMongo, "":
		collection, err := mongo.New(mongo.Params{Lc: params.Lc, Config: params.Config, Logger: logger})
		if err != nil {
			return nil, err
		}
		logger.Info("Using MongoDB credential store",
			slog.String("database", params.Config.Mongo.Database),
			slog.String("collection", params.Config.Mongo.Collection),
		)

		return mongo.NewUserRepository(collection), nil

	case config.StoreDriverPostgres:
		db, err := postgres.New(postgres.Params{Lc: params.Lc, Config: params.Config, Logger: logger})
		if err != nil {
			return nil, err
		}
		logger.Info("Using PostgreSQL credential store")

		return postgres.NewUserRepository(db), nil

	case config.StoreDriverMemory:
		logger.Warn("Using in-memory credential store, users are lost on restart")

		return memory.NewUserRepository(), nil

	default:
		return nil, errors.Errorf("unknown store driver: %s", driver)
	}
}

// Module provides the persistence FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewUserRepository),
)
