package persistence

import (
	"io"
	"log/slog"
	"testing"

	"faceauth/config"
	"faceauth/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newParams(t *testing.T, cfg *config.Config) Params {
	return Params{
		Lc:     fxtest.NewLifecycle(t),
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewUserRepository_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreDriverMemory}}

	repo, err := NewUserRepository(newParams(t, cfg))
	require.NoError(t, err)
	assert.IsType(t, &memory.UserRepository{}, repo)
}

func TestNewUserRepository_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "cassandra"}}

	_, err := NewUserRepository(newParams(t, cfg))
	assert.Error(t, err)
}

func TestNewUserRepository_MongoRequiresURI(t *testing.T) {
	cfg := &config.Config{
		Store: config.StoreConfig{Driver: config.StoreDriverMongo},
		Mongo: &config.MongoConfig{Database: "faceauth", Collection: "users"},
	}

	_, err := NewUserRepository(newParams(t, cfg))
	assert.Error(t, err)
}
