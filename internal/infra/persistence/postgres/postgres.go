package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"faceauth/config"
	"faceauth/internal/domain/lifecycle"
	"faceauth/internal/errors"
	"faceauth/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolCheckInterval = 5 * time.Second
	poolWaitWarning   = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	Lc fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the users database. The connection is verified, and the users
// table migrated when store.autoMigrate is set, in the OnStart hook.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres section is required for the postgres store")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	// Surface unique violations as gorm.ErrDuplicatedKey
	db.Config.TranslateError = true
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newQueryLogger(params.Logger, params.Config.Env.Debug),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	watcher := newPoolWatcher(params.Logger, sqlDB.Stats)
	watchCtx, stopWatch := context.WithCancel(context.Background())

	params.Lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}
			if params.Config.Store.AutoMigrate {
				if err := migrate(ctx, db); err != nil {
					return err
				}
			}

			go watcher.run(watchCtx, poolCheckInterval)

			return nil
		},
		OnStop: func(context.Context) error {
			stopWatch()

			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

// migrate creates or updates the users table and its unique email index.
func migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&model.UserModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate users table")
	}

	return nil
}

// poolWatcher reports requests that had to wait for a pooled connection.
type poolWatcher struct {
	logger *slog.Logger
	stats  func() sql.DBStats
	prev   sql.DBStats
}

func newPoolWatcher(logger *slog.Logger, stats func() sql.DBStats) *poolWatcher {
	return &poolWatcher{logger: logger, stats: stats, prev: stats()}
}

func (w *poolWatcher) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// check logs the waits since the previous call: a warning once their total
// reaches poolWaitWarning, debug otherwise.
func (w *poolWatcher) check(ctx context.Context) {
	cur := w.stats()
	waits := cur.WaitCount - w.prev.WaitCount
	waited := cur.WaitDuration - w.prev.WaitDuration
	w.prev = cur

	if waits <= 0 {
		return
	}

	level := slog.LevelDebug
	if waited >= poolWaitWarning {
		level = slog.LevelWarn
	}

	w.logger.LogAttrs(ctx, level, "Connection pool wait",
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avg_wait", waited/time.Duration(waits)),
		slog.Int("open", cur.OpenConnections),
		slog.Int("in_use", cur.InUse),
		slog.Int("max_open", cur.MaxOpenConnections),
	)
}
