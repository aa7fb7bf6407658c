// Package mongo contains the document store implementation of the persistence layer.
package mongo

import (
	"context"
	"log/slog"

	"faceauth/config"
	"faceauth/internal/domain/lifecycle"
	"faceauth/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// New connects a client and returns the users collection. The connection is
// verified and the email index ensured on start.
func New(params Params) (*mongo.Collection, error) {
	cfg := params.Config.Mongo
	if cfg == nil || cfg.URI == "" {
		return nil, errors.New("mongo.uri is required")
	}

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetMonitor(newCommandMonitor(params.Logger))

	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	collection := client.Database(cfg.Database).Collection(cfg.Collection)

	params.Lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, readpref.Primary()); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}

			return EnsureIndexes(ctx, collection)
		},
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return collection, nil
}

// EnsureIndexes creates the unique email index used to reject duplicate registrations.
func EnsureIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create email index")
	}

	return nil
}

// newCommandMonitor routes failed commands to slog.
func newCommandMonitor(logger *slog.Logger) *event.CommandMonitor {
	return &event.CommandMonitor{
		Failed: func(ctx context.Context, evt *event.CommandFailedEvent) {
			logger.LogAttrs(ctx, slog.LevelWarn, "MongoDB command failed",
				slog.String("command", evt.CommandName),
				slog.Int64("request_id", evt.RequestID),
				slog.Duration("elapsed", evt.Duration),
				slog.String("error", evt.Failure),
			)
		},
	}
}
