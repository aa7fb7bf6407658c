// Package pubsub publishes account events for asynchronous consumers.
package pubsub

import (
	"context"
	"log/slog"

	"faceauth/config"
	"faceauth/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Publisher providers.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher selects the account event publisher from pubsub.provider.
// An empty provider drops events.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	logger := params.Logger.With(slog.String("component", "account_events"))

	publisher, err := newPublisher(params.Ctx, params.Config.PubSub, logger)
	if err != nil {
		return nil, err
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}

func newPublisher(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
	if cfg == nil || cfg.Provider == "" {
		logger.Info("Account events disabled")

		return &discardPublisher{logger: logger}, nil
	}

	switch cfg.Provider {
	case ProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("pubsub.localEndpoint is required for the local provider")
		}
		logger.Info("Pushing account events over HTTP", slog.String("endpoint", cfg.LocalEndpoint))

		return NewPushPublisher(cfg.LocalEndpoint, logger), nil

	case ProviderGoogle:
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return nil, errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}
		logger.Info("Publishing account events to Pub/Sub",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		return NewTopicPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
