package pubsub

import (
	"context"
	"log/slog"

	"faceauth/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// TopicPublisher publishes account events to a Google Cloud Pub/Sub topic
// with per-user ordering keys.
type TopicPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewTopicPublisher connects to projectID and fails if topicID does not exist.
func NewTopicPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (*TopicPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pubsub client")
	}

	topic := "projects/" + projectID + "/topics/" + topicID
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topic}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "topic %s is not reachable", topic)
	}

	publisher := client.Publisher(topicID)
	publisher.EnableMessageOrdering = true

	return &TopicPublisher{
		client:    client,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// PublishAccountEvent blocks until the server acknowledges the event or ctx ends.
func (p *TopicPublisher) PublishAccountEvent(ctx context.Context, event *service.AccountEvent) error {
	env, err := newEnvelope(event)
	if err != nil {
		return err
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:        env.data,
		Attributes:  env.attributes,
		OrderingKey: env.orderingKey,
	})

	serverID, err := result.Get(ctx)
	if err != nil {
		if env.orderingKey != "" {
			// A failed publish pauses its ordering key until resumed
			p.publisher.ResumePublish(env.orderingKey)
		}

		return errors.Wrapf(err, "publish %s", event.Type)
	}

	p.logger.Debug("Account event published",
		slog.String("event_type", event.Type),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close flushes pending messages and closes the client.
func (p *TopicPublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}
