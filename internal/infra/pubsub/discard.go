package pubsub

import (
	"context"
	"log/slog"

	"faceauth/internal/domain/service"
)

// discardPublisher drops events when no provider is configured.
type discardPublisher struct {
	logger *slog.Logger
}

func (p *discardPublisher) PublishAccountEvent(_ context.Context, event *service.AccountEvent) error {
	p.logger.Debug("Account event dropped, no publisher configured",
		slog.String("event_type", event.Type),
		slog.String("event_id", event.EventID),
	)

	return nil
}

func (p *discardPublisher) Close() error {
	return nil
}
