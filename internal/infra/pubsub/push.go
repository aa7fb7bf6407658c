package pubsub

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"faceauth/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	pushTimeout      = 5 * time.Second
	pushSubscription = "projects/local/subscriptions/account-events"
)

// PushRequest is the body a Pub/Sub push subscription delivers. The push
// publisher sends the same shape so a local consumer can be written once.
type PushRequest struct {
	Message      PushMessage `json:"message"`
	Subscription string      `json:"subscription"`
}

// PushMessage is the message part of a PushRequest. Data is base64 on the wire.
type PushMessage struct {
	Data        []byte            `json:"data"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	MessageID   string            `json:"messageId"`
	OrderingKey string            `json:"orderingKey,omitempty"`
	PublishTime time.Time         `json:"publishTime"`
}

// PushPublisher posts account events straight to an HTTP consumer, standing
// in for a push subscription during development.
type PushPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewPushPublisher creates a publisher posting to endpoint.
func NewPushPublisher(endpoint string, logger *slog.Logger) *PushPublisher {
	return &PushPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: pushTimeout},
		logger:     logger,
		now:        time.Now,
	}
}

// PublishAccountEvent delivers one event. Any non-2xx answer is an error.
func (p *PushPublisher) PublishAccountEvent(ctx context.Context, event *service.AccountEvent) error {
	env, err := newEnvelope(event)
	if err != nil {
		return err
	}

	body, err := json.Marshal(PushRequest{
		Subscription: pushSubscription,
		Message: PushMessage{
			Data:        env.data,
			Attributes:  env.attributes,
			MessageID:   event.EventID,
			OrderingKey: env.orderingKey,
			PublishTime: p.now().UTC(),
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode push request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "push %s", event.Type)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return errors.Errorf("push consumer answered %d for %s", resp.StatusCode, event.Type)
	}

	p.logger.Debug("Account event pushed",
		slog.String("event_type", event.Type),
		slog.String("event_id", event.EventID),
	)

	return nil
}

// Close is a no-op; the HTTP client holds no dedicated resources.
func (p *PushPublisher) Close() error {
	return nil
}
