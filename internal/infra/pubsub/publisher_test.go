package pubsub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"faceauth/config"
	"faceauth/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loginEvent() *service.AccountEvent {
	return &service.AccountEvent{
		EventID:    "evt-1",
		Type:       service.EventUserLoggedIn,
		RequestID:  "req-1",
		UserID:     "user-1",
		Email:      "a@x.com",
		Method:     "face",
		OccurredAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestNewEventPublisher_DisabledDropsEvents(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	publisher, err := NewEventPublisher(PublisherParams{
		Lc:     lc,
		Ctx:    context.Background(),
		Config: &config.Config{},
		Logger: testLogger(),
	})
	require.NoError(t, err)

	assert.IsType(t, &discardPublisher{}, publisher)
	assert.NoError(t, publisher.PublishAccountEvent(context.Background(), loginEvent()))

	lc.RequireStart().RequireStop()
}

func TestNewEventPublisher_Local(t *testing.T) {
	publisher, err := NewEventPublisher(PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{PubSub: &config.PubSubConfig{Provider: ProviderLocal, LocalEndpoint: "http://localhost:9"}},
		Logger: testLogger(),
	})
	require.NoError(t, err)

	assert.IsType(t, &PushPublisher{}, publisher)
}

func TestNewEventPublisher_InvalidConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  *config.PubSubConfig
	}{
		{"local without endpoint", &config.PubSubConfig{Provider: ProviderLocal}},
		{"google without project", &config.PubSubConfig{Provider: ProviderGoogle, TopicID: "t"}},
		{"google without topic", &config.PubSubConfig{Provider: ProviderGoogle, ProjectID: "p"}},
		{"unknown provider", &config.PubSubConfig{Provider: "kafka"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEventPublisher(PublisherParams{
				Lc:     fxtest.NewLifecycle(t),
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tc.cfg},
				Logger: testLogger(),
			})
			assert.Error(t, err)
		})
	}
}

func TestPushPublisher_PublishAccountEvent(t *testing.T) {
	var (
		received  PushRequest
		requestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publishedAt := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	publisher := NewPushPublisher(server.URL, testLogger())
	publisher.now = func() time.Time { return publishedAt }

	require.NoError(t, publisher.PublishAccountEvent(context.Background(), loginEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, pushSubscription, received.Subscription)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, "user-1", received.Message.OrderingKey)
	assert.True(t, publishedAt.Equal(received.Message.PublishTime))
	assert.Equal(t, "face", received.Message.Attributes[AttrLoginMethod])

	var event service.AccountEvent
	require.NoError(t, json.Unmarshal(received.Message.Data, &event))
	assert.Equal(t, "a@x.com", event.Email)
	assert.Equal(t, service.EventUserLoggedIn, event.Type)
}

func TestPushPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := NewPushPublisher(server.URL, testLogger()).PublishAccountEvent(context.Background(), loginEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestPushPublisher_NilEvent(t *testing.T) {
	err := NewPushPublisher("http://localhost:9", testLogger()).PublishAccountEvent(context.Background(), nil)

	assert.Error(t, err)
}

func TestNewEnvelope(t *testing.T) {
	env, err := newEnvelope(&service.AccountEvent{EventID: "e", Type: service.EventFaceChecked, Email: "a@x.com"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{AttrEventID: "e", AttrEventType: service.EventFaceChecked}, env.attributes)
	assert.Empty(t, env.orderingKey)
	assert.JSONEq(t, `{"event_id":"e","type":"face.checked","email":"a@x.com","occurred_at":"0001-01-01T00:00:00Z"}`, string(env.data))
}
