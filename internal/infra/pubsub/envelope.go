package pubsub

import (
	"encoding/json"

	"faceauth/internal/domain/service"

	"github.com/pkg/errors"
)

// Attribute keys set on every account event message.
const (
	AttrEventID     = "event_id"
	AttrEventType   = "event_type"
	AttrUserID      = "user_id"
	AttrRequestID   = "request_id"
	AttrLoginMethod = "login_method"
)

// envelope is an account event ready for the wire.
type envelope struct {
	data       []byte
	attributes map[string]string
	// Events of one user share a key so consumers see them in order.
	orderingKey string
}

func newEnvelope(event *service.AccountEvent) (*envelope, error) {
	if event == nil {
		return nil, errors.New("nil account event")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode account event")
	}

	attributes := map[string]string{
		AttrEventID:   event.EventID,
		AttrEventType: event.Type,
	}
	for key, value := range map[string]string{
		AttrUserID:      event.UserID,
		AttrRequestID:   event.RequestID,
		AttrLoginMethod: event.Method,
	} {
		if value != "" {
			attributes[key] = value
		}
	}

	return &envelope{
		data:        data,
		attributes:  attributes,
		orderingKey: event.UserID,
	}, nil
}
