package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEvent marks upstream payloads that cannot be turned into a request.
var ErrInvalidEvent = errors.New("invalid request event")

// Event is the payload the backend pushes on the request-events channel.
type Event struct {
	RequestType     string          `json:"request_type"`
	RequestID       *int64          `json:"request_id"`
	TableID         int64           `json:"table_id"`
	CustomerRequest CustomerRequest `json:"customer_request"`
}

// CustomerRequest carries the lifecycle fields nested in an Event.
type CustomerRequest struct {
	CreatedAt Timestamp `json:"created_at"`
	IsHandled bool      `json:"is_handled"`
}

// DecodeEvent parses a raw socket or broker frame.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if err := event.Validate(); err != nil {
		return Event{}, err
	}
	return event, nil
}

func (e Event) Validate() error {
	if e.RequestID == nil {
		return fmt.Errorf("%w: missing request_id", ErrInvalidEvent)
	}
	return nil
}

// Request maps the event to the request it describes.
func (e Event) Request() Request {
	var id int64
	if e.RequestID != nil {
		id = *e.RequestID
	}
	return Request{
		Type:      strings.TrimSpace(e.RequestType),
		ID:        id,
		TableID:   e.TableID,
		CreatedAt: e.CustomerRequest.CreatedAt,
		IsHandled: e.CustomerRequest.IsHandled,
	}
}
