package handler

import (
	"context"
	"log/slog"
	"strings"

	"mesaYaManager/internal/modules/requests/application/port"
	"mesaYaManager/internal/modules/requests/domain"
	"mesaYaManager/internal/platform/metrics"
)

// RequestEventHandler decodes raw request-event frames and feeds them to the board.
// The same handler serves the upstream socket and the Kafka topic.
type RequestEventHandler struct {
	topic  string
	source string
	sink   port.EventSink
}

func NewRequestEventHandler(topic, source string, sink port.EventSink) *RequestEventHandler {
	return &RequestEventHandler{
		topic:  strings.TrimSpace(topic),
		source: strings.TrimSpace(source),
		sink:   sink,
	}
}

func (h *RequestEventHandler) Topic() string { return h.topic }

// Handle returns decode errors to the caller, which logs and moves on.
func (h *RequestEventHandler) Handle(ctx context.Context, value []byte) error {
	metrics.RequestEventsTotal.WithLabelValues(h.source).Inc()
	event, err := domain.DecodeEvent(value)
	if err != nil {
		metrics.RequestEventsRejectedTotal.WithLabelValues(h.source).Inc()
		slog.Warn("request event rejected", slog.String("source", h.source), slog.Int("bytes", len(value)), slog.Any("error", err))
		return err
	}
	slog.Debug("request event received", slog.String("source", h.source), slog.Any("requestId", event.RequestID))
	return h.sink.Ingest(ctx, event)
}
