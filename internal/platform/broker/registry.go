package broker

import (
	"context"
	"log/slog"
	"strings"
)

// TopicHandler handles the frames of one topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, value []byte) error
}

type HandlerRegistry struct {
	handlers map[string]TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]TopicHandler)}
}

func (r *HandlerRegistry) Register(h TopicHandler) {
	r.handlers[strings.TrimSpace(h.Topic())] = h
}

func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

func (r *HandlerRegistry) Dispatch(ctx context.Context, topic string, value []byte) error {
	if handler, ok := r.handlers[topic]; ok {
		return handler.Handle(ctx, value)
	}
	slog.Debug("kafka frame without handler", slog.String("topic", topic))
	return nil
}

// StartKafkaConsumers runs one consumer per registered topic until ctx is done.
func StartKafkaConsumers(ctx context.Context, registry *HandlerRegistry, brokers []string, groupID string) {
	if len(brokers) == 0 {
		slog.Info("kafka disabled: no brokers configured")
		return
	}
	for _, topic := range registry.Topics() {
		go func(tp string) {
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			slog.Info("kafka consumer started", slog.String("topic", tp), slog.String("group", groupID))
			if err := consumer.Consume(ctx, registry.Dispatch); err != nil {
				slog.Info("kafka consumer stopped", slog.String("topic", tp), slog.Any("reason", err))
			}
		}(topic)
	}
}
