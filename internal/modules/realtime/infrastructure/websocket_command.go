package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"mesaYaManager/internal/modules/realtime/domain"
)

// Command is a frame sent by a dashboard.
type Command struct {
	Action  string          `json:"action"`
	Topic   string          `json:"topic,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type CommandHandler func(ctx context.Context, client *Client, cmd Command)

type registeredCommand struct {
	handler    CommandHandler
	background bool
}

// CommandProcessor dispatches dashboard commands by action. One processor is shared by
// every client of an endpoint.
type CommandProcessor struct {
	hub      *Hub
	commands map[string]registeredCommand
	timeout  time.Duration
}

// NewCommandProcessor knows ping, subscribe and unsubscribe; endpoints register the rest.
func NewCommandProcessor(hub *Hub) *CommandProcessor {
	p := &CommandProcessor{
		hub:      hub,
		commands: make(map[string]registeredCommand),
		timeout:  10 * time.Second,
	}
	p.Register("ping", p.handlePing)
	p.Register("subscribe", p.handleSubscribe)
	p.Register("unsubscribe", p.handleUnsubscribe)
	return p
}

// Register runs handler inline on the client's read loop.
func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	p.add(action, handler, false)
}

// RegisterBackground runs handler on its own goroutine bounded by the processor timeout,
// for commands that call the backend.
func (p *CommandProcessor) RegisterBackground(action string, handler CommandHandler) {
	p.add(action, handler, true)
}

func (p *CommandProcessor) add(action string, handler CommandHandler, background bool) {
	key := normalizeAction(action)
	if handler == nil || key == "" {
		return
	}
	p.commands[key] = registeredCommand{handler: handler, background: background}
}

// Process answers unknown actions with a system.error addressed to the sender.
func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}
	action := normalizeAction(cmd.Action)
	if action == "" {
		return
	}
	cmd.Action = action

	registered, ok := p.commands[action]
	if !ok {
		slog.Debug("ws command unsupported", slog.String("userId", client.UserID()), slog.String("sessionId", client.SessionID()), slog.String("action", action))
		client.SendDomainMessage(domain.ErrorMessage(domain.SystemEntity, action, "unsupported command", time.Now()))
		return
	}
	if !registered.background {
		registered.handler(context.Background(), client, cmd)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	go func() {
		defer cancel()
		registered.handler(ctx, client, cmd)
	}()
}

func (p *CommandProcessor) handleSubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.subscribe(client, topic)
	slog.Debug("ws subscribe", slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handleUnsubscribe(_ context.Context, client *Client, cmd Command) {
	if topic := strings.TrimSpace(cmd.Topic); topic != "" {
		p.hub.unsubscribe(client, topic)
	}
}

func (p *CommandProcessor) handlePing(_ context.Context, client *Client, _ Command) {
	client.SendDomainMessage(&domain.Message{
		Topic:     domain.TopicSystemPong,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionPong,
		Timestamp: time.Now().UTC(),
	})
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
