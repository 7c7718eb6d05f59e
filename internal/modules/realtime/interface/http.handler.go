package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"mesaYaManager/internal/modules/realtime/domain"
	"mesaYaManager/internal/modules/realtime/infrastructure"
	requests "mesaYaManager/internal/modules/requests/domain"
	"mesaYaManager/internal/shared/auth"
)

// BoardSource renders the current board for a freshly connected dashboard.
type BoardSource interface {
	View() requests.BoardView
}

// Acknowledger closes a request on behalf of a dashboard session.
type Acknowledger interface {
	Execute(ctx context.Context, token string, id int64) error
}

// Refresher reloads the board from the backend.
type Refresher interface {
	Resync(ctx context.Context, token string) error
}

// DashboardOptions tunes the dashboard websocket endpoint.
type DashboardOptions struct {
	AllowedOrigins []string
	SendBuffer     int
}

// NewDashboardWebsocketHandler exposes /ws/dashboard. The session has already been checked by
// auth.RequireManager; the handler upgrades, subscribes the client to the requests topics and
// sends the current board.
func NewDashboardWebsocketHandler(
	hub *infrastructure.Hub,
	board BoardSource,
	ack Acknowledger,
	refresher Refresher,
	opts DashboardOptions,
) echo.HandlerFunc {
	upgrader := websocket.Upgrader{CheckOrigin: originChecker(opts.AllowedOrigins)}
	commands := dashboardCommands(hub, ack, refresher)

	return func(c echo.Context) error {
		logger := c.Logger()
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.String("ip", peerIP), slog.Any("error", err))
			logger.Errorf("ws upgrade failed ip=%s reqID=%s: %v", peerIP, requestID, err)
			return nil
		}

		var (
			userID string
			roles  []string
		)
		if claims := auth.ClaimsFrom(c); claims != nil {
			userID = claims.Subject
			roles = claims.Roles
		}
		sessionID := uuid.NewString()

		client := infrastructure.NewClient(hub, conn, userID, sessionID, auth.TokenFrom(c), opts.SendBuffer, commands)
		topics := domain.DashboardTopics()
		hub.AttachClient(client, topics)

		go client.WritePump()
		go client.ReadPump()

		now := time.Now()
		client.SendDomainMessage(&domain.Message{
			Topic:    domain.TopicSystemConnected,
			Entity:   domain.SystemEntity,
			Action:   domain.ActionConnected,
			Metadata: map[string]string{"userId": userID, "sessionId": sessionID},
			Data: map[string]interface{}{
				"allowedTopics": topics,
				"roles":         roles,
			},
			Timestamp: now.UTC(),
		})
		client.SendDomainMessage(domain.NewMessage(domain.RequestsEntity, domain.ActionSnapshot, board.View(), now))

		slog.Info("ws dashboard connected", slog.String("userId", userID), slog.String("sessionId", sessionID), slog.Int("clients", hub.ClientCount()))
		logger.Infof("ws connected user=%s session=%s ip=%s reqID=%s", userID, sessionID, peerIP, requestID)
		return nil
	}
}

// dashboardCommands adds acknowledge and refresh to the built-in commands.
func dashboardCommands(hub *infrastructure.Hub, ack Acknowledger, refresher Refresher) *infrastructure.CommandProcessor {
	commands := infrastructure.NewCommandProcessor(hub)
	commands.RegisterBackground("acknowledge", func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		var payload domain.AcknowledgeCommand
		if err := json.Unmarshal(cmd.Payload, &payload); err != nil || payload.ID <= 0 {
			sendCommandError(client, cmd.Action, "invalid request id")
			return
		}
		if err := ack.Execute(ctx, client.Token(), payload.ID); err != nil {
			slog.Warn("ws acknowledge failed", slog.String("userId", client.UserID()), slog.Int64("requestId", payload.ID), slog.Any("error", err))
			sendCommandError(client, cmd.Action, commandFailure(err))
		}
	})
	commands.RegisterBackground("refresh", func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		if err := refresher.Resync(ctx, client.Token()); err != nil {
			sendCommandError(client, cmd.Action, commandFailure(err))
		}
	})
	return commands
}

func commandFailure(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "backend timeout"
	}
	return "backend request failed"
}

func sendCommandError(client *infrastructure.Client, command, reason string) {
	msg := domain.ErrorMessage(domain.RequestsEntity, command, reason, time.Now())
	msg.Metadata["sessionId"] = client.SessionID()
	client.SendDomainMessage(msg)
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[strings.TrimRight(strings.ToLower(strings.TrimSpace(origin)), "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := strings.ToLower(strings.TrimSpace(r.Header.Get("Origin")))
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
