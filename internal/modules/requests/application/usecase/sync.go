package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mesaYaManager/internal/modules/requests/application/port"
	"mesaYaManager/internal/modules/requests/domain"
	"mesaYaManager/internal/platform/metrics"
)

const (
	ActionSnapshot = "snapshot"
	ActionEvent    = "event"
	ActionHandled  = "handled"
	ActionTick     = "tick"
)

// SyncUseCase keeps the board aligned with the backend: initial load, live events and periodic resync.
type SyncUseCase struct {
	board     *Board
	api       port.RequestsAPI
	publisher port.BoardPublisher
	token     string
	now       func() time.Time
}

// NewSyncUseCase wires the board to the backend. token is the service credential used for
// snapshot loads that are not triggered by a browser session.
func NewSyncUseCase(board *Board, api port.RequestsAPI, publisher port.BoardPublisher, token string) *SyncUseCase {
	return &SyncUseCase{board: board, api: api, publisher: publisher, token: token, now: time.Now}
}

// Load fetches the request history and replaces the board with it.
func (uc *SyncUseCase) Load(ctx context.Context) error {
	return uc.load(ctx, uc.token)
}

// Resync reloads the history with the caller's credentials.
func (uc *SyncUseCase) Resync(ctx context.Context, token string) error {
	if token == "" {
		token = uc.token
	}
	return uc.load(ctx, token)
}

func (uc *SyncUseCase) load(ctx context.Context, token string) error {
	since := uc.board.Generation()
	started := time.Now()
	items, err := uc.api.ListRequests(ctx, token)
	metrics.BackendRequestDuration.WithLabelValues("list_requests").Observe(time.Since(started).Seconds())
	if err != nil {
		slog.Error("requests snapshot fetch failed", slog.Any("error", err))
		return fmt.Errorf("load requests: %w", err)
	}
	uc.board.LoadSince(items, since)
	metrics.ActiveRequests.Set(float64(uc.board.ActiveCount()))
	slog.Info("requests snapshot loaded", slog.Int("total", len(items)), slog.Int("active", uc.board.ActiveCount()))
	uc.publish(ctx, ActionSnapshot)
	return nil
}

// Ingest merges one upstream event into the board and pushes the new view.
func (uc *SyncUseCase) Ingest(ctx context.Context, event domain.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	req := event.Request()
	if !uc.board.Apply(req) {
		slog.Debug("request event unchanged", slog.Int64("requestId", req.ID))
		return nil
	}
	metrics.ActiveRequests.Set(float64(uc.board.ActiveCount()))
	slog.Info("request event applied",
		slog.Int64("requestId", req.ID),
		slog.Int64("tableId", req.TableID),
		slog.String("type", req.Type),
		slog.Bool("handled", req.IsHandled),
	)
	uc.publish(ctx, ActionEvent)
	return nil
}

// View renders the current board.
func (uc *SyncUseCase) View() domain.BoardView {
	return uc.board.View(uc.now())
}

func (uc *SyncUseCase) publish(ctx context.Context, action string) {
	if uc.publisher == nil {
		return
	}
	uc.publisher.PublishBoard(ctx, action, uc.board.View(uc.now()))
}

var _ port.EventSink = (*SyncUseCase)(nil)
