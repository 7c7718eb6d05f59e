package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mesaYaManager/internal/modules/requests/application/port"
	"mesaYaManager/internal/platform/metrics"
)

var ErrInvalidRequestID = errors.New("invalid request id")

// AcknowledgeUseCase forwards a manager's acknowledgement to the backend and, once accepted,
// removes the request from the active list.
type AcknowledgeUseCase struct {
	board     *Board
	api       port.RequestsAPI
	publisher port.BoardPublisher
	now       func() time.Time
}

func NewAcknowledgeUseCase(board *Board, api port.RequestsAPI, publisher port.BoardPublisher) *AcknowledgeUseCase {
	return &AcknowledgeUseCase{board: board, api: api, publisher: publisher, now: time.Now}
}

// Execute leaves the board untouched when the backend call fails.
func (uc *AcknowledgeUseCase) Execute(ctx context.Context, token string, id int64) error {
	if id <= 0 {
		return ErrInvalidRequestID
	}

	started := time.Now()
	err := uc.api.HandleRequest(ctx, token, id)
	metrics.BackendRequestDuration.WithLabelValues("handle_request").Observe(time.Since(started).Seconds())
	metrics.AcknowledgementsTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		slog.Error("request acknowledgement failed", slog.Int64("requestId", id), slog.Any("error", err))
		return fmt.Errorf("acknowledge request %d: %w", id, err)
	}

	if !uc.board.MarkHandled(id) {
		slog.Debug("acknowledged request not on board", slog.Int64("requestId", id))
		return nil
	}
	metrics.ActiveRequests.Set(float64(uc.board.ActiveCount()))
	slog.Info("request acknowledged", slog.Int64("requestId", id))
	if uc.publisher != nil {
		uc.publisher.PublishBoard(ctx, ActionHandled, uc.board.View(uc.now()))
	}
	return nil
}
