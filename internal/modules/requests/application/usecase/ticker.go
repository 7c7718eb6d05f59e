package usecase

import (
	"context"
	"time"

	"mesaYaManager/internal/modules/requests/application/port"
)

// TickUseCase republishes the board so elapsed times and urgency colours stay current.
type TickUseCase struct {
	board     *Board
	publisher port.BoardPublisher
	now       func() time.Time
}

func NewTickUseCase(board *Board, publisher port.BoardPublisher) *TickUseCase {
	return &TickUseCase{board: board, publisher: publisher, now: time.Now}
}

// Execute reports whether a tick was published. Nothing is sent when no dashboard is listening.
func (uc *TickUseCase) Execute(ctx context.Context) bool {
	if uc.publisher == nil || uc.publisher.Audience() == 0 {
		return false
	}
	if uc.board.ActiveCount() == 0 {
		return false
	}
	uc.publisher.PublishBoard(ctx, ActionTick, uc.board.View(uc.now()))
	return true
}
