package usecase

import (
	"context"
	"strconv"
	"time"

	"mesaYaManager/internal/modules/realtime/application/port"
	"mesaYaManager/internal/modules/realtime/domain"
	requests "mesaYaManager/internal/modules/requests/domain"
)

// BroadcastUseCase publishes board views to dashboards on the requests topics.
type BroadcastUseCase struct {
	broadcaster port.Broadcaster
	now         func() time.Time
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b, now: time.Now}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	uc.broadcaster.Broadcast(ctx, msg)
}

// PublishBoard sends view on requests.<action>.
func (uc *BroadcastUseCase) PublishBoard(ctx context.Context, action string, view requests.BoardView) {
	msg := domain.NewMessage(domain.RequestsEntity, action, view, uc.now())
	msg.Metadata = map[string]string{"active": strconv.Itoa(view.ActiveCount)}
	uc.Execute(ctx, msg)
}

func (uc *BroadcastUseCase) Audience() int {
	return uc.broadcaster.ClientCount()
}
