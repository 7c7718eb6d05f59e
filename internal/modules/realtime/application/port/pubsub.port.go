package port

import (
	"context"

	"mesaYaManager/internal/modules/realtime/domain"
)

// Broadcaster sends messages to the dashboard websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
	ClientCount() int
}
