package port

import (
	"context"

	"mesaYaManager/internal/modules/requests/domain"
)

// BoardPublisher pushes board updates to connected dashboards.
type BoardPublisher interface {
	PublishBoard(ctx context.Context, action string, view domain.BoardView)
	Audience() int
}

// EventSink receives decoded upstream events regardless of their transport.
type EventSink interface {
	Ingest(ctx context.Context, event domain.Event) error
}
