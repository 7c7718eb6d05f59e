package usecase

import (
	"context"
	"testing"
	"time"

	"mesaYaManager/internal/modules/realtime/domain"
	requests "mesaYaManager/internal/modules/requests/domain"
)

type recordingBroadcaster struct {
	messages []*domain.Message
	clients  int
}

func (r *recordingBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	r.messages = append(r.messages, msg)
}

func (r *recordingBroadcaster) ClientCount() int { return r.clients }

func TestBroadcastUseCase_PublishBoard(t *testing.T) {
	t.Parallel()

	recorder := &recordingBroadcaster{clients: 2}
	uc := NewBroadcastUseCase(recorder)
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	view := requests.BoardView{ActiveCount: 4}
	uc.PublishBoard(context.Background(), domain.ActionTick, view)

	if len(recorder.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(recorder.messages))
	}
	msg := recorder.messages[0]
	if msg.Topic != "requests.tick" || msg.Entity != domain.RequestsEntity || msg.Action != domain.ActionTick {
		t.Fatalf("unexpected envelope: %#v", msg)
	}
	if msg.Metadata["active"] != "4" {
		t.Fatalf("unexpected metadata: %#v", msg.Metadata)
	}
	if got, ok := msg.Data.(requests.BoardView); !ok || got.ActiveCount != 4 {
		t.Fatalf("unexpected payload: %#v", msg.Data)
	}
	if uc.Audience() != 2 {
		t.Fatalf("expected audience 2, got %d", uc.Audience())
	}
}
