package usecase

import (
	"context"
	"sync"
	"time"

	"mesaYaManager/internal/modules/requests/domain"
)

type fakeRequestsAPI struct {
	mu        sync.Mutex
	items     []domain.Request
	listErr   error
	handleErr error
	handled   []int64
	tokens    []string
}

func (f *fakeRequestsAPI) ListRequests(_ context.Context, token string) ([]domain.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Request(nil), f.items...), nil
}

func (f *fakeRequestsAPI) HandleRequest(_ context.Context, token string, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	if f.handleErr != nil {
		return f.handleErr
	}
	f.handled = append(f.handled, id)
	return nil
}

type publishedBoard struct {
	action string
	view   domain.BoardView
}

type fakePublisher struct {
	mu        sync.Mutex
	audience  int
	published []publishedBoard
}

func (f *fakePublisher) PublishBoard(_ context.Context, action string, view domain.BoardView) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, publishedBoard{action: action, view: view})
}

func (f *fakePublisher) Audience() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.audience
}

func (f *fakePublisher) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.published))
	for _, p := range f.published {
		out = append(out, p.action)
	}
	return out
}

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func req(id int64, kind string, offset time.Duration, handled bool) domain.Request {
	return domain.Request{
		ID:        id,
		Type:      kind,
		TableID:   id + 100,
		CreatedAt: domain.NewTimestamp(baseTime.Add(offset)),
		IsHandled: handled,
	}
}

func ids(items []domain.Request) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
