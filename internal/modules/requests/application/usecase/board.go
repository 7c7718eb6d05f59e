package usecase

import (
	"slices"
	"sync"
	"time"

	"mesaYaManager/internal/modules/requests/domain"
)

// Board owns the active and history lists shown on the dashboard.
// History is newest first; active is the unhandled subset of history.
type Board struct {
	mu         sync.RWMutex
	history    []domain.Request
	active     []domain.Request
	handled    map[int64]struct{}
	touched    map[int64]uint64
	generation uint64
	location   *time.Location
}

func NewBoard(loc *time.Location) *Board {
	if loc == nil {
		loc = time.Local
	}
	return &Board{
		handled:  make(map[int64]struct{}),
		touched:  make(map[int64]uint64),
		location: loc,
	}
}

// Generation increases with every live change. Capture it before fetching a snapshot
// and hand it to LoadSince.
func (b *Board) Generation() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.generation
}

// Load replaces both lists with a backend snapshot delivered oldest first.
func (b *Board) Load(snapshot []domain.Request) {
	b.LoadSince(snapshot, b.Generation())
}

// LoadSince is Load for a snapshot fetched when the board was at generation since.
// Requests applied or handled after that keep their live copy, even when the
// snapshot lacks them or carries an older one.
func (b *Board) LoadSince(snapshot []domain.Request, since uint64) {
	reversed := make([]domain.Request, 0, len(snapshot))
	seen := make(map[int64]struct{}, len(snapshot))
	for i := len(snapshot) - 1; i >= 0; i-- {
		req := snapshot[i]
		if _, dup := seen[req.ID]; dup {
			continue
		}
		seen[req.ID] = struct{}{}
		reversed = append(reversed, req)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, live := range b.history {
		if b.touched[live.ID] <= since {
			continue
		}
		if _, ok := seen[live.ID]; ok {
			idx := slices.IndexFunc(reversed, func(r domain.Request) bool { return r.ID == live.ID })
			if reversed[idx].IsHandled {
				live.IsHandled = true
			}
			reversed[idx] = live
			continue
		}
		seen[live.ID] = struct{}{}
		reversed = append(reversed, live)
	}
	domain.SortNewestFirst(reversed)

	handled := make(map[int64]struct{}, len(b.handled))
	touched := make(map[int64]uint64, len(b.touched))
	for i := range reversed {
		id := reversed[i].ID
		if _, ok := b.handled[id]; ok {
			reversed[i].IsHandled = true
		}
		if reversed[i].IsHandled {
			handled[id] = struct{}{}
		}
		if gen, ok := b.touched[id]; ok && gen > since {
			touched[id] = gen
		}
	}
	b.handled = handled
	b.touched = touched
	b.history = reversed
	b.rebuildActiveLocked()
}

func (b *Board) touchLocked(id int64) {
	b.generation++
	b.touched[id] = b.generation
}

// Apply merges one live request, replacing any previous copy with the same id.
// It reports whether the board changed.
func (b *Board) Apply(req domain.Request) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.handled[req.ID]; ok {
		req.IsHandled = true
	}
	if req.IsHandled {
		b.handled[req.ID] = struct{}{}
	}

	idx := slices.IndexFunc(b.history, func(existing domain.Request) bool { return existing.ID == req.ID })
	if idx >= 0 {
		if sameRequest(b.history[idx], req) {
			return false
		}
		b.history = slices.Delete(b.history, idx, idx+1)
	}
	b.history = append([]domain.Request{req}, b.history...)
	domain.SortNewestFirst(b.history)
	b.touchLocked(req.ID)
	b.rebuildActiveLocked()
	return true
}

// MarkHandled drops the request from the active list and flags it handled in history.
// Unknown ids are a no-op.
func (b *Board) MarkHandled(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := slices.IndexFunc(b.history, func(existing domain.Request) bool { return existing.ID == id })
	if idx < 0 {
		return false
	}
	b.handled[id] = struct{}{}
	if b.history[idx].IsHandled {
		return false
	}
	b.history[idx].IsHandled = true
	b.touchLocked(id)
	b.rebuildActiveLocked()
	return true
}

func (b *Board) rebuildActiveLocked() {
	active := make([]domain.Request, 0, len(b.history))
	for _, req := range b.history {
		if !req.IsHandled {
			active = append(active, req)
		}
	}
	domain.SortNewestFirst(active)
	b.active = active
}

func (b *Board) Active() []domain.Request {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.active)
}

func (b *Board) History() []domain.Request {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.history)
}

func (b *Board) ActiveCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.active)
}

// View renders the board as of now.
func (b *Board) View(now time.Time) domain.BoardView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return domain.BuildView(b.active, b.history, now, b.location)
}

func sameRequest(a, b domain.Request) bool {
	return a.ID == b.ID &&
		a.Type == b.Type &&
		a.TableID == b.TableID &&
		a.IsHandled == b.IsHandled &&
		a.CreatedAt.Equal(b.CreatedAt.Time)
}
