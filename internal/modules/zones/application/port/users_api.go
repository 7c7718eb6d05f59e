package port

import (
	"context"
	"errors"

	"mesaYaManager/internal/modules/zones/domain"
)

var (
	ErrUsersForbidden   = errors.New("users api forbidden")
	ErrWaiterNotFound   = errors.New("waiter not found")
	ErrUsersUnavailable = errors.New("users api unavailable")
)

// UsersAPI is the backend surface for waiters and their zones.
type UsersAPI interface {
	ListWaiters(ctx context.Context, token string) ([]domain.Waiter, error)
	AssignZone(ctx context.Context, token string, waiterID int64, zone *int) error
}
