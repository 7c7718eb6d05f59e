package port

import (
	"context"
	"errors"

	"mesaYaManager/internal/modules/requests/domain"
)

var (
	// ErrRequestsForbidden indicates the backend rejected the manager's credentials.
	ErrRequestsForbidden = errors.New("requests api forbidden")
	// ErrRequestNotFound indicates the backend does not know the request.
	ErrRequestNotFound = errors.New("request not found")
	// ErrRequestsUnavailable wraps transport failures and unexpected statuses.
	ErrRequestsUnavailable = errors.New("requests api unavailable")
)

// RequestsAPI is the backend surface for service requests.
type RequestsAPI interface {
	ListRequests(ctx context.Context, token string) ([]domain.Request, error)
	HandleRequest(ctx context.Context, token string, id int64) error
}
