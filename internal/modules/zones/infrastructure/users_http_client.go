package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"mesaYaManager/internal/modules/zones/application/port"
	"mesaYaManager/internal/modules/zones/domain"
	"mesaYaManager/internal/platform/rest"
)

const defaultUsersBaseURL = "http://localhost:8000/v1/api"

// UsersHTTPClient implements port.UsersAPI against the backend users endpoints.
type UsersHTTPClient struct {
	rest *rest.Client
}

func NewUsersHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *UsersHTTPClient {
	return &UsersHTTPClient{rest: rest.NewClient(baseURL, defaultUsersBaseURL, timeout, client)}
}

type zonePayload struct {
	Zone *int `json:"zone"`
}

func (c *UsersHTTPClient) ListWaiters(ctx context.Context, token string) ([]domain.Waiter, error) {
	req, err := c.rest.NewRequest(ctx, http.MethodGet, "/users/", token, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.rest.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrUsersUnavailable, err)
	}
	defer rest.Drain(res)

	if err := rest.CheckStatus(req, res); err != nil {
		return nil, mapStatus(err)
	}

	var waiters []domain.Waiter
	if err := json.NewDecoder(res.Body).Decode(&waiters); err != nil {
		return nil, fmt.Errorf("%w: decode users: %v", port.ErrUsersUnavailable, err)
	}
	return waiters, nil
}

func (c *UsersHTTPClient) AssignZone(ctx context.Context, token string, waiterID int64, zone *int) error {
	path := "/users/" + strconv.FormatInt(waiterID, 10) + "/zone/"
	req, err := c.rest.NewRequest(ctx, http.MethodPut, path, token, zonePayload{Zone: zone})
	if err != nil {
		return err
	}
	res, err := c.rest.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", port.ErrUsersUnavailable, err)
	}
	defer rest.Drain(res)

	if err := rest.CheckStatus(req, res); err != nil {
		return mapStatus(err)
	}
	return nil
}

func mapStatus(err error) error {
	var statusErr *rest.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}
	switch statusErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %v", port.ErrUsersForbidden, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", port.ErrWaiterNotFound, err)
	default:
		return fmt.Errorf("%w: %v", port.ErrUsersUnavailable, err)
	}
}

var _ port.UsersAPI = (*UsersHTTPClient)(nil)
