package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"mesaYaManager/internal/modules/requests/application/port"
	"mesaYaManager/internal/modules/requests/domain"
	"mesaYaManager/internal/platform/rest"
)

const defaultRequestsBaseURL = "http://localhost:8001"

// RequestsHTTPClient implements port.RequestsAPI against the backend REST endpoints.
type RequestsHTTPClient struct {
	rest *rest.Client
}

func NewRequestsHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *RequestsHTTPClient {
	return &RequestsHTTPClient{rest: rest.NewClient(baseURL, defaultRequestsBaseURL, timeout, client)}
}

func (c *RequestsHTTPClient) ListRequests(ctx context.Context, token string) ([]domain.Request, error) {
	req, err := c.rest.NewRequest(ctx, http.MethodGet, "/requests", token, nil)
	if err != nil {
		return nil, err
	}
	slog.Debug("requests list fetch", slog.String("url", req.URL.String()))

	res, err := c.rest.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrRequestsUnavailable, err)
	}
	defer rest.Drain(res)

	if err := rest.CheckStatus(req, res); err != nil {
		return nil, mapStatus(err)
	}

	var items []domain.Request
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: decode requests: %v", port.ErrRequestsUnavailable, err)
	}
	return items, nil
}

func (c *RequestsHTTPClient) HandleRequest(ctx context.Context, token string, id int64) error {
	path := "/handle-request/" + strconv.FormatInt(id, 10) + "/"
	req, err := c.rest.NewRequest(ctx, http.MethodPost, path, token, nil)
	if err != nil {
		return err
	}
	slog.Debug("handle request", slog.String("url", req.URL.String()))

	res, err := c.rest.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", port.ErrRequestsUnavailable, err)
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
		return fmt.Errorf("%w: %v", port.ErrRequestsForbidden, err)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", port.ErrRequestNotFound, err)
	default:
		return fmt.Errorf("%w: %v", port.ErrRequestsUnavailable, err)
	}
}

var _ port.RequestsAPI = (*RequestsHTTPClient)(nil)
