package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"mesaYaManager/internal/modules/requests/application/port"
	"mesaYaManager/internal/modules/requests/application/usecase"
	"mesaYaManager/internal/modules/requests/domain"
	"mesaYaManager/internal/platform/web"
	"mesaYaManager/internal/shared/auth"
	"mesaYaManager/internal/shared/httputil"
)

type BoardSource interface {
	View() domain.BoardView
}

type Acknowledger interface {
	Execute(ctx context.Context, token string, id int64) error
}

// NewErrorMapper maps request acknowledgement failures to HTTP statuses.
func NewErrorMapper() *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithMapping(usecase.ErrInvalidRequestID, http.StatusBadRequest, "invalid request id").
		WithMapping(port.ErrRequestsForbidden, http.StatusForbidden, "forbidden").
		WithMapping(port.ErrRequestNotFound, http.StatusNotFound, "request not found").
		WithMapping(port.ErrRequestsUnavailable, http.StatusBadGateway, "requests backend unavailable").
		WithDefault(http.StatusBadGateway, "requests backend unavailable")
}

// RequestsHandler serves the dashboard page and the requests JSON API.
type RequestsHandler struct {
	board  BoardSource
	ack    Acknowledger
	errors *httputil.ErrorMapper
}

func NewRequestsHandler(board BoardSource, ack Acknowledger) *RequestsHandler {
	return &RequestsHandler{board: board, ack: ack, errors: NewErrorMapper()}
}

// Register mounts the handler. guard protects every route.
func (h *RequestsHandler) Register(e *echo.Echo, guard echo.MiddlewareFunc) {
	e.GET("/requests", h.Page, guard)
	e.GET("/api/requests", h.List, guard)
	e.POST("/api/requests/:id/handle", h.Handle, guard)
}

// Page renders GET /requests.
func (h *RequestsHandler) Page(c echo.Context) error {
	return c.Render(http.StatusOK, web.PageRequests, web.DashboardPage{
		Title: "Requests",
		View:  h.board.View(),
	})
}

// List returns the board view as JSON.
func (h *RequestsHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.board.View())
}

// Handle acknowledges one request. Form submissions are redirected back to the dashboard.
func (h *RequestsHandler) Handle(c echo.Context) error {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return h.errors.HTTPError(usecase.ErrInvalidRequestID)
	}

	if err := h.ack.Execute(c.Request().Context(), auth.TokenFrom(c), id); err != nil {
		httpErr := h.errors.HTTPError(err)
		slog.Warn("acknowledge rejected", slog.Int64("requestId", id), slog.Int("status", httpErr.Code), slog.Any("error", err))
		return httpErr
	}

	if isFormPost(c.Request()) {
		return c.Redirect(http.StatusSeeOther, "/requests")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"id": id, "handled": true})
}

func isFormPost(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm)
}
