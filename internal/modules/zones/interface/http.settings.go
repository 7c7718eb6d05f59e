package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"mesaYaManager/internal/modules/zones/application/port"
	"mesaYaManager/internal/modules/zones/domain"
	"mesaYaManager/internal/platform/web"
	"mesaYaManager/internal/shared/auth"
	"mesaYaManager/internal/shared/httputil"
)

type Settings interface {
	Layout(ctx context.Context, token string) (domain.Layout, error)
	Assign(ctx context.Context, token string, assignment domain.Assignment) (domain.Layout, error)
}

// NewErrorMapper maps settings failures to HTTP statuses.
func NewErrorMapper() *httputil.ErrorMapper {
	return httputil.NewErrorMapper().
		WithMapping(domain.ErrInvalidAssignment, http.StatusBadRequest, "invalid assignment").
		WithMapping(domain.ErrUnknownZone, http.StatusBadRequest, "unknown zone").
		WithMapping(port.ErrUsersForbidden, http.StatusForbidden, "forbidden").
		WithMapping(port.ErrWaiterNotFound, http.StatusNotFound, "waiter not found").
		WithMapping(port.ErrUsersUnavailable, http.StatusBadGateway, "users backend unavailable").
		WithDefault(http.StatusBadGateway, "users backend unavailable")
}

// SettingsHandler serves the zone assignment page and its JSON API.
type SettingsHandler struct {
	settings Settings
	errors   *httputil.ErrorMapper
}

func NewSettingsHandler(settings Settings) *SettingsHandler {
	return &SettingsHandler{settings: settings, errors: NewErrorMapper()}
}

func (h *SettingsHandler) Register(e *echo.Echo, guard echo.MiddlewareFunc) {
	e.GET("/settings", h.Page, guard)
	e.POST("/settings/zones/:zone/waiters", h.AssignForm, guard)
	e.POST("/settings/waiters/:id/unassign", h.UnassignForm, guard)
	e.GET("/api/zones", h.List, guard)
	e.PUT("/api/waiters/:id/zone", h.PutZone, guard)
}

// Page renders GET /settings. ?zone=n opens the waiter picker of that zone.
func (h *SettingsHandler) Page(c echo.Context) error {
	selected, _ := strconv.Atoi(c.QueryParam("zone"))
	layout, err := h.settings.Layout(c.Request().Context(), auth.TokenFrom(c))
	if err != nil {
		return h.renderError(c, domain.BuildLayout(nil), err)
	}
	return c.Render(http.StatusOK, web.PageSettings, web.SettingsPage{Title: "Settings", Layout: layout, Selected: selected})
}

func (h *SettingsHandler) AssignForm(c echo.Context) error {
	zone, err := strconv.Atoi(strings.TrimSpace(c.Param("zone")))
	if err != nil {
		return h.renderError(c, domain.BuildLayout(nil), domain.ErrUnknownZone)
	}
	waiterID, _ := strconv.ParseInt(strings.TrimSpace(c.FormValue("waiter_id")), 10, 64)
	return h.submit(c, domain.Assignment{WaiterID: waiterID, Zone: &zone})
}

func (h *SettingsHandler) UnassignForm(c echo.Context) error {
	waiterID, _ := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	return h.submit(c, domain.Assignment{WaiterID: waiterID})
}

func (h *SettingsHandler) submit(c echo.Context, assignment domain.Assignment) error {
	ctx := c.Request().Context()
	token := auth.TokenFrom(c)
	if _, err := h.settings.Assign(ctx, token, assignment); err != nil {
		layout, layoutErr := h.settings.Layout(ctx, token)
		if layoutErr != nil {
			layout = domain.BuildLayout(nil)
		}
		return h.renderError(c, layout, err)
	}
	return c.Redirect(http.StatusSeeOther, "/settings")
}

func (h *SettingsHandler) renderError(c echo.Context, layout domain.Layout, err error) error {
	info := h.errors.Map(err)
	slog.Warn("settings request failed", slog.String("path", c.Path()), slog.Int("status", info.Status), slog.Any("error", err))
	return c.Render(info.Status, web.PageSettings, web.SettingsPage{Title: "Settings", Layout: layout, Error: info.Message})
}

// List returns the zone layout as JSON.
func (h *SettingsHandler) List(c echo.Context) error {
	layout, err := h.settings.Layout(c.Request().Context(), auth.TokenFrom(c))
	if err != nil {
		return h.errors.HTTPError(err)
	}
	return c.JSON(http.StatusOK, layout)
}

type zoneBody struct {
	Zone *int `json:"zone"`
}

// PutZone handles PUT /api/waiters/:id/zone with {"zone": n} or {"zone": null}.
func (h *SettingsHandler) PutZone(c echo.Context) error {
	waiterID, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		return h.errors.HTTPError(domain.ErrInvalidAssignment)
	}
	var body zoneBody
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return h.errors.HTTPError(domain.ErrInvalidAssignment)
	}

	layout, err := h.settings.Assign(c.Request().Context(), auth.TokenFrom(c), domain.Assignment{WaiterID: waiterID, Zone: body.Zone})
	if err != nil {
		return h.errors.HTTPError(err)
	}
	return c.JSON(http.StatusOK, layout)
}
