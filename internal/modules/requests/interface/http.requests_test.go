package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"mesaYaManager/internal/modules/requests/application/port"
	"mesaYaManager/internal/modules/requests/domain"
	"mesaYaManager/internal/platform/web"
)

type stubBoard struct{ view domain.BoardView }

func (s stubBoard) View() domain.BoardView { return s.view }

type stubAck struct {
	err   error
	ids   []int64
	token string
}

func (s *stubAck) Execute(_ context.Context, token string, id int64) error {
	s.ids = append(s.ids, id)
	s.token = token
	return s.err
}

func newServer(t *testing.T, board BoardSource, ack Acknowledger) *echo.Echo {
	t.Helper()
	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e := echo.New()
	e.Renderer = renderer
	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	NewRequestsHandler(board, ack).Register(e, passthrough)
	return e
}

func sampleView() domain.BoardView {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	active := []domain.Request{{ID: 9, Type: "card", TableID: 4, CreatedAt: domain.Timestamp{Time: now.Add(-3 * time.Minute)}}}
	return domain.BuildView(active, active, now, time.UTC)
}

func TestRequestsPageRenders(t *testing.T) {
	e := newServer(t, stubBoard{view: sampleView()}, &stubAck{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/requests", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "orange-background") || !strings.Contains(body, "3:00") {
		t.Fatalf("dashboard missing active row: %s", body)
	}
}

func TestRequestsListJSON(t *testing.T) {
	e := newServer(t, stubBoard{view: sampleView()}, &stubAck{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/requests", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view domain.BoardView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.ActiveCount != 1 || len(view.Columns) != 3 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if rows := view.Columns[1].Rows; len(rows) != 1 || rows[0].ID != 9 {
		t.Fatalf("expected card row, got %+v", view.Columns[1])
	}
}

func TestHandleRequest(t *testing.T) {
	ack := &stubAck{}
	e := newServer(t, stubBoard{}, ack)

	req := httptest.NewRequest(http.MethodPost, "/api/requests/12/handle", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(ack.ids) != 1 || ack.ids[0] != 12 {
		t.Fatalf("unexpected acknowledge calls: %v", ack.ids)
	}
}

func TestHandleRequestFormRedirects(t *testing.T) {
	e := newServer(t, stubBoard{}, &stubAck{})

	req := httptest.NewRequest(http.MethodPost, "/api/requests/12/handle", strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/requests" {
		t.Fatalf("expected redirect to /requests, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestHandleRequestErrors(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"bad id", "/api/requests/abc/handle", nil, http.StatusBadRequest},
		{"zero id", "/api/requests/0/handle", nil, http.StatusBadRequest},
		{"forbidden", "/api/requests/5/handle", fmt.Errorf("acknowledge request 5: %w", port.ErrRequestsForbidden), http.StatusForbidden},
		{"not found", "/api/requests/5/handle", fmt.Errorf("acknowledge request 5: %w", port.ErrRequestNotFound), http.StatusNotFound},
		{"backend down", "/api/requests/5/handle", port.ErrRequestsUnavailable, http.StatusBadGateway},
		{"timeout", "/api/requests/5/handle", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newServer(t, stubBoard{}, &stubAck{err: tc.err})
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tc.path, nil))
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
		})
	}
}
