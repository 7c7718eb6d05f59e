package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mesaYaManager/internal/modules/requests/application/port"
)

func TestRequestsHTTPClient_ListRequests(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/requests" {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected authorization %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"request_type":"cash","id":1,"table_id":2,"created_at":"2024-05-01T12:00:00Z","is_handled":false},
			{"request_type":"napkins","id":2,"table_id":9,"created_at":1714566615000,"is_handled":true}
		]`))
	}))
	defer server.Close()

	client := NewRequestsHTTPClient(server.URL, time.Second, nil)
	items, err := client.ListRequests(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Type != "cash" || items[0].TableID != 2 || items[0].IsHandled {
		t.Fatalf("unexpected first item: %#v", items[0])
	}
	if !items[1].IsHandled || items[1].CreatedAt.Unix() != 1714566615 {
		t.Fatalf("unexpected second item: %#v", items[1])
	}
}

func TestRequestsHTTPClient_HandleRequest(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewRequestsHTTPClient(server.URL, time.Second, nil)
	if err := client.HandleRequest(context.Background(), "", 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/handle-request/42/" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
}

func TestRequestsHTTPClient_MapsStatuses(t *testing.T) {
	t.Parallel()

	cases := map[int]error{
		http.StatusUnauthorized:        port.ErrRequestsForbidden,
		http.StatusForbidden:           port.ErrRequestsForbidden,
		http.StatusNotFound:            port.ErrRequestNotFound,
		http.StatusInternalServerError: port.ErrRequestsUnavailable,
	}

	for status, expected := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		client := NewRequestsHTTPClient(server.URL, time.Second, nil)
		err := client.HandleRequest(context.Background(), "", 1)
		server.Close()
		if !errors.Is(err, expected) {
			t.Fatalf("status %d: expected %v, got %v", status, expected, err)
		}
	}
}

func TestRequestsHTTPClient_TransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewRequestsHTTPClient(url, time.Second, nil)
	if _, err := client.ListRequests(context.Background(), ""); !errors.Is(err, port.ErrRequestsUnavailable) {
		t.Fatalf("expected ErrRequestsUnavailable, got %v", err)
	}
}
