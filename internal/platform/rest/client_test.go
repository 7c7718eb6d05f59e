package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientNewRequest_JoinsPathsAndSetsHeaders(t *testing.T) {
	t.Parallel()

	client := NewClient("http://backend:8000/v1/api/", "http://fallback", time.Second, nil)
	req, err := client.NewRequest(context.Background(), http.MethodPut, "/users/3/zone/", " tok ", map[string]any{"zone": nil})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.URL.String() != "http://backend:8000/v1/api/users/3/zone/" {
		t.Fatalf("unexpected url: %s", req.URL.String())
	}
	if got := req.Header.Get("Authorization"); got != "Bearer tok" {
		t.Fatalf("unexpected authorization: %q", got)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type: %q", got)
	}
	body, _ := io.ReadAll(req.Body)
	if string(body) != `{"zone":null}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestClientNewRequest_FallbackBaseURLAndNoToken(t *testing.T) {
	t.Parallel()

	client := NewClient("  ", "http://localhost:8001", 0, nil)
	req, err := client.NewRequest(context.Background(), http.MethodGet, "requests", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.URL.String() != "http://localhost:8001/requests" {
		t.Fatalf("unexpected url: %s", req.URL.String())
	}
	if req.Header.Get("Authorization") != "" {
		t.Fatal("authorization header should be absent without token")
	}
	if client.client.Timeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %s", client.client.Timeout)
	}
}

func TestCheckStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ok" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, "nope", http.StatusTeapot)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", time.Second, nil)
	for path, wantStatus := range map[string]int{"/ok": 0, "/bad": http.StatusTeapot} {
		req, _ := client.NewRequest(context.Background(), http.MethodGet, path, "", nil)
		res, err := client.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		err = CheckStatus(req, res)
		Drain(res)
		if wantStatus == 0 {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", path, err)
			}
			continue
		}
		var statusErr *StatusError
		if !errors.As(err, &statusErr) || statusErr.Status != wantStatus || statusErr.Body != "nope" {
			t.Fatalf("%s: unexpected error: %#v", path, err)
		}
	}
}
