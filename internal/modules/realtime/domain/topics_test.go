package domain

import (
	"testing"
	"time"
)

func TestCustomTopic(t *testing.T) {
	cases := []struct {
		entity, action, want string
	}{
		{"requests", "tick", "requests.tick"},
		{" requests ", " event ", "requests.event"},
		{"", "tick", ""},
		{"requests", "  ", ""},
	}

	for _, tc := range cases {
		if got := CustomTopic(tc.entity, tc.action); got != tc.want {
			t.Fatalf("CustomTopic(%q, %q) expected %q got %q", tc.entity, tc.action, tc.want, got)
		}
	}
}

func TestDashboardTopics_CoverBoardActions(t *testing.T) {
	topics := DashboardTopics()
	want := map[string]bool{
		"requests.snapshot": false,
		"requests.event":    false,
		"requests.handled":  false,
		"requests.tick":     false,
		"requests.error":    false,
	}
	for _, topic := range topics {
		if _, ok := want[topic]; !ok {
			t.Fatalf("unexpected topic %s", topic)
		}
		want[topic] = true
	}
	for topic, seen := range want {
		if !seen {
			t.Fatalf("missing topic %s", topic)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	msg := ErrorMessage(RequestsEntity, "acknowledge", "backend unavailable", at)

	if msg.Topic != "requests.error" || msg.Action != ActionError {
		t.Fatalf("unexpected message: %#v", msg)
	}
	if msg.Metadata["command"] != "acknowledge" {
		t.Fatalf("unexpected metadata: %#v", msg.Metadata)
	}
	if msg.Timestamp.Location() != time.UTC {
		t.Fatal("timestamp should be UTC")
	}
}
