package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Request is a customer-initiated service call (cash, card or waiter) tracked by the backend.
type Request struct {
	Type      string    `json:"request_type"`
	ID        int64     `json:"id"`
	TableID   int64     `json:"table_id"`
	CreatedAt Timestamp `json:"created_at"`
	IsHandled bool      `json:"is_handled"`
}

// Category returns the visual bucket the request belongs to.
func (r Request) Category() Category {
	return Classify(r.Type)
}

// Timestamp accepts RFC3339 strings or epoch numbers and always encodes as RFC3339.
type Timestamp struct {
	time.Time
}

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
const epochMillisThreshold = 1e12

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		parsed, err := ParseTimestamp(raw)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	}
	value, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return fmt.Errorf("created_at: %w", err)
	}
	t.Time = fromEpoch(value)
	return nil
}

// ParseTimestamp parses the textual forms the backend emits for created_at.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if value, err := strconv.ParseFloat(raw, 64); err == nil {
		return fromEpoch(value), nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05.999999Z07:00", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("created_at: unsupported timestamp %q", raw)
}

func fromEpoch(value float64) time.Time {
	if value >= epochMillisThreshold {
		return time.UnixMilli(int64(value)).UTC()
	}
	sec := int64(value)
	nsec := int64((value - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}

// SortNewestFirst orders requests by creation time descending, keeping the relative order of ties.
func SortNewestFirst(items []Request) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt.Time)
	})
}
