package domain

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	cases := map[string]Category{
		"cash":     CategoryCash,
		" Cash ":   CategoryCash,
		"card":     CategoryCard,
		"CARD":     CategoryCard,
		"waiter":   CategoryWaiter,
		"napkins":  CategoryWaiter,
		"":         CategoryWaiter,
		"cashback": CategoryWaiter,
	}

	for input, expected := range cases {
		if actual := Classify(input); actual != expected {
			t.Fatalf("Classify(%q) expected %q got %q", input, expected, actual)
		}
	}
}

func TestUrgencyFor_Boundaries(t *testing.T) {
	cases := []struct {
		elapsed time.Duration
		want    Urgency
	}{
		{0, UrgencyGreen},
		{119 * time.Second, UrgencyGreen},
		{120 * time.Second, UrgencyOrange},
		{239 * time.Second, UrgencyOrange},
		{240 * time.Second, UrgencyRed},
		{time.Hour, UrgencyRed},
	}

	for _, tc := range cases {
		if got := UrgencyFor(tc.elapsed); got != tc.want {
			t.Fatalf("UrgencyFor(%s) expected %s got %s", tc.elapsed, tc.want, got)
		}
	}
}

func TestElapsed_ClampsFutureAndZero(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if got := Elapsed(now.Add(time.Minute), now); got != 0 {
		t.Fatalf("expected 0 for future timestamp, got %s", got)
	}
	if got := Elapsed(time.Time{}, now); got != 0 {
		t.Fatalf("expected 0 for zero timestamp, got %s", got)
	}
	if got := Elapsed(now.Add(-1500*time.Millisecond), now); got != time.Second {
		t.Fatalf("expected truncation to 1s, got %s", got)
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := map[time.Duration]string{
		0:                     "0:00",
		9 * time.Second:       "0:09",
		65 * time.Second:      "1:05",
		10*time.Minute + 30e9: "10:30",
		125 * time.Minute:     "125:00",
		-5 * time.Second:      "0:00",
	}

	for input, expected := range cases {
		if actual := FormatElapsed(input); actual != expected {
			t.Fatalf("FormatElapsed(%s) expected %q got %q", input, expected, actual)
		}
	}
}

func TestFormatClock(t *testing.T) {
	ts := time.Date(2024, 5, 1, 7, 3, 9, 0, time.UTC)
	if got := FormatClock(ts, time.UTC); got != "07:03:09" {
		t.Fatalf("unexpected clock: %s", got)
	}
	plusTwo := time.FixedZone("plus2", 2*3600)
	if got := FormatClock(ts, plusTwo); got != "09:03:09" {
		t.Fatalf("unexpected clock in zone: %s", got)
	}
	if got := FormatClock(time.Time{}, time.UTC); got != "--:--:--" {
		t.Fatalf("unexpected placeholder: %s", got)
	}
}
