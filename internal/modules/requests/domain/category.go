package domain

import (
	"fmt"
	"strings"
	"time"
)

// Category is one of the three dashboard columns.
type Category string

const (
	CategoryCash   Category = "cash"
	CategoryCard   Category = "card"
	CategoryWaiter Category = "waiter"
)

// Categories lists the dashboard columns in display order.
var Categories = []Category{CategoryCash, CategoryCard, CategoryWaiter}

// Classify buckets a request type. Anything that is not a payment is a waiter call.
func Classify(requestType string) Category {
	switch strings.ToLower(strings.TrimSpace(requestType)) {
	case string(CategoryCash):
		return CategoryCash
	case string(CategoryCard):
		return CategoryCard
	default:
		return CategoryWaiter
	}
}

// IsPayment reports whether the column groups payment requests.
func (c Category) IsPayment() bool {
	return c == CategoryCash || c == CategoryCard
}

func (c Category) Title() string {
	return strings.ToUpper(string(c))
}

// Urgency is the colour class of an active row.
type Urgency string

const (
	UrgencyGreen  Urgency = "green"
	UrgencyOrange Urgency = "orange"
	UrgencyRed    Urgency = "red"
)

const (
	orangeAfter = 120 * time.Second
	redAfter    = 240 * time.Second
)

// UrgencyFor maps how long a request has been waiting to its colour class.
func UrgencyFor(elapsed time.Duration) Urgency {
	switch {
	case elapsed < orangeAfter:
		return UrgencyGreen
	case elapsed < redAfter:
		return UrgencyOrange
	default:
		return UrgencyRed
	}
}

// Elapsed is the whole-second wait since created, never negative.
func Elapsed(created, now time.Time) time.Duration {
	if created.IsZero() || now.Before(created) {
		return 0
	}
	return now.Sub(created).Truncate(time.Second)
}

// FormatElapsed renders a wait as m:ss.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatClock renders the wall-clock time of a request as HH:MM:SS.
func FormatClock(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "--:--:--"
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("15:04:05")
}
