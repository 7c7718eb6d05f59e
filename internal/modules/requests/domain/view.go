package domain

import "time"

// ActiveRow is an unhandled request prepared for display.
type ActiveRow struct {
	ID          int64     `json:"id"`
	TableID     int64     `json:"table_id"`
	Description string    `json:"description,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
	Elapsed     string    `json:"elapsed"`
	Urgency     Urgency   `json:"urgency"`
}

// Column groups the active rows of one category.
type Column struct {
	Category Category    `json:"category"`
	Title    string      `json:"title"`
	Payment  bool        `json:"payment"`
	Rows     []ActiveRow `json:"rows"`
}

// HistoryRow is a request as shown in the history table.
type HistoryRow struct {
	ID          int64     `json:"id"`
	TableID     int64     `json:"table_id"`
	RequestType string    `json:"request_type"`
	CreatedAt   Timestamp `json:"created_at"`
	Clock       string    `json:"clock"`
	IsHandled   bool      `json:"is_handled"`
}

// BoardView is an immutable rendering of the live lists at a point in time.
type BoardView struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Columns     []Column     `json:"columns"`
	History     []HistoryRow `json:"history"`
	ActiveCount int          `json:"active_count"`
}

// BuildView renders active and history lists, both expected newest first.
func BuildView(active, history []Request, now time.Time, loc *time.Location) BoardView {
	columns := make([]Column, 0, len(Categories))
	index := make(map[Category]int, len(Categories))
	for i, category := range Categories {
		columns = append(columns, Column{
			Category: category,
			Title:    category.Title(),
			Payment:  category.IsPayment(),
			Rows:     []ActiveRow{},
		})
		index[category] = i
	}

	for _, req := range active {
		category := req.Category()
		elapsed := Elapsed(req.CreatedAt.Time, now)
		row := ActiveRow{
			ID:        req.ID,
			TableID:   req.TableID,
			CreatedAt: req.CreatedAt,
			Elapsed:   FormatElapsed(elapsed),
			Urgency:   UrgencyFor(elapsed),
		}
		if !category.IsPayment() {
			row.Description = req.Type
		}
		pos := index[category]
		columns[pos].Rows = append(columns[pos].Rows, row)
	}

	rows := make([]HistoryRow, 0, len(history))
	for _, req := range history {
		rows = append(rows, HistoryRow{
			ID:          req.ID,
			TableID:     req.TableID,
			RequestType: req.Type,
			CreatedAt:   req.CreatedAt,
			Clock:       FormatClock(req.CreatedAt.Time, loc),
			IsHandled:   req.IsHandled,
		})
	}

	return BoardView{
		GeneratedAt: now.UTC(),
		Columns:     columns,
		History:     rows,
		ActiveCount: len(active),
	}
}
