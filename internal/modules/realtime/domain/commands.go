package domain

// AcknowledgeCommand is the payload of the "acknowledge" websocket command.
type AcknowledgeCommand struct {
	ID int64 `json:"id"`
}
