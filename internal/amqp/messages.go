package amqp

import (
	"encoding/json"
	"time"
)

const (
	ActionAdded   = "added"
	ActionDeleted = "deleted"
)

// LedgerEventMessage tells the export worker that one reference month
// changed. It carries only identifiers; the worker reloads the snapshot and
// recomputes the month itself.
type LedgerEventMessage struct {
	Action    string    `json:"action"` // added | deleted
	Kind      string    `json:"kind"`   // ledger collection name
	ID        string    `json:"id"`
	Period    string    `json:"referenceMonth"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(action, kind, id, period string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Action:    action,
		Kind:      kind,
		ID:        id,
		Period:    period,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
