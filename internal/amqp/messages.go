package amqp

import (
	"encoding/json"
	"time"
)

// Change reasons carried on the transactions_changed queue.
const (
	ReasonCreated  = "created"
	ReasonDeleted  = "deleted"
	ReasonImported = "imported"
	ReasonSeeded   = "seeded"
)

// TransactionsChangedMessage tells the worker that the transaction list
// changed. The worker reads the current list from the store, so the
// message carries only the reason and the resulting count.
type TransactionsChangedMessage struct {
	Reason    string    `json:"reason"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionsChangedMessage(reason string, count int) *TransactionsChangedMessage {
	return &TransactionsChangedMessage{
		Reason:    reason,
		Count:     count,
		Timestamp: time.Now(),
	}
}

func (m *TransactionsChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionsChangedMessageFromJSON(data []byte) (*TransactionsChangedMessage, error) {
	var msg TransactionsChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
