package amqp

import (
	"encoding/json"
	"time"
)

const (
	KindSale    = "sale"
	KindExpense = "expense"
	KindDebtor  = "debtor"
	KindPayment = "payment"
	KindSalary  = "salary"
)

// RecordSyncMessage is a lightweight notification that a record changed.
// It carries only the record kind and identifier; the worker reads the full
// record back from the store before exporting it.
type RecordSyncMessage struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordSyncMessage(kind, id string) *RecordSyncMessage {
	return &RecordSyncMessage{Kind: kind, ID: id, Timestamp: time.Now()}
}

func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var m RecordSyncMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
