package amqp

import (
	"encoding/json"
	"time"

	"ledgerbot/internal/core"
)

// RecordArchivedMessage carries one appended ledger record to the
// archive worker. The full record rides along because the worker has no
// way to re-read a single spreadsheet row by id.
type RecordArchivedMessage struct {
	Record      core.Record `json:"record"`
	PublishedAt time.Time   `json:"published_at"`
}

func NewRecordArchivedMessage(rec core.Record) *RecordArchivedMessage {
	return &RecordArchivedMessage{
		Record:      rec,
		PublishedAt: time.Now().UTC(),
	}
}

func (m *RecordArchivedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordArchivedMessageFromJSON(data []byte) (*RecordArchivedMessage, error) {
	var msg RecordArchivedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
