package amqp

import (
	"encoding/json"
	"time"
)

// EntryMirrorMessage represents a lightweight message for mirroring a ledger entry to Google Sheets
// Contains only the ID, the worker will fetch the full entry from database
type EntryMirrorMessage struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntryMirrorMessage creates a new mirror message with just the entry ID
func NewEntryMirrorMessage(id string) *EntryMirrorMessage {
	return &EntryMirrorMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *EntryMirrorMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func EntryMirrorMessageFromJSON(data []byte) (*EntryMirrorMessage, error) {
	var msg EntryMirrorMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
