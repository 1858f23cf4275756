package amqp

import (
	"encoding/json"
	"time"
)

// ReseedCompletedMessage announces that the record store was fully
// replaced. Consumers re-read the store themselves; the message carries
// only the headline numbers.
type ReseedCompletedMessage struct {
	Count     int       `json:"count"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReseedCompletedMessage(count int, source string) *ReseedCompletedMessage {
	return &ReseedCompletedMessage{
		Count:     count,
		Source:    source,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *ReseedCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReseedCompletedMessageFromJSON creates a message from JSON bytes.
func ReseedCompletedMessageFromJSON(data []byte) (*ReseedCompletedMessage, error) {
	var msg ReseedCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
