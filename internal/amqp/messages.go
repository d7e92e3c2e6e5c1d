package amqp

import (
	"encoding/json"
	"time"
)

// LogbookSyncMessage tells the mirror worker that a user's logbook reached a
// new revision. It carries only the user and revision; the worker reloads the
// full sequence from the database.
type LogbookSyncMessage struct {
	UserID    string    `json:"user_id"`
	Rev       int64     `json:"rev"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLogbookSyncMessage(userID string, rev int64) *LogbookSyncMessage {
	return &LogbookSyncMessage{
		UserID:    userID,
		Rev:       rev,
		Timestamp: time.Now(),
	}
}

func (m *LogbookSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LogbookSyncMessageFromJSON(data []byte) (*LogbookSyncMessage, error) {
	var msg LogbookSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
