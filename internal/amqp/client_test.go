package amqp

import (
	"testing"
	"time"
)

func TestNewLogbookSyncMessage(t *testing.T) {
	msg := NewLogbookSyncMessage("alice", 7)

	if msg.UserID != "alice" {
		t.Errorf("NewLogbookSyncMessage() UserID = %v, want alice", msg.UserID)
	}
	if msg.Rev != 7 {
		t.Errorf("NewLogbookSyncMessage() Rev = %v, want 7", msg.Rev)
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewLogbookSyncMessage() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewLogbookSyncMessage() Timestamp should be recent")
	}
}

func TestLogbookSyncMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &LogbookSyncMessage{
		UserID:    "alice",
		Rev:       2,
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsedMsg, err := LogbookSyncMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("LogbookSyncMessageFromJSON() error = %v", err)
	}

	if parsedMsg.UserID != msg.UserID {
		t.Errorf("Parsed UserID = %v, want %v", parsedMsg.UserID, msg.UserID)
	}
	if parsedMsg.Rev != msg.Rev {
		t.Errorf("Parsed Rev = %v, want %v", parsedMsg.Rev, msg.Rev)
	}
	if !parsedMsg.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsedMsg.Timestamp, msg.Timestamp)
	}
}

func TestLogbookSyncMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"user_id": 42, "rev": "not_a_number"}`)

	_, err := LogbookSyncMessageFromJSON(invalidJSON)
	if err == nil {
		t.Error("LogbookSyncMessageFromJSON() should fail with invalid JSON")
	}
}
