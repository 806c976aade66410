package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Aditya-J07/Nuro-Beats/pkg/common/models"
)

func TestBuildMessage(t *testing.T) {
	event := models.Event{
		ID:        "ev-1",
		Type:      "session.completed",
		Source:    "session-service",
		Data:      map[string]interface{}{"final_tempo": 72.0},
		Timestamp: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}

	message, err := buildMessage(event)
	if err != nil {
		t.Fatalf("build message: %v", err)
	}
	if string(message.Key) != event.ID {
		t.Errorf("key = %q, want %q", message.Key, event.ID)
	}

	headers := map[string]string{}
	for _, h := range message.Headers {
		headers[h.Key] = string(h.Value)
	}
	if headers["event-type"] != event.Type {
		t.Errorf("event-type header = %q, want %q", headers["event-type"], event.Type)
	}
	if headers["source"] != event.Source {
		t.Errorf("source header = %q, want %q", headers["source"], event.Source)
	}

	var decoded models.Event
	if err := json.Unmarshal(message.Value, &decoded); err != nil {
		t.Fatalf("decode message value: %v", err)
	}
	if decoded.ID != event.ID || decoded.Type != event.Type || !decoded.Timestamp.Equal(event.Timestamp) {
		t.Errorf("decoded event = %+v, want %+v", decoded, event)
	}
	if decoded.Data["final_tempo"] != 72.0 {
		t.Errorf("data final_tempo = %v, want 72", decoded.Data["final_tempo"])
	}
}

func TestBuildMessageRejectsUnmarshalableData(t *testing.T) {
	event := models.Event{
		ID:   "ev-2",
		Type: "session.sample",
		Data: map[string]interface{}{"bad": make(chan int)},
	}
	if _, err := buildMessage(event); err == nil {
		t.Error("expected marshal error for channel payload")
	}
}
