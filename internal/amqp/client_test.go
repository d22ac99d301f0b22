package amqp

import (
	"testing"
	"time"

	"ledgerbot/internal/core"
)

func TestRecordArchivedMessageRoundTrip(t *testing.T) {
	rec := core.Record{
		Timestamp: "2026-02-15 12:30:00",
		Amount:    120,
		Category:  "餐飲",
		Item:      "午餐",
		Currency:  "TWD",
		UserID:    "u1",
		RawText:   "餐飲 120 午餐",
		GroupID:   "g1",
	}
	msg := NewRecordArchivedMessage(rec)
	if msg.PublishedAt.IsZero() {
		t.Fatal("expected publish timestamp")
	}
	if time.Since(msg.PublishedAt) > time.Minute {
		t.Fatalf("publish timestamp too old: %v", msg.PublishedAt)
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := RecordArchivedMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Record != rec {
		t.Fatalf("record mismatch: %+v", got.Record)
	}
}

func TestRecordArchivedMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := RecordArchivedMessageFromJSON([]byte("not-json")); err == nil {
		t.Fatal("expected error")
	}
}
