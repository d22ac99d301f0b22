package worker

import (
	"context"
	"path/filepath"
	"testing"

	"ledgerbot/internal/amqp"
	"ledgerbot/internal/archive"
	"ledgerbot/internal/core"
)

func TestHandleMessageArchivesRecord(t *testing.T) {
	ctx := context.Background()
	repo, err := archive.NewRepository(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	defer repo.Close()

	w := NewArchiveWorker(repo)
	msg := amqp.NewRecordArchivedMessage(core.Record{
		Timestamp: "2026-02-15 12:30:00",
		Amount:    120,
		Category:  "餐飲",
		Item:      "午餐",
		GroupID:   "g1",
	})
	if err := w.HandleMessage(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	n, err := repo.CountRecords(ctx, "g1")
	if err != nil || n != 1 {
		t.Fatalf("count: %d %v", n, err)
	}
}

func TestHandleMessageDropsInvalidRecord(t *testing.T) {
	ctx := context.Background()
	repo, err := archive.NewRepository(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	defer repo.Close()

	w := NewArchiveWorker(repo)
	// Zero amount never validates; the message must be dropped without
	// an error so it is not requeued.
	msg := amqp.NewRecordArchivedMessage(core.Record{GroupID: "g1", Item: "x"})
	if err := w.HandleMessage(ctx, msg); err != nil {
		t.Fatalf("expected drop, got %v", err)
	}

	n, _ := repo.CountRecords(ctx, "g1")
	if n != 0 {
		t.Fatalf("invalid record archived: %d", n)
	}
}
