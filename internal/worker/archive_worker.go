// Package worker consumes record archive messages and writes them into
// the local SQLite archive.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"ledgerbot/internal/amqp"
	"ledgerbot/internal/archive"
)

type ArchiveWorker struct {
	repo *archive.Repository
}

func NewArchiveWorker(repo *archive.Repository) *ArchiveWorker {
	return &ArchiveWorker{repo: repo}
}

// HandleMessage processes one record archive message. Returning an
// error requeues the delivery.
func (w *ArchiveWorker) HandleMessage(ctx context.Context, msg *amqp.RecordArchivedMessage) error {
	rec := msg.Record
	if err := rec.Validate(); err != nil {
		// An invalid record will never become valid; drop it loudly
		// instead of requeueing forever.
		slog.WarnContext(ctx, "Dropping invalid record message",
			"group_id", rec.GroupID,
			"ts", rec.Timestamp,
			"error", err)
		return nil
	}

	if err := w.repo.InsertRecord(ctx, rec); err != nil {
		return fmt.Errorf("archive record: %w", err)
	}
	return nil
}
