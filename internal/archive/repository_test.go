package archive

import (
	"context"
	"path/filepath"
	"testing"

	"ledgerbot/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestInsertAndCount(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

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
	if err := repo.InsertRecord(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	n, err := repo.CountRecords(ctx, "g1")
	if err != nil || n != 1 {
		t.Fatalf("count g1: %d %v", n, err)
	}
	n, err = repo.CountRecords(ctx, "g2")
	if err != nil || n != 0 {
		t.Fatalf("count g2: %d %v", n, err)
	}
}

func TestRecentRecordsOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	stamps := []string{
		"2026-02-15 08:00:00",
		"2026-02-15 12:30:00",
		"2026-02-15 19:00:00",
	}
	for i, ts := range stamps {
		rec := core.Record{
			Timestamp: ts,
			Amount:    int64(i + 1),
			Item:      "x",
			GroupID:   "g1",
		}
		if err := repo.InsertRecord(ctx, rec); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	recs, err := repo.RecentRecords(ctx, "g1", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("limit: got %d", len(recs))
	}
	if recs[0].Timestamp != "2026-02-15 19:00:00" || recs[1].Timestamp != "2026-02-15 12:30:00" {
		t.Fatalf("order: %v", recs)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")
	for i := 0; i < 2; i++ {
		repo, err := NewRepository(dbPath)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		repo.Close()
	}
}
