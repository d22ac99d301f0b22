// Package archive mirrors appended ledger records into a local SQLite
// database so reporting does not have to scan the spreadsheet.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"ledgerbot/internal/core"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertRecord stores one mirrored record with a UTC archive stamp.
func (r *Repository) InsertRecord(ctx context.Context, rec core.Record) error {
	archivedAt := core.FormatTimestamp(time.Now().UTC())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (ts, amount, category, item, currency, user_id, raw_text, group_id, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Timestamp, rec.Amount, rec.Category, rec.Item, rec.Currency,
		rec.UserID, rec.RawText, rec.GroupID, archivedAt)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	slog.InfoContext(ctx, "Record archived",
		"group_id", rec.GroupID,
		"ts", rec.Timestamp,
		"amount", rec.Amount)
	return nil
}

// CountRecords returns the number of archived records for one group.
func (r *Repository) CountRecords(ctx context.Context, groupID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE group_id = ?`, groupID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// RecentRecords lists the latest archived records for one group,
// newest first.
func (r *Repository) RecentRecords(ctx context.Context, groupID string, limit int) ([]core.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT ts, amount, category, item, currency, user_id, raw_text, group_id
		FROM records
		WHERE group_id = ?
		ORDER BY ts DESC
		LIMIT ?`, groupID, limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var rec core.Record
		if err := rows.Scan(&rec.Timestamp, &rec.Amount, &rec.Category, &rec.Item,
			&rec.Currency, &rec.UserID, &rec.RawText, &rec.GroupID); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}
