// Package ledger defines the ports of the three-table ledger store.
package ledger

import (
	"context"
	"errors"

	"ledgerbot/internal/core"
)

// ErrUnavailable wraps any remote-store failure (network, auth, missing
// sheet). Callers present it as a short human-readable reply instead of
// letting it crash the request path.
var ErrUnavailable = errors.New("ledger store unavailable")

// DefaultQueryLimit caps query results when the filter leaves Limit at
// zero.
const DefaultQueryLimit = 50

// QueryFilter selects records of one group inside a half-open lexical
// timestamp interval [StartTS, EndTS). Category, when set, must match
// exactly. Limit zero means DefaultQueryLimit.
type QueryFilter struct {
	GroupID  string
	StartTS  string
	EndTS    string
	Category string
	Limit    int
}

// Ports of the ledger store. Implementations perform one network round
// trip per call and never cache; every read re-fetches the table.
type (
	// GroupRegistry tracks which chat groups may use the ledger.
	GroupRegistry interface {
		// GroupEnabled reports whether the group's row carries an enabled
		// flag. A missing row means disabled, not an error.
		GroupEnabled(ctx context.Context, groupID string) (bool, error)

		// EnableGroup upserts the group's row with enabled=true. Idempotent;
		// concurrent enables may race on the actor field but converge on
		// the flag.
		EnableGroup(ctx context.Context, groupID, actorID string) error
	}

	// RecordWriter appends immutable ledger entries.
	RecordWriter interface {
		// AppendRecord appends one row. A supplied timestamp is kept as-is;
		// an empty one is stamped with UTC now.
		AppendRecord(ctx context.Context, rec core.Record) error
	}

	// RecordQuerier lists and aggregates ledger entries.
	RecordQuerier interface {
		// QueryRecords returns matching records ordered by timestamp
		// descending, at most filter.Limit of them. No match yields an
		// empty slice.
		QueryRecords(ctx context.Context, filter QueryFilter) ([]core.Record, error)

		// SummarizeByCategory aggregates matching records per category,
		// buckets ordered by descending amount.
		SummarizeByCategory(ctx context.Context, filter QueryFilter) (core.Summary, error)
	}

	// Wallet keeps a per-group running balance. Deposit and Deduct are
	// plain read-modify-write pairs with no serialization; two
	// near-simultaneous calls for the same group can lose an update.
	Wallet interface {
		// Balance returns the group's balance, 0 when the row is absent or
		// unparseable.
		Balance(ctx context.Context, groupID string) (int64, error)

		// Deposit adds amount and returns the new balance, creating the row
		// lazily with the delta as opening balance.
		Deposit(ctx context.Context, groupID string, amount int64, actorID string) (int64, error)

		// Deduct subtracts amount and returns the new balance, which may go
		// negative.
		Deduct(ctx context.Context, groupID string, amount int64, actorID string) (int64, error)
	}
)

// EffectiveLimit resolves the filter's limit.
func (f QueryFilter) EffectiveLimit() int {
	if f.Limit <= 0 {
		return DefaultQueryLimit
	}
	return f.Limit
}
