// Package memory implements the ledger ports in process memory. It
// backs the repository-contract tests and the memory backend for local
// development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ledgerbot/internal/core"
	"ledgerbot/internal/ledger"
)

type Store struct {
	mu      sync.Mutex
	records []core.Record
	groups  []core.GroupStatus
	wallet  []core.WalletEntry
	nowUTC  func() time.Time
}

var (
	_ ledger.GroupRegistry = (*Store)(nil)
	_ ledger.RecordWriter  = (*Store)(nil)
	_ ledger.RecordQuerier = (*Store)(nil)
	_ ledger.Wallet        = (*Store)(nil)
)

func New() *Store {
	return &Store{nowUTC: func() time.Time { return time.Now().UTC() }}
}

// SetClock fixes the store's UTC clock. Test hook.
func (s *Store) SetClock(now func() time.Time) {
	s.nowUTC = now
}

// GroupEnabled implements ledger.GroupRegistry.
func (s *Store) GroupEnabled(_ context.Context, groupID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g.GroupID == groupID {
			return g.Enabled, nil
		}
	}
	return false, nil
}

// EnableGroup implements ledger.GroupRegistry. Idempotent upsert: first
// matching row updated in place, otherwise a new row is appended.
func (s *Store) EnableGroup(_ context.Context, groupID, actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.groups {
		if s.groups[i].GroupID == groupID {
			s.groups[i].Enabled = true
			s.groups[i].CreatedBy = actorID
			return nil
		}
	}
	s.groups = append(s.groups, core.GroupStatus{
		GroupID:   groupID,
		Enabled:   true,
		CreatedAt: core.FormatTimestamp(s.nowUTC()),
		CreatedBy: actorID,
	})
	return nil
}

// GroupRows returns a copy of the groups table. Test hook.
func (s *Store) GroupRows() []core.GroupStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.GroupStatus(nil), s.groups...)
}

// AppendRecord implements ledger.RecordWriter.
func (s *Store) AppendRecord(_ context.Context, rec core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec = rec.Normalize(s.nowUTC())
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validate record: %w", err)
	}
	s.records = append(s.records, rec)
	return nil
}

// QueryRecords implements ledger.RecordQuerier.
func (s *Store) QueryRecords(_ context.Context, filter ledger.QueryFilter) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.filter(filter)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	if limit := filter.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SummarizeByCategory implements ledger.RecordQuerier.
func (s *Store) SummarizeByCategory(_ context.Context, filter ledger.QueryFilter) (core.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Summarize(s.filter(filter)), nil
}

func (s *Store) filter(filter ledger.QueryFilter) []core.Record {
	out := make([]core.Record, 0)
	for _, r := range s.records {
		if r.GroupID != filter.GroupID {
			continue
		}
		if r.Timestamp < filter.StartTS || r.Timestamp >= filter.EndTS {
			continue
		}
		if filter.Category != "" && r.Category != filter.Category {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Balance implements ledger.Wallet.
func (s *Store) Balance(_ context.Context, groupID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.wallet {
		if w.GroupID == groupID {
			return w.Balance, nil
		}
	}
	return 0, nil
}

// Deposit implements ledger.Wallet.
func (s *Store) Deposit(ctx context.Context, groupID string, amount int64, actorID string) (int64, error) {
	return s.adjust(groupID, amount, actorID)
}

// Deduct implements ledger.Wallet.
func (s *Store) Deduct(ctx context.Context, groupID string, amount int64, actorID string) (int64, error) {
	return s.adjust(groupID, -amount, actorID)
}

func (s *Store) adjust(groupID string, delta int64, actorID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := core.FormatTimestamp(s.nowUTC())
	for i := range s.wallet {
		if s.wallet[i].GroupID == groupID {
			s.wallet[i].Balance += delta
			s.wallet[i].UpdatedAt = now
			s.wallet[i].UpdatedBy = actorID
			return s.wallet[i].Balance, nil
		}
	}
	s.wallet = append(s.wallet, core.WalletEntry{
		GroupID:   groupID,
		Balance:   delta,
		UpdatedAt: now,
		UpdatedBy: actorID,
	})
	return delta, nil
}
