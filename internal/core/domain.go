package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// TimestampLayout is the only timestamp serialization used against the
	// store. Fixed-width and zero-padded so lexical order equals
	// chronological order.
	TimestampLayout = "2006-01-02 15:04:05"

	// DefaultCategory is assigned when a record is appended without one.
	DefaultCategory = "其他"

	// UncategorizedBucket collects rows whose stored category is empty
	// when summarizing.
	UncategorizedBucket = "未分類"

	DefaultCurrency = "TWD"
)

type (
	// Record is one immutable ledger entry. Once appended it is never
	// updated or deleted.
	Record struct {
		Timestamp string // TimestampLayout, no timezone suffix
		Amount    int64
		Category  string
		Item      string
		Currency  string
		UserID    string
		RawText   string
		GroupID   string
	}

	// GroupStatus is the enablement row for one chat group.
	GroupStatus struct {
		GroupID   string
		Enabled   bool
		CreatedAt string
		CreatedBy string
		Note      string
	}

	// WalletEntry is the per-group running balance row.
	WalletEntry struct {
		GroupID   string
		Balance   int64
		UpdatedAt string
		UpdatedBy string
	}
)

var (
	ErrEmptyGroupID = errors.New("empty group id")
	ErrEmptyItem    = errors.New("empty item")
	ErrZeroAmount   = errors.New("zero amount")
)

// FormatTimestamp renders t in the store's timestamp layout. The caller
// chooses the location; the string carries none.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp reads a stored timestamp back in the given location.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, loc)
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.GroupID) == "" {
		return ErrEmptyGroupID
	}
	if strings.TrimSpace(r.Item) == "" {
		return ErrEmptyItem
	}
	if r.Amount == 0 {
		return ErrZeroAmount
	}
	return nil
}

// Normalize fills the defaulted fields of a record before it is appended.
// A supplied timestamp is never overridden.
func (r Record) Normalize(nowUTC time.Time) Record {
	if strings.TrimSpace(r.Category) == "" {
		r.Category = DefaultCategory
	}
	if strings.TrimSpace(r.Currency) == "" {
		r.Currency = DefaultCurrency
	}
	if strings.TrimSpace(r.Timestamp) == "" {
		r.Timestamp = FormatTimestamp(nowUTC)
	}
	return r
}
