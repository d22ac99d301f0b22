package google

import (
	"testing"

	"ledgerbot/internal/ledger"
)

func sampleValues() [][]any {
	return [][]any{
		{"ts", "amount", "category", "item", "currency", "user_id", "raw_text", "group_id"},
		{"2026-02-01 12:00:00", 120.0, "餐飲", "午餐", "TWD", "u1", "餐飲 120 午餐", "g1"},
		{"2026-02-01 18:30:00", "80", "餐飲", "晚餐", "TWD", "u2", "餐飲 80 晚餐", "g1"},
		{"2026-02-02 09:00:00", 55.0, "交通", "捷運", "TWD", "u1", "交通 55 捷運", "g1"},
		{"2026-02-01 13:00:00", 999.0, "餐飲", "別群的", "TWD", "u9", "餐飲 999 別群的", "g2"},
	}
}

func TestDecodeRecords(t *testing.T) {
	recs := decodeRecords(sampleValues())
	if len(recs) != 4 {
		t.Fatalf("expected 4 records, got %d", len(recs))
	}
	r := recs[0]
	if r.Timestamp != "2026-02-01 12:00:00" || r.Amount != 120 || r.Category != "餐飲" ||
		r.Item != "午餐" || r.Currency != "TWD" || r.UserID != "u1" || r.GroupID != "g1" {
		t.Fatalf("unexpected record: %+v", r)
	}
}

func TestDecodeRecordsHeaderOnly(t *testing.T) {
	values := [][]any{{"ts", "amount", "category", "item", "currency", "user_id", "raw_text", "group_id"}}
	if recs := decodeRecords(values); len(recs) != 0 {
		t.Fatalf("expected none, got %v", recs)
	}
	if recs := decodeRecords(nil); len(recs) != 0 {
		t.Fatalf("expected none, got %v", recs)
	}
}

func TestFilterRecordsRangeAndCategory(t *testing.T) {
	recs := decodeRecords(sampleValues())

	got := filterRecords(recs, ledger.QueryFilter{
		GroupID: "g1",
		StartTS: "2026-02-01 00:00:00",
		EndTS:   "2026-02-02 00:00:00",
	})
	if len(got) != 2 {
		t.Fatalf("expected 2, got %d: %v", len(got), got)
	}

	got = filterRecords(recs, ledger.QueryFilter{
		GroupID:  "g1",
		StartTS:  "2026-02-01 00:00:00",
		EndTS:    "2026-02-03 00:00:00",
		Category: "交通",
	})
	if len(got) != 1 || got[0].Item != "捷運" {
		t.Fatalf("category filter: %v", got)
	}

	// End bound is exclusive.
	got = filterRecords(recs, ledger.QueryFilter{
		GroupID: "g1",
		StartTS: "2026-02-01 00:00:00",
		EndTS:   "2026-02-01 18:30:00",
	})
	if len(got) != 1 || got[0].Item != "午餐" {
		t.Fatalf("exclusive end: %v", got)
	}
}

func TestFindWalletRow(t *testing.T) {
	values := [][]any{
		{"group_id", "balance", "updated_at", "updated_by"},
		{"g1", 700.0, "2026-02-01 00:00:00", "u1"},
		{"g2", "not-a-number", "2026-02-01 00:00:00", "u2"},
	}

	idx, bal := findWalletRow(values, "g1")
	if idx != 1 || bal != 700 {
		t.Fatalf("g1: idx=%d bal=%d", idx, bal)
	}

	// Unparseable balance reads as 0, not an error.
	idx, bal = findWalletRow(values, "g2")
	if idx != 2 || bal != 0 {
		t.Fatalf("g2: idx=%d bal=%d", idx, bal)
	}

	idx, bal = findWalletRow(values, "missing")
	if idx != -1 || bal != 0 {
		t.Fatalf("missing: idx=%d bal=%d", idx, bal)
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]int64{
		"120":   120,
		"-35":   -35,
		"120.0": 120,
		"":      0,
		"abc":   0,
	}
	for in, want := range cases {
		if got := parseAmount(in); got != want {
			t.Fatalf("parseAmount(%q) = %d, want %d", in, got, want)
		}
	}
}
