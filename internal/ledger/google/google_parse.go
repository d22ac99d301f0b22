package google

import (
	"fmt"
	"strconv"
	"strings"

	"ledgerbot/internal/core"
	"ledgerbot/internal/ledger"
)

// decodeRecords converts a values matrix (as returned by the Sheets API)
// into records, matching columns by header name like a get_all_records
// read. The first row must be the header; rows shorter than the header
// are padded with empty strings.
func decodeRecords(values [][]any) []core.Record {
	if len(values) < 2 {
		return nil
	}
	headers := toStrings(values[0])
	col := map[string]int{}
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		if _, dup := col[h]; !dup {
			col[h] = i
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok {
			return ""
		}
		return safeGet(row, i)
	}

	out := make([]core.Record, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := toStrings(raw)
		rec := core.Record{
			Timestamp: field(row, "ts"),
			Amount:    parseAmount(field(row, "amount")),
			Category:  field(row, "category"),
			Item:      field(row, "item"),
			Currency:  field(row, "currency"),
			UserID:    field(row, "user_id"),
			RawText:   field(row, "raw_text"),
			GroupID:   field(row, "group_id"),
		}
		if rec.Timestamp == "" && rec.GroupID == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// filterRecords applies the group, lexical timestamp range and optional
// category filters. Limit is not applied here.
func filterRecords(records []core.Record, filter ledger.QueryFilter) []core.Record {
	out := make([]core.Record, 0)
	for _, r := range records {
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

// findWalletRow scans raw wallet rows for the first group match and
// returns its zero-based index and parsed balance. Absent or
// unparseable balances read as 0; the index is -1 when no row matches.
func findWalletRow(values [][]any, groupID string) (int, int64) {
	for i, raw := range values {
		row := toStrings(raw)
		if safeGet(row, 0) != groupID {
			continue
		}
		return i, parseAmount(safeGet(row, 1))
	}
	return -1, 0
}

// parseAmount reads an integer amount, tolerating the float rendering
// Sheets applies to numeric cells.
func parseAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(stringify(v))
	}
	return out
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
