package core

import "sort"

// CategoryTotal aggregates the records of one category.
type CategoryTotal struct {
	Category string
	Amount   int64
	Count    int
}

// Summary is a compact aggregation over a queried range. ByCategory is
// ordered by descending amount.
type Summary struct {
	TotalAmount int64
	TotalCount  int
	ByCategory  []CategoryTotal
}

// Summarize aggregates records into per-category totals. Rows with an
// empty category land in the UncategorizedBucket.
func Summarize(records []Record) Summary {
	var s Summary
	byCat := map[string]*CategoryTotal{}
	order := make([]string, 0)
	for _, r := range records {
		cat := r.Category
		if cat == "" {
			cat = UncategorizedBucket
		}
		ct, seen := byCat[cat]
		if !seen {
			ct = &CategoryTotal{Category: cat}
			byCat[cat] = ct
			order = append(order, cat)
		}
		ct.Amount += r.Amount
		ct.Count++
		s.TotalAmount += r.Amount
		s.TotalCount++
	}
	s.ByCategory = make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		s.ByCategory = append(s.ByCategory, *byCat[cat])
	}
	sort.SliceStable(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Amount > s.ByCategory[j].Amount
	})
	return s
}
