package report

import "github.com/binhtv97/wasted-item/internal/domain"

type aggregateKey struct {
	outlet string
	item   string
	unit   string
}

// Aggregate reduces raw entries into one row per (outlet, item, unit) key.
// Entries are expected pre-filtered to the period and ordered by recording
// time; rows keep first-seen key order so output is reproducible. Negative
// net totals are clamped to zero.
func Aggregate(entries []domain.WasteEntry) []domain.AggregateRow {
	index := make(map[aggregateKey]int)
	var rows []domain.AggregateRow
	for _, e := range entries {
		k := aggregateKey{outlet: e.OutletCode, item: e.ItemCode, unit: e.Unit}
		if i, ok := index[k]; ok {
			rows[i].Total += e.Quantity
			continue
		}
		index[k] = len(rows)
		rows = append(rows, domain.AggregateRow{
			OutletCode: e.OutletCode,
			ItemCode:   e.ItemCode,
			ItemLabel:  e.ItemLabel,
			Unit:       e.Unit,
			ColorTag:   e.ColorTag,
			Total:      e.Quantity,
		})
	}
	for i := range rows {
		if rows[i].Total < 0 {
			rows[i].Total = 0
		}
	}
	return rows
}
