package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/binhtv97/wasted-item/internal/domain"
)

const (
	summaryHeader  = "outlet,item_code,item_label,unit,total,color"
	detailedHeader = "date,outlet,item_code,item_label,unit,count,color"
)

// Filename builds the deterministic report name from the generation instant,
// not the period start. Two exports of the same period on different days get
// different names on purpose: the date records when the export ran.
func Filename(kind domain.PeriodKind, now time.Time) string {
	y, m, d := now.Date()
	return fmt.Sprintf("food-wastage-%s-report-%04d-%02d-%02d.csv", kind, y, m, d)
}

// Summary renders aggregated rows as the canonical six-column CSV.
// Fields are joined unquoted; codes, labels and colors are admin-controlled
// and assumed free of the delimiter.
func Summary(rows []domain.AggregateRow, kind domain.PeriodKind, now time.Time) domain.ReportArtifact {
	var b strings.Builder
	b.WriteString(summaryHeader)
	for _, r := range rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join([]string{
			r.OutletCode, r.ItemCode, r.ItemLabel, r.Unit,
			formatQuantity(r.Total), r.ColorTag,
		}, ","))
	}
	return domain.ReportArtifact{Filename: Filename(kind, now), Content: b.String()}
}

// Detailed renders one row per raw entry with its UTC timestamp and the
// unclamped quantity, for manual inspection of a period.
func Detailed(entries []domain.WasteEntry, kind domain.PeriodKind, now time.Time) domain.ReportArtifact {
	var b strings.Builder
	b.WriteString(detailedHeader)
	for _, e := range entries {
		b.WriteByte('\n')
		b.WriteString(strings.Join([]string{
			e.RecordedAtUTC.UTC().Format(time.RFC3339),
			e.OutletCode, e.ItemCode, e.ItemLabel, e.Unit,
			formatQuantity(e.Quantity), e.ColorTag,
		}, ","))
	}
	y, m, d := now.Date()
	name := fmt.Sprintf("food-wastage-%s-detail-report-%04d-%02d-%02d.csv", kind, y, m, d)
	return domain.ReportArtifact{Filename: name, Content: b.String()}
}

// formatQuantity renders a total as a minimal decimal string: "10", not
// "10.000000".
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
