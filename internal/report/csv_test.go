package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binhtv97/wasted-item/internal/domain"
)

func TestFilename_GenerationDate(t *testing.T) {
	now := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "food-wastage-daily-report-2024-03-05.csv",
		Filename(domain.PeriodDaily, now))
	assert.Equal(t, "food-wastage-weekly-report-2024-03-05.csv",
		Filename(domain.PeriodWeekly, now))
	assert.Equal(t, "food-wastage-monthly-report-2024-03-05.csv",
		Filename(domain.PeriodMonthly, now))
}

func TestSummary_CanonicalBody(t *testing.T) {
	now := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)
	rows := Aggregate([]domain.WasteEntry{
		{OutletCode: "OUTLET001", ItemCode: "VEGETABLES", ItemLabel: "Fresh Vegetables", Unit: "kg", ColorTag: "#228B22", Quantity: 10},
		{OutletCode: "OUTLET001", ItemCode: "FRIES", ItemLabel: "French Fries", Unit: "kg", ColorTag: "#FFD700", Quantity: 4},
	})
	artifact := Summary(rows, domain.PeriodDaily, now)

	want := strings.Join([]string{
		"outlet,item_code,item_label,unit,total,color",
		"OUTLET001,VEGETABLES,Fresh Vegetables,kg,10,#228B22",
		"OUTLET001,FRIES,French Fries,kg,4,#FFD700",
	}, "\n")
	assert.Equal(t, want, artifact.Content)
	assert.Equal(t, "food-wastage-daily-report-2024-03-05.csv", artifact.Filename)
}

func TestSummary_NeverRendersNegative(t *testing.T) {
	now := time.Now()
	rows := Aggregate([]domain.WasteEntry{
		{OutletCode: "O1", ItemCode: "X", Unit: "kg", Quantity: -3},
	})
	artifact := Summary(rows, domain.PeriodDaily, now)

	lines := strings.Split(artifact.Content, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], ",0,")
	assert.NotContains(t, artifact.Content, "-3")
}

func TestSummary_HeaderOnlyWhenEmpty(t *testing.T) {
	artifact := Summary(nil, domain.PeriodWeekly, time.Now())
	assert.Equal(t, "outlet,item_code,item_label,unit,total,color", artifact.Content)
}

func TestSummary_FractionalTotals(t *testing.T) {
	artifact := Summary([]domain.AggregateRow{
		{OutletCode: "O1", ItemCode: "X", Unit: "kg", Total: 2.5},
	}, domain.PeriodDaily, time.Now())
	assert.Contains(t, artifact.Content, ",2.5,")
}

func TestDetailed_RawRows(t *testing.T) {
	now := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)
	recorded := time.Date(2024, time.March, 4, 22, 15, 3, 0, time.UTC)
	artifact := Detailed([]domain.WasteEntry{
		{OutletCode: "OUTLET001", ItemCode: "FRIES", ItemLabel: "French Fries", Unit: "kg", ColorTag: "#FFD700", Quantity: -2, RecordedAtUTC: recorded},
	}, domain.PeriodDaily, now)

	lines := strings.Split(artifact.Content, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,outlet,item_code,item_label,unit,count,color", lines[0])
	// Raw rows keep the unclamped quantity and the UTC timestamp.
	assert.Equal(t, "2024-03-04T22:15:03Z,OUTLET001,FRIES,French Fries,kg,-2,#FFD700", lines[1])
	assert.Equal(t, "food-wastage-daily-detail-report-2024-03-05.csv", artifact.Filename)
}
