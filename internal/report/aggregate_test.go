package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binhtv97/wasted-item/internal/domain"
)

func entry(outlet, item, unit string, qty float64) domain.WasteEntry {
	return domain.WasteEntry{
		OutletCode:    outlet,
		ItemCode:      item,
		Unit:          unit,
		Quantity:      qty,
		RecordedAtUTC: time.Now().UTC(),
	}
}

func TestAggregate_MergesByKey(t *testing.T) {
	rows := Aggregate([]domain.WasteEntry{
		entry("OUTLET001", "VEGETABLES", "kg", 10),
		entry("OUTLET001", "FRIES", "kg", 4),
		entry("OUTLET001", "VEGETABLES", "kg", 2.5),
	})

	require.Len(t, rows, 2)
	assert.Equal(t, 12.5, rows[0].Total)
	assert.Equal(t, 4.0, rows[1].Total)
}

func TestAggregate_UnitSplitsKey(t *testing.T) {
	rows := Aggregate([]domain.WasteEntry{
		entry("OUTLET001", "VEGETABLES", "kg", 10),
		entry("OUTLET001", "VEGETABLES", "pcs", 3),
	})
	assert.Len(t, rows, 2)
}

func TestAggregate_ClampsNegativeNet(t *testing.T) {
	rows := Aggregate([]domain.WasteEntry{
		entry("OUTLET001", "FRIES", "kg", 4),
		entry("OUTLET001", "FRIES", "kg", -7),
	})
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].Total)
}

func TestAggregate_NegativeIntermediateAllowed(t *testing.T) {
	// A correction below zero followed by more waste: only the net is clamped.
	rows := Aggregate([]domain.WasteEntry{
		entry("OUTLET001", "FRIES", "kg", 2),
		entry("OUTLET001", "FRIES", "kg", -5),
		entry("OUTLET001", "FRIES", "kg", 6),
	})
	require.Len(t, rows, 1)
	assert.Equal(t, 3.0, rows[0].Total)
}

func TestAggregate_FirstSeenOrder(t *testing.T) {
	rows := Aggregate([]domain.WasteEntry{
		entry("B", "FRIES", "kg", 1),
		entry("A", "VEGETABLES", "kg", 1),
		entry("B", "FRIES", "kg", 1),
		entry("A", "BREAD", "kg", 1),
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "FRIES", rows[0].ItemCode)
	assert.Equal(t, "VEGETABLES", rows[1].ItemCode)
	assert.Equal(t, "BREAD", rows[2].ItemCode)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}
