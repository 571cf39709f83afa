package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/binhtv97/wasted-item/internal/domain"
)

type fakeStore struct {
	tz      string
	cutoff  int
	entries []domain.WasteEntry
	err     error

	gotStart, gotEnd time.Time
}

func (f *fakeStore) TimezoneConfig(context.Context) (string, int, error) {
	return f.tz, f.cutoff, nil
}

func (f *fakeStore) EntriesInRange(_ context.Context, start, end time.Time) ([]domain.WasteEntry, error) {
	f.gotStart, f.gotEnd = start, end
	return f.entries, f.err
}

func TestService_Generate(t *testing.T) {
	now := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)
	store := &fakeStore{
		tz: "UTC",
		entries: []domain.WasteEntry{
			{OutletCode: "OUTLET001", ItemCode: "VEGETABLES", ItemLabel: "Fresh Vegetables", Unit: "kg", ColorTag: "#228B22", Quantity: 10},
		},
	}
	svc := NewService(store, zap.NewNop()).WithClock(func() time.Time { return now })

	artifact, err := svc.Generate(context.Background(), domain.PeriodDaily)
	require.NoError(t, err)

	assert.Equal(t, "food-wastage-daily-report-2024-03-05.csv", artifact.Filename)
	assert.Contains(t, artifact.Content, "OUTLET001,VEGETABLES,Fresh Vegetables,kg,10,#228B22")
	// The store was queried with the resolved period window.
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), store.gotStart)
	assert.Equal(t, time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC), store.gotEnd)
}

func TestService_GenerateStoreErrorPropagates(t *testing.T) {
	store := &fakeStore{tz: "UTC", err: errors.New("query failed")}
	svc := NewService(store, zap.NewNop())

	_, err := svc.Generate(context.Background(), domain.PeriodWeekly)
	assert.ErrorContains(t, err, "query failed")
}

func TestService_SaveToFolder(t *testing.T) {
	now := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)
	store := &fakeStore{tz: "UTC"}
	svc := NewService(store, zap.NewNop()).WithClock(func() time.Time { return now })

	dir := filepath.Join(t.TempDir(), "csv")
	path, err := svc.SaveToFolder(context.Background(), domain.PeriodMonthly, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "food-wastage-monthly-report-2024-03-05.csv"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "outlet,item_code,item_label,unit,total,color", string(content))
}

func TestService_GenerateDetailed(t *testing.T) {
	now := time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)
	store := &fakeStore{
		tz: "UTC",
		entries: []domain.WasteEntry{
			{OutletCode: "O1", ItemCode: "X", Unit: "kg", Quantity: 1.5,
				RecordedAtUTC: time.Date(2024, time.March, 5, 7, 0, 0, 0, time.UTC)},
		},
	}
	svc := NewService(store, zap.NewNop()).WithClock(func() time.Time { return now })

	artifact, err := svc.GenerateDetailed(context.Background(), domain.PeriodDaily)
	require.NoError(t, err)
	assert.Contains(t, artifact.Content, "2024-03-05T07:00:00Z,O1,X,")
}
