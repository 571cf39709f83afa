package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/binhtv97/wasted-item/internal/domain"
)

type fakeSettingsSource struct {
	tz     string
	cutoff int
	err    error
}

func (f fakeSettingsSource) TimezoneConfig(context.Context) (string, int, error) {
	return f.tz, f.cutoff, f.err
}

func TestOffsetMinutes_DirectDescriptors(t *testing.T) {
	now := time.Now()
	cases := []struct {
		tz   string
		want int
	}{
		{"UTC+7", 420},
		{"utc+07", 420},
		{"GMT-5", -300},
		{"UTC+05:30", 330},
		{"GMT+0", 0},
	}
	for _, tc := range cases {
		got, err := OffsetMinutes(tc.tz, now)
		require.NoError(t, err, tc.tz)
		assert.Equal(t, tc.want, got, tc.tz)
	}
}

func TestOffsetMinutes_NamedZone(t *testing.T) {
	// Asia/Bangkok has a fixed +7 offset, no DST.
	got, err := OffsetMinutes("Asia/Bangkok", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 420, got)
}

func TestOffsetMinutes_Invalid(t *testing.T) {
	_, err := OffsetMinutes("Not/AZone", time.Now())
	assert.Error(t, err)
}

func TestResolveSettings_SourceErrorFallsBack(t *testing.T) {
	src := fakeSettingsSource{err: errors.New("db down")}
	got := ResolveSettings(context.Background(), src, zap.NewNop(), time.Now())
	assert.Equal(t, domain.DefaultSettings(), got)
}

func TestResolveSettings_BadTimezoneZeroOffset(t *testing.T) {
	src := fakeSettingsSource{tz: "Mars/Olympus", cutoff: 6}
	got := ResolveSettings(context.Background(), src, zap.NewNop(), time.Now())
	assert.Equal(t, 0, got.TimezoneOffsetMinutes)
	assert.Equal(t, 6, got.CutoffHour)
}

func TestResolveSettings_Direct(t *testing.T) {
	src := fakeSettingsSource{tz: "UTC+7", cutoff: 4}
	got := ResolveSettings(context.Background(), src, zap.NewNop(), time.Now())
	assert.Equal(t, 420, got.TimezoneOffsetMinutes)
	assert.Equal(t, 4, got.CutoffHour)
}

func TestResolveSettings_CutoffOutOfRange(t *testing.T) {
	src := fakeSettingsSource{tz: "UTC", cutoff: 99}
	got := ResolveSettings(context.Background(), src, zap.NewNop(), time.Now())
	assert.Equal(t, 0, got.CutoffHour)
}
