package report

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/binhtv97/wasted-item/internal/domain"
)

// SettingsSource supplies the stored timezone descriptor and cutoff hour.
type SettingsSource interface {
	TimezoneConfig(ctx context.Context) (tz string, cutoffHour int, err error)
}

// Direct descriptors like "UTC+7", "GMT-5:30", "utc+07:00".
var offsetRe = regexp.MustCompile(`^(?i:UTC|GMT)([+-]\d{1,2})(?::(\d{2}))?$`)

// OffsetMinutes converts a timezone descriptor into a UTC offset in minutes.
// Direct UTC±H[:MM]/GMT±H[:MM] forms are parsed as written; anything else is
// looked up as an IANA zone and the offset taken at now.
func OffsetMinutes(tz string, now time.Time) (int, error) {
	tz = strings.TrimSpace(tz)
	if m := offsetRe.FindStringSubmatch(tz); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins := 0
		if m[2] != "" {
			mins, _ = strconv.Atoi(m[2])
		}
		return h*60 + mins, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return 0, err
	}
	_, sec := now.In(loc).Zone()
	return sec / 60, nil
}

// ResolveSettings fetches the current timezone configuration and converts it
// to an offset. It never fails: any storage or parse problem falls back to
// UTC with a midnight cutoff. No caching; admin changes apply on the next
// call.
func ResolveSettings(ctx context.Context, src SettingsSource, log *zap.Logger, now time.Time) domain.Settings {
	tz, cutoff, err := src.TimezoneConfig(ctx)
	if err != nil {
		log.Warn("timezone config unavailable, using UTC defaults", zap.Error(err))
		return domain.DefaultSettings()
	}
	if cutoff < 0 || cutoff > 23 {
		cutoff = 0
	}
	offset, err := OffsetMinutes(tz, now)
	if err != nil {
		log.Warn("unresolvable timezone, using zero offset",
			zap.String("tz", tz), zap.Error(err))
		offset = 0
	}
	return domain.Settings{
		Timezone:              tz,
		TimezoneOffsetMinutes: offset,
		CutoffHour:            cutoff,
	}
}
