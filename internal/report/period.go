package report

import (
	"time"

	"github.com/binhtv97/wasted-item/internal/domain"
)

// ResolvePeriod computes the half-open UTC window [start, end) of the current
// business period. All calendar arithmetic runs in local time, defined as
// now + offset; the configured offset is authoritative and the host locale is
// never consulted. Cutoff hour 0 recovers plain midnight-start periods.
//
// Daily and weekly windows advance by fixed 24h/7×24h steps, valid because
// the offset model has no DST transitions. Monthly advances by calendar
// month, since months vary in length.
func ResolvePeriod(kind domain.PeriodKind, settings domain.Settings, now time.Time) domain.PeriodRange {
	offset := time.Duration(settings.TimezoneOffsetMinutes) * time.Minute
	local := now.UTC().Add(offset)
	cutoff := settings.CutoffHour

	var start, end time.Time
	switch kind {
	case domain.PeriodWeekly:
		// Week starts Monday at cutoff. Weekday: 0=Sunday.
		daysSinceMonday := (int(local.Weekday()) + 6) % 7
		monday := local.AddDate(0, 0, -daysSinceMonday)
		y, m, d := monday.Date()
		start = time.Date(y, m, d, cutoff, 0, 0, 0, time.UTC)
		if daysSinceMonday == 0 && local.Hour() < cutoff {
			start = start.AddDate(0, 0, -7)
		}
		end = start.Add(7 * 24 * time.Hour)

	case domain.PeriodMonthly:
		y, m, _ := local.Date()
		start = time.Date(y, m, 1, cutoff, 0, 0, 0, time.UTC)
		if local.Day() == 1 && local.Hour() < cutoff {
			start = start.AddDate(0, -1, 0)
		}
		end = start.AddDate(0, 1, 0)

	default: // daily
		y, m, d := local.Date()
		start = time.Date(y, m, d, cutoff, 0, 0, 0, time.UTC)
		if local.Hour() < cutoff {
			start = start.AddDate(0, 0, -1)
		}
		end = start.Add(24 * time.Hour)
	}

	return domain.PeriodRange{
		StartUTC: start.Add(-offset),
		EndUTC:   end.Add(-offset),
	}
}
