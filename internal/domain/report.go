package domain

import "time"

// PeriodKind selects the reporting window: a business day, a Monday-anchored
// week, or a calendar month.
type PeriodKind string

const (
	PeriodDaily   PeriodKind = "daily"
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
)

func (k PeriodKind) String() string { return string(k) }

// Settings is the timezone configuration every period computation starts
// from. It is re-read per operation so admin changes apply on the next tick.
type Settings struct {
	Timezone              string
	TimezoneOffsetMinutes int
	CutoffHour            int // local hour [0,23] at which a new period begins
}

// DefaultSettings is the fallback when no configuration is readable: UTC,
// midnight cutoff.
func DefaultSettings() Settings {
	return Settings{Timezone: "UTC"}
}

// PeriodRange is a half-open UTC window [StartUTC, EndUTC).
type PeriodRange struct {
	StartUTC time.Time
	EndUTC   time.Time
}

// Contains reports whether t falls inside the half-open window.
func (r PeriodRange) Contains(t time.Time) bool {
	return !t.Before(r.StartUTC) && t.Before(r.EndUTC)
}

// WasteEntry is one recorded waste event, read-only to the reporting core.
// Quantity may be negative (a correction); only aggregate output is clamped.
type WasteEntry struct {
	OutletCode    string
	ItemCode      string
	ItemLabel     string
	Unit          string
	ColorTag      string
	Quantity      float64
	RecordedAtUTC time.Time
}

// AggregateRow is the summed total for one (outlet, item, unit) key within a
// period. Rows keep the order the key was first seen in the entry stream.
type AggregateRow struct {
	OutletCode string
	ItemCode   string
	ItemLabel  string
	Unit       string
	ColorTag   string
	Total      float64
}

// Recipient is a configured destination for automatic report delivery.
// SendTime holds the stored "HH:MM" string; use SendMinutes for matching.
type Recipient struct {
	Email      string
	ReportType PeriodKind
	SendTime   string
	IsActive   bool
}

// SendMinutes returns the recipient's send time as minutes since local
// midnight, or -1 when the stored value is malformed. A malformed time never
// matches a tick.
func (r Recipient) SendMinutes() int {
	m, err := parseHHMM(r.SendTime)
	if err != nil {
		return -1
	}
	return m
}

// ReportArtifact is one generated CSV. Ephemeral: produced fresh on every
// invocation, never cached.
type ReportArtifact struct {
	Filename string
	Content  string
}
