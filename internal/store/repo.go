package store

import (
	"context"
	"time"

	"github.com/binhtv97/wasted-item/internal/domain"
)

// Repo defines storage operations for the reporting engine and the admin
// surface that feeds it. The reporting core only reads; writes exist for the
// portal and seeding.
type Repo interface {
	// Read contract consumed by report generation and the worker.
	TimezoneConfig(ctx context.Context) (tz string, cutoffHour int, err error)
	ActiveRecipients(ctx context.Context) ([]domain.Recipient, error)
	EntriesInRange(ctx context.Context, start, end time.Time) ([]domain.WasteEntry, error)

	// Write surface.
	UpsertOutlet(ctx context.Context, code, name, timezone string, active bool) error
	UpsertItem(ctx context.Context, code, label, unit, color string) error
	UpsertRecipient(ctx context.Context, r domain.Recipient) error
	SetReportSettings(ctx context.Context, timezone string, cutoffHour int) error
	AddEntry(ctx context.Context, outletCode, itemCode, unit string, quantity float64, recordedAt time.Time) error

	Close() error
}
