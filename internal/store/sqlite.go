package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/binhtv97/wasted-item/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// TimezoneConfig returns the stored timezone descriptor and cutoff hour.
// Resolution order: the report_settings row, then the first active outlet's
// timezone with a midnight cutoff, then plain UTC. Absence of configuration
// is not an error.
func (r *SQLiteRepo) TimezoneConfig(ctx context.Context) (string, int, error) {
	var (
		tz     string
		cutoff int
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT timezone, cutoff_hour
		FROM report_settings
		ORDER BY id ASC
		LIMIT 1`,
	).Scan(&tz, &cutoff)
	if err == nil {
		return tz, cutoff, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", 0, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT timezone
		FROM outlets
		WHERE is_active = 1
		ORDER BY id ASC
		LIMIT 1`,
	).Scan(&tz)
	if err == nil {
		return tz, 0, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return "UTC", 0, nil
	}
	return "", 0, err
}

// ActiveRecipients returns enabled recipients in insertion order. Rows whose
// report_type is not a known period kind are skipped.
func (r *SQLiteRepo) ActiveRecipients(ctx context.Context) ([]domain.Recipient, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT email, report_type, send_time
		FROM report_recipients
		WHERE is_active = 1
		ORDER BY id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Recipient
	for rows.Next() {
		var email, reportType, sendTime string
		if err := rows.Scan(&email, &reportType, &sendTime); err != nil {
			return nil, err
		}
		kind, err := domain.ParsePeriodKind(reportType)
		if err != nil {
			continue
		}
		res = append(res, domain.Recipient{
			Email:      email,
			ReportType: kind,
			SendTime:   sendTime,
			IsActive:   true,
		})
	}
	return res, rows.Err()
}

// EntriesInRange returns waste entries with recorded_at in the half-open UTC
// range [start, end), ordered ascending by recording time.
func (r *SQLiteRepo) EntriesInRange(ctx context.Context, start, end time.Time) ([]domain.WasteEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.outlet_code, i.item_code, i.label, e.unit, i.color,
		       e.quantity, e.recorded_at
		FROM waste_entries e
		JOIN outlets o ON o.id = e.outlet_id
		JOIN waste_items i ON i.id = e.item_id
		WHERE e.recorded_at >= ? AND e.recorded_at < ?
		ORDER BY e.recorded_at ASC`,
		start.UTC().Unix(), end.UTC().Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.WasteEntry
	for rows.Next() {
		var (
			e          domain.WasteEntry
			recordedAt int64
		)
		if err := rows.Scan(
			&e.OutletCode, &e.ItemCode, &e.ItemLabel, &e.Unit, &e.ColorTag,
			&e.Quantity, &recordedAt,
		); err != nil {
			return nil, err
		}
		e.RecordedAtUTC = time.Unix(recordedAt, 0).UTC()
		res = append(res, e)
	}
	return res, rows.Err()
}

// UpsertOutlet inserts or updates an outlet by its code.
func (r *SQLiteRepo) UpsertOutlet(ctx context.Context, code, name, timezone string, active bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO outlets (outlet_code, name, timezone, is_active)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(outlet_code) DO UPDATE SET
			name      = excluded.name,
			timezone  = excluded.timezone,
			is_active = excluded.is_active`,
		code, name, timezone, boolToInt(active),
	)
	return err
}

// UpsertItem inserts or updates a waste item by its code.
func (r *SQLiteRepo) UpsertItem(ctx context.Context, code, label, unit, color string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO waste_items (item_code, label, unit, color)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(item_code) DO UPDATE SET
			label = excluded.label,
			unit  = excluded.unit,
			color = excluded.color`,
		code, label, unit, color,
	)
	return err
}

// UpsertRecipient inserts or updates a report recipient by email.
func (r *SQLiteRepo) UpsertRecipient(ctx context.Context, rec domain.Recipient) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO report_recipients (email, report_type, send_time, is_active)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			report_type = excluded.report_type,
			send_time   = excluded.send_time,
			is_active   = excluded.is_active`,
		rec.Email, rec.ReportType.String(), rec.SendTime, boolToInt(rec.IsActive),
	)
	return err
}

// SetReportSettings replaces the report settings row.
func (r *SQLiteRepo) SetReportSettings(ctx context.Context, timezone string, cutoffHour int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM report_settings`); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO report_settings (timezone, cutoff_hour) VALUES (?, ?)`,
		timezone, cutoffHour,
	); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// AddEntry records a waste event against an existing outlet and item.
func (r *SQLiteRepo) AddEntry(ctx context.Context, outletCode, itemCode, unit string, quantity float64, recordedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO waste_entries (outlet_id, item_id, unit, quantity, recorded_at)
		SELECT o.id, i.id, ?, ?, ?
		FROM outlets o, waste_items i
		WHERE o.outlet_code = ? AND i.item_code = ?`,
		unit, quantity, recordedAt.UTC().Unix(), outletCode, itemCode,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("unknown outlet %q or item %q", outletCode, itemCode)
	}
	return nil
}

// boolToInt converts a boolean to 1/0 for SQLite.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
