package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/binhtv97/wasted-item/internal/domain"
)

// Store is the narrow read contract report generation needs from storage.
type Store interface {
	SettingsSource
	EntriesInRange(ctx context.Context, start, end time.Time) ([]domain.WasteEntry, error)
}

// Service generates report artifacts. The clock is injected so period
// resolution and filenames are deterministic under test.
type Service struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// WithClock overrides the generation clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Generate produces the aggregated summary CSV for the current period of the
// given kind. Settings are re-resolved on every call.
func (s *Service) Generate(ctx context.Context, kind domain.PeriodKind) (domain.ReportArtifact, error) {
	now := s.now()
	settings := ResolveSettings(ctx, s.store, s.log, now)
	rng := ResolvePeriod(kind, settings, now)
	entries, err := s.store.EntriesInRange(ctx, rng.StartUTC, rng.EndUTC)
	if err != nil {
		return domain.ReportArtifact{}, fmt.Errorf("read entries: %w", err)
	}
	return Summary(Aggregate(entries), kind, now), nil
}

// GenerateDetailed produces the raw-row CSV for the current period.
func (s *Service) GenerateDetailed(ctx context.Context, kind domain.PeriodKind) (domain.ReportArtifact, error) {
	now := s.now()
	settings := ResolveSettings(ctx, s.store, s.log, now)
	rng := ResolvePeriod(kind, settings, now)
	entries, err := s.store.EntriesInRange(ctx, rng.StartUTC, rng.EndUTC)
	if err != nil {
		return domain.ReportArtifact{}, fmt.Errorf("read entries: %w", err)
	}
	return Detailed(entries, kind, now), nil
}

// SaveToFolder generates the summary CSV and persists it under dir, creating
// the directory if absent. Returns the full path written.
func (s *Service) SaveToFolder(ctx context.Context, kind domain.PeriodKind, dir string) (string, error) {
	artifact, err := s.Generate(ctx, kind)
	if err != nil {
		return "", err
	}
	return SaveArtifact(dir, artifact)
}

// SaveArtifact writes an already generated artifact under dir.
func SaveArtifact(dir string, a domain.ReportArtifact) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, a.Filename)
	if err := os.WriteFile(path, []byte(a.Content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
