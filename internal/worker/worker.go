package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/binhtv97/wasted-item/internal/domain"
	"github.com/binhtv97/wasted-item/internal/report"
)

// Sender delivers a generated artifact to one recipient and returns a
// delivery identifier. The SMTP mailer implements this.
type Sender interface {
	Send(ctx context.Context, to string, kind domain.PeriodKind, artifact domain.ReportArtifact) (string, error)
}

// Store is what the dispatch loop reads each tick.
type Store interface {
	report.SettingsSource
	ActiveRecipients(ctx context.Context) ([]domain.Recipient, error)
}

// Options tune the dispatch loop. Zero values take the defaults below.
type Options struct {
	Interval        time.Duration // must divide evenly into 60s
	DeliveryTimeout time.Duration
	ReportsDir      string
}

const (
	defaultInterval        = 10 * time.Second
	defaultDeliveryTimeout = 30 * time.Second
	defaultReportsDir      = "./reports"
)

// Worker is the time-driven dispatch scheduler: a single cooperative loop
// that matches each active recipient's send time against the current local
// minute and triggers generation + delivery at most once per minute.
type Worker struct {
	store  Store
	svc    *report.Service
	sender Sender
	log    *zap.Logger

	interval        time.Duration
	deliveryTimeout time.Duration
	reportsDir      string

	now        func() time.Time
	lastMinute int64 // local minute already scanned, unix/60
}

func New(store Store, svc *report.Service, sender Sender, log *zap.Logger, opts Options) *Worker {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.DeliveryTimeout <= 0 {
		opts.DeliveryTimeout = defaultDeliveryTimeout
	}
	if opts.ReportsDir == "" {
		opts.ReportsDir = defaultReportsDir
	}
	return &Worker{
		store:           store,
		svc:             svc,
		sender:          sender,
		log:             log,
		interval:        opts.Interval,
		deliveryTimeout: opts.DeliveryTimeout,
		reportsDir:      opts.ReportsDir,
		now:             time.Now,
		lastMinute:      -1,
	}
}

// WithClock overrides the scheduling clock. Test hook.
func (w *Worker) WithClock(now func() time.Time) *Worker {
	w.now = now
	return w
}

// Run executes the loop until ctx is canceled. Ticks never overlap: the next
// tick waits for the current recipient scan to finish.
func (w *Worker) Run(ctx context.Context) {
	w.log.Info("report worker started", zap.Duration("interval", w.interval))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("report worker stopping")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// RunOnce performs a single scheduling cycle. Used by the one-shot CLI mode.
func (w *Worker) RunOnce(ctx context.Context) {
	w.tick(ctx)
}

// tick resolves the current local minute, and for each active recipient whose
// send time matches, generates the report, persists it, and attempts
// delivery. A local minute is scanned at most once even with sub-minute
// ticks.
func (w *Worker) tick(ctx context.Context) {
	now := w.now().UTC()
	settings := report.ResolveSettings(ctx, w.store, w.log, now)
	local := now.Add(time.Duration(settings.TimezoneOffsetMinutes) * time.Minute)

	minuteKey := local.Unix() / 60
	if minuteKey == w.lastMinute {
		return
	}
	w.lastMinute = minuteKey
	minutes := local.Hour()*60 + local.Minute()

	recipients, err := w.store.ActiveRecipients(ctx)
	if err != nil {
		w.log.Error("list recipients failed", zap.Error(err))
		return
	}

	for _, r := range recipients {
		if r.SendMinutes() != minutes {
			continue
		}
		w.dispatch(ctx, r)
	}
}

// dispatch handles one matched recipient. Failures are logged and isolated:
// a storage or delivery error for one recipient never aborts the others, and
// a delivery error never undoes the persisted artifact.
func (w *Worker) dispatch(ctx context.Context, r domain.Recipient) {
	artifact, err := w.svc.Generate(ctx, r.ReportType)
	if err != nil {
		w.log.Error("report generation failed",
			zap.String("email", r.Email),
			zap.String("period", r.ReportType.String()),
			zap.Error(err),
		)
		return
	}

	path, err := report.SaveArtifact(w.reportsDir, artifact)
	if err != nil {
		w.log.Warn("artifact persistence failed",
			zap.String("filename", artifact.Filename), zap.Error(err))
	} else {
		w.log.Info("artifact saved", zap.String("path", path))
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.deliveryTimeout)
	defer cancel()
	id, err := w.sender.Send(sendCtx, r.Email, r.ReportType, artifact)
	if err != nil {
		w.log.Error("delivery failed",
			zap.String("email", r.Email),
			zap.String("filename", artifact.Filename),
			zap.Error(err),
		)
		return
	}
	w.log.Info("report delivered",
		zap.String("email", r.Email),
		zap.String("filename", artifact.Filename),
		zap.String("messageID", id),
	)
}
