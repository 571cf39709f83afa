package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/binhtv97/wasted-item/internal/config"
	"github.com/binhtv97/wasted-item/internal/httpapi"
	"github.com/binhtv97/wasted-item/internal/mailer"
	"github.com/binhtv97/wasted-item/internal/report"
	"github.com/binhtv97/wasted-item/internal/store"
	"github.com/binhtv97/wasted-item/internal/worker"
)

// App wires the store, report service, mailer, dispatch worker, and the
// on-demand HTTP surface.
type App struct {
	cfg  config.Config
	log  *zap.Logger
	repo store.Repo
}

func New(cfg config.Config, log *zap.Logger) *App {
	return &App{cfg: cfg, log: log}
}

// Run starts the worker and the HTTP server and blocks until a shutdown
// signal arrives.
func (a *App) Run(ctx context.Context) error {
	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready", zap.String("path", a.cfg.DBPath))

	svc := report.NewService(repo, a.log)
	sink := mailer.New(a.cfg, a.log)
	w := worker.New(repo, svc, sink, a.log, worker.Options{
		Interval:   a.cfg.TickInterval,
		ReportsDir: a.cfg.ReportsDir,
	})

	srv := &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(svc, a.cfg.CSVDir, a.log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()
	go w.Run(ctx)

	a.log.Info("wastage reporter running",
		zap.String("http", a.cfg.HTTPAddr),
		zap.Duration("tick", a.cfg.TickInterval),
	)

	<-ctx.Done()
	a.log.Info("shutdown signal received")

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(shCtx)
	cancel()
	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	if a.repo != nil {
		_ = a.repo.Close()
	}
	return nil
}
