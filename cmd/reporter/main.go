package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/binhtv97/wasted-item/internal/app"
	"github.com/binhtv97/wasted-item/internal/config"
	"github.com/binhtv97/wasted-item/internal/domain"
	"github.com/binhtv97/wasted-item/internal/logger"
	"github.com/binhtv97/wasted-item/internal/mailer"
	"github.com/binhtv97/wasted-item/internal/report"
	"github.com/binhtv97/wasted-item/internal/store"
)

var (
	cfg config.Config
	log *zap.Logger
)

func main() {
	root := &cobra.Command{
		Use:           "reporter",
		Short:         "Food wastage reporting engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// .env is optional; real environment always wins.
			_ = godotenv.Load()

			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			console := cmd.Name() != "serve"
			log, err = logger.New(cfg.LogLevel, console)
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}

	root.AddCommand(serveCmd(), exportCmd(), sendCmd())

	if err := root.Execute(); err != nil {
		_, _ = os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// serveCmd runs the dispatch worker and the on-demand HTTP surface.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dispatch worker and HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.New(cfg, log).Run(cmd.Context())
		},
	}
}

// exportCmd generates one CSV and saves it to a folder, printing the path.
func exportCmd() *cobra.Command {
	var (
		period   string
		folder   string
		detailed bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate a report CSV and save it to a folder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := domain.ParsePeriodKind(period)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			repo, err := store.OpenSQLite(ctx, cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			svc := report.NewService(repo, log)
			var path string
			if detailed {
				artifact, err := svc.GenerateDetailed(ctx, kind)
				if err != nil {
					return err
				}
				path, err = report.SaveArtifact(folder, artifact)
				if err != nil {
					return err
				}
			} else {
				path, err = svc.SaveToFolder(ctx, kind, folder)
				if err != nil {
					return err
				}
			}
			fmt.Println(path)
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", "daily", "daily|weekly|monthly")
	cmd.Flags().StringVar(&folder, "folder", "csv", "output folder")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "export raw rows instead of totals")
	return cmd
}

// sendCmd generates one report and mails it to a single address.
func sendCmd() *cobra.Command {
	var (
		period string
		to     string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Generate a report and mail it to one recipient",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := domain.ParsePeriodKind(period)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			repo, err := store.OpenSQLite(ctx, cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			svc := report.NewService(repo, log)
			artifact, err := svc.Generate(ctx, kind)
			if err != nil {
				return err
			}
			id, err := mailer.New(cfg, log).Send(ctx, to, kind, artifact)
			if err != nil {
				return err
			}
			log.Info("sent", zap.String("to", to), zap.String("messageID", id))
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", "daily", "daily|weekly|monthly")
	cmd.Flags().StringVar(&to, "to", "", "recipient email")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
