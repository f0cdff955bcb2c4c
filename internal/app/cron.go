package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/visapath/core/internal/modules/articles"
	"github.com/visapath/core/internal/modules/freshness"
	pkgcron "github.com/visapath/core/internal/pkg/cron"
)

const (
	pageViewRetentionDays = 90
	backupsToKeep         = 14
)

// registerCronJobs wires the periodic background jobs. The publish trigger
// also fires on start so a restarted server catches up on missed days.
func (a *App) registerCronJobs() {
	logger := a.logger.Named("CronService")
	publishSvc := a.publishService()
	freshnessSvc := freshness.NewService(a.db, a.clk)
	articlesSvc := articles.NewService(a.db)
	backupSvc := a.backupService()

	a.sched.Register(pkgcron.Job{
		Name:        "auto_publish",
		Description: "promote due drafts into live articles",
		Interval:    24 * time.Hour,
		RunOnStart:  true,
		Fn: func(ctx context.Context) error {
			report, err := publishSvc.RunDailyPublish(ctx)
			if err != nil {
				logger.Warn("auto-publish run failed", zap.Error(err))
				return err
			}
			logger.Info("auto-publish run done",
				zap.Int("published", report.PublishedCount),
				zap.Int("failed", report.FailedCount))
			return nil
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "refresh_report",
		Description: "log the content refresh worklist summary",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			_, summary, err := freshnessSvc.CatalogWorklist()
			if err != nil {
				logger.Warn("refresh worklist failed", zap.Error(err))
				return err
			}
			logger.Info("content refresh worklist",
				zap.Int("total", summary.Total),
				zap.Int("urgent", summary.Urgent),
				zap.Int("high", summary.High),
				zap.Int("medium", summary.Medium),
				zap.Int("low", summary.Low))
			return nil
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "cleanup_page_views",
		Description: "prune raw page view rows past retention",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			deleted, err := articlesSvc.PruneViews(pageViewRetentionDays)
			if err != nil {
				logger.Warn("page view cleanup failed", zap.Error(err))
				return err
			}
			logger.Info("page views pruned", zap.Int64("deleted", deleted))
			return nil
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "auto_backup",
		Description: "back up the content catalog",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			entry, err := backupSvc.Create(ctx)
			if err != nil {
				logger.Warn("auto backup failed", zap.Error(err))
				return err
			}
			logger.Info("auto backup done", zap.String("file", entry.Filename))
			if removed, err := backupSvc.Prune(backupsToKeep); err == nil && removed > 0 {
				logger.Info("old backups pruned", zap.Int("removed", removed))
			}
			return nil
		},
	})
}
