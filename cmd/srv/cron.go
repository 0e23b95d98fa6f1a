package main

import (
	"github.com/termwatch/backend/internal/domain/cron"
	"github.com/termwatch/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadSession()
	s.loadRepos()

	cfg := xcontext.Configs(s.ctx)
	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewRetentionSweepCronJob(
		s.settingRepo, s.messageRepo, cfg.Cron.RetentionSweepInterval))
	cronJobManager.Register(cron.NewDailySummaryCronJob(
		s.settingRepo, s.dailyStatRepo, s.session, cfg.Cron.DailySummaryHourUTC))
	cronJobManager.Start(s.ctx)

	return nil
}
