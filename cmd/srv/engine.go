package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/termwatch/backend/internal/domain/achievement"
	"github.com/termwatch/backend/internal/domain/cron"
	"github.com/termwatch/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startEngine(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadSession()
	s.loadRepos()
	s.loadDomains()

	if err := achievement.SeedDefinitions(s.ctx, s.achievementRepo); err != nil {
		return err
	}

	// An unknown reachable set aborts startup here; purging against it
	// would wipe every stored community.
	if err := s.reconcileDomain.Reconcile(s.ctx); err != nil {
		return err
	}

	communityIDs, err := s.communityRepo.GetAllIDs(s.ctx)
	if err != nil {
		return err
	}

	for _, communityID := range communityIDs {
		if err := s.cache.Rebuild(s.ctx, communityID); err != nil {
			return err
		}
	}

	s.achievementWorker.Start(s.ctx)

	cfg := xcontext.Configs(s.ctx)
	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewRetentionSweepCronJob(
		s.settingRepo, s.messageRepo, cfg.Cron.RetentionSweepInterval))
	cronJobManager.Register(cron.NewDailySummaryCronJob(
		s.settingRepo, s.dailyStatRepo, s.session, cfg.Cron.DailySummaryHourUTC))
	go cronJobManager.Start(s.ctx)

	// Closing the session on a signal closes the event channel, so the
	// loop below finishes the in-flight message and falls through.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		xcontext.Logger(s.ctx).Infof("Shutting down...")
		s.session.Close()
	}()

	xcontext.Logger(s.ctx).Infof("Engine started")
	for event := range s.session.Events() {
		if err := s.trackerDomain.ProcessMessage(s.ctx, event); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot process message %d: %v",
				event.PlatformMessageID, err)
		}
	}

	cronJobManager.Cancel(s.ctx)
	s.achievementWorker.Stop()
	xcontext.Logger(s.ctx).Infof("Engine stopped")

	return nil
}
