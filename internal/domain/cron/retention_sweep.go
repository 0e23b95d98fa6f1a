package cron

import (
	"context"
	"time"

	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/xcontext"
)

// RetentionSweepCronJob deletes message records older than each
// community's auto cleanup window. Aggregates are untouched; only the raw
// audit trail is pruned.
type RetentionSweepCronJob struct {
	settingRepo repository.SettingRepository
	messageRepo repository.MessageRecordRepository

	interval time.Duration
}

func NewRetentionSweepCronJob(
	settingRepo repository.SettingRepository,
	messageRepo repository.MessageRecordRepository,
	interval time.Duration,
) *RetentionSweepCronJob {
	if interval <= 0 {
		interval = time.Hour
	}

	return &RetentionSweepCronJob{
		settingRepo: settingRepo,
		messageRepo: messageRepo,
		interval:    interval,
	}
}

func (job *RetentionSweepCronJob) Do(ctx context.Context) {
	settings, err := job.settingRepo.GetAllWithCleanup(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get communities with cleanup: %v", err)
		return
	}

	now := time.Now()
	for _, setting := range settings {
		before := now.AddDate(0, 0, -setting.AutoCleanupDays)
		deleted, err := job.messageRepo.DeleteBefore(ctx, setting.CommunityID, before)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot sweep message records of community %d: %v",
				setting.CommunityID, err)
			continue
		}

		if deleted > 0 {
			xcontext.Logger(ctx).Infof("Swept %d message records of community %d",
				deleted, setting.CommunityID)
		}
	}
}

func (job *RetentionSweepCronJob) RunNow() bool {
	return true
}

func (job *RetentionSweepCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
