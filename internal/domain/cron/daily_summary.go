package cron

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/termwatch/backend/internal/client"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/dateutil"
	"github.com/termwatch/backend/pkg/xcontext"
)

const summaryTopTerms = 5

// DailySummaryCronJob posts yesterday's mention counts to every community
// that opted in and configured a notification channel.
type DailySummaryCronJob struct {
	settingRepo   repository.SettingRepository
	dailyStatRepo repository.DailyStatRepository
	session       client.PlatformSession

	hourUTC int
}

func NewDailySummaryCronJob(
	settingRepo repository.SettingRepository,
	dailyStatRepo repository.DailyStatRepository,
	session client.PlatformSession,
	hourUTC int,
) *DailySummaryCronJob {
	if hourUTC < 0 || hourUTC > 23 {
		hourUTC = 8
	}

	return &DailySummaryCronJob{
		settingRepo:   settingRepo,
		dailyStatRepo: dailyStatRepo,
		session:       session,
		hourUTC:       hourUTC,
	}
}

func (job *DailySummaryCronJob) Do(ctx context.Context) {
	settings, err := job.settingRepo.GetAllWithDailySummary(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get communities with daily summary: %v", err)
		return
	}

	date := dateutil.Yesterday()
	for _, setting := range settings {
		if setting.NotificationChannelID == 0 {
			continue
		}

		stats, err := job.dailyStatRepo.GetByDate(ctx, setting.CommunityID, date)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get daily stats of community %d: %v",
				setting.CommunityID, err)
			continue
		}

		if len(stats) == 0 {
			continue
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Term mentions on %s:\n", date)
		for i, stat := range stats {
			if i == summaryTopTerms {
				break
			}

			fmt.Fprintf(&b, "- %s: %d\n", stat.Term, stat.TotalMentions)
		}

		err = job.session.SendMessage(ctx, setting.NotificationChannelID, b.String())
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot send daily summary to community %d: %v",
				setting.CommunityID, err)
		}
	}
}

func (job *DailySummaryCronJob) RunNow() bool {
	return false
}

func (job *DailySummaryCronJob) Next() time.Time {
	now := time.Now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), job.hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}

	return next
}
