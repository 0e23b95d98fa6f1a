package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/termwatch/backend/internal/client"
	"github.com/termwatch/backend/internal/domain/achievement"
	"github.com/termwatch/backend/internal/domain/matcher"
	"github.com/termwatch/backend/internal/domain/statistic"
	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/dateutil"
	"github.com/termwatch/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type TrackerDomain interface {
	ProcessMessage(ctx context.Context, event client.MessageEvent) error
}

type trackerDomain struct {
	settingRepo        repository.SettingRepository
	aliasRepo          repository.TermAliasRepository
	termStatRepo       repository.TermStatRepository
	userStatRepo       repository.UserTermStatRepository
	messageRepo        repository.MessageRecordRepository
	cooldownRepo       repository.CooldownMarkRepository
	dailyStatRepo      repository.DailyStatRepository
	ignoredChannelRepo repository.IgnoredChannelRepository

	cache             *matcher.Cache
	leaderboard       statistic.Leaderboard
	achievementWorker *achievement.Worker
}

func NewTrackerDomain(
	settingRepo repository.SettingRepository,
	aliasRepo repository.TermAliasRepository,
	termStatRepo repository.TermStatRepository,
	userStatRepo repository.UserTermStatRepository,
	messageRepo repository.MessageRecordRepository,
	cooldownRepo repository.CooldownMarkRepository,
	dailyStatRepo repository.DailyStatRepository,
	ignoredChannelRepo repository.IgnoredChannelRepository,
	cache *matcher.Cache,
	leaderboard statistic.Leaderboard,
	achievementWorker *achievement.Worker,
) *trackerDomain {
	return &trackerDomain{
		settingRepo:        settingRepo,
		aliasRepo:          aliasRepo,
		termStatRepo:       termStatRepo,
		userStatRepo:       userStatRepo,
		messageRepo:        messageRepo,
		cooldownRepo:       cooldownRepo,
		dailyStatRepo:      dailyStatRepo,
		ignoredChannelRepo: ignoredChannelRepo,
		cache:              cache,
		leaderboard:        leaderboard,
		achievementWorker:  achievementWorker,
	}
}

// ProcessMessage runs one message through the pipeline: filters, matcher,
// then per matched term a cooldown decision followed by one transaction
// over all four counter tables. Terms are independent: a failed or
// throttled term never affects the others.
func (d *trackerDomain) ProcessMessage(ctx context.Context, event client.MessageEvent) error {
	if event.IsBotAuthor || event.Content == "" || event.CommunityID == 0 {
		return nil
	}

	setting, err := d.settingRepo.Get(ctx, event.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get settings of community %d: %v", event.CommunityID, err)
		return err
	}

	prefix := xcontext.Configs(ctx).Tracker.CommandPrefix
	if setting.IgnoreCommands && prefix != "" && strings.HasPrefix(event.Content, prefix) {
		return nil
	}

	ignored, err := d.ignoredChannelRepo.Exist(ctx, event.CommunityID, event.ChannelID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check ignored channel: %v", err)
		return err
	}

	if ignored {
		return nil
	}

	matches := d.cache.Match(event.CommunityID, event.Content)
	if len(matches) == 0 {
		return nil
	}

	now := time.Now()
	counted := false
	for _, match := range matches {
		// The cache already emits canonical terms, but configuration may
		// have changed since the set was built; resolve again so counters
		// always land on the term that owns them.
		canonical, err := d.resolveCanonical(ctx, event.CommunityID, match.CanonicalTerm)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot resolve term %q: %v", match.CanonicalTerm, err)
			continue
		}

		throttled, err := d.isThrottled(ctx, event.CommunityID, event.AuthorID, canonical,
			setting.CooldownSeconds, now)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check cooldown for %q: %v", canonical, err)
			continue
		}

		if throttled {
			continue
		}

		if err := d.count(ctx, event, canonical, match.Occurrences, now); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count term %q in community %d: %v",
				canonical, event.CommunityID, err)
			continue
		}

		// Cooldown marks are written only after a committed count, and
		// never while the gate is disabled.
		if setting.CooldownSeconds > 0 {
			err := d.cooldownRepo.Mark(ctx, event.CommunityID, event.AuthorID, canonical, now)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot mark cooldown for %q: %v", canonical, err)
			}
		}

		// Best effort: the redis leaderboard is a cache over
		// UserTermStat and rehydrates itself when missing.
		d.leaderboard.ChangeTermLeaderboard(ctx, event.CommunityID, canonical,
			event.AuthorID, match.Occurrences)

		counted = true
	}

	if counted {
		d.achievementWorker.Dispatch(ctx, event.CommunityID, event.AuthorID)
	}

	return nil
}

// count applies the four-write group of one term as a single transaction:
// aggregate, per-user hit, audit record, daily rollup. All or nothing.
func (d *trackerDomain) count(
	ctx context.Context, event client.MessageEvent, term string, occurrences int64, now time.Time,
) error {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err := d.termStatRepo.Increase(ctx, event.CommunityID, term, event.AuthorID, occurrences, now)
	if err != nil {
		return err
	}

	err = d.userStatRepo.Increase(ctx, event.CommunityID, term, event.AuthorID, occurrences, now)
	if err != nil {
		return err
	}

	err = d.messageRepo.Create(ctx, &entity.MessageRecord{
		ID:                uuid.NewString(),
		CreatedAt:         now,
		CommunityID:       event.CommunityID,
		ChannelID:         event.ChannelID,
		UserID:            event.AuthorID,
		PlatformMessageID: event.PlatformMessageID,
		Term:              term,
		Content:           event.Content,
	})
	if err != nil {
		return err
	}

	err = d.dailyStatRepo.Increase(ctx, event.CommunityID, dateutil.Day(now), term, occurrences)
	if err != nil {
		return err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return nil
}

func (d *trackerDomain) resolveCanonical(
	ctx context.Context, communityID int64, token string,
) (string, error) {
	alias, err := d.aliasRepo.Get(ctx, communityID, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return token, nil
		}

		return "", err
	}

	return alias.CanonicalTerm, nil
}

// isThrottled is the cooldown gate. A zero cooldown disables it without
// touching the store at all.
func (d *trackerDomain) isThrottled(
	ctx context.Context, communityID int64, userID, term string,
	cooldownSeconds int, now time.Time,
) (bool, error) {
	if cooldownSeconds <= 0 {
		return false, nil
	}

	mark, err := d.cooldownRepo.Get(ctx, communityID, userID, term)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return now.Sub(mark.LastIncrementAt) < time.Duration(cooldownSeconds)*time.Second, nil
}
