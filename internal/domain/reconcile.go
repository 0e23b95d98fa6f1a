package domain

import (
	"context"

	"github.com/termwatch/backend/internal/client"
	"github.com/termwatch/backend/internal/domain/matcher"
	"github.com/termwatch/backend/internal/domain/statistic"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

// reconcileParallelism bounds how many tenant purges run at once so a
// large orphan backlog cannot exhaust DB connections on startup.
const reconcileParallelism = 4

type ReconcileDomain interface {
	// Reconcile compares stored communities against the platform's active
	// ones and purges every community the bot no longer belongs to.
	Reconcile(ctx context.Context) error

	// PurgeCommunity removes every row of one community. Called from
	// Reconcile and from the live leave event.
	PurgeCommunity(ctx context.Context, communityID int64) error
}

type reconcileDomain struct {
	communityRepo       repository.CommunityRepository
	termRepo            repository.TrackedTermRepository
	aliasRepo           repository.TermAliasRepository
	settingRepo         repository.SettingRepository
	termStatRepo        repository.TermStatRepository
	userStatRepo        repository.UserTermStatRepository
	messageRepo         repository.MessageRecordRepository
	cooldownRepo        repository.CooldownMarkRepository
	dailyStatRepo       repository.DailyStatRepository
	ignoredChannelRepo  repository.IgnoredChannelRepository
	forbiddenPhraseRepo repository.ForbiddenPhraseRepository
	timeoutPhraseRepo   repository.TimeoutPhraseRepository
	keywordResponseRepo repository.KeywordResponseRepository
	userAchievementRepo repository.UserAchievementRepository

	session     client.PlatformSession
	cache       *matcher.Cache
	leaderboard statistic.Leaderboard
}

func NewReconcileDomain(
	communityRepo repository.CommunityRepository,
	termRepo repository.TrackedTermRepository,
	aliasRepo repository.TermAliasRepository,
	settingRepo repository.SettingRepository,
	termStatRepo repository.TermStatRepository,
	userStatRepo repository.UserTermStatRepository,
	messageRepo repository.MessageRecordRepository,
	cooldownRepo repository.CooldownMarkRepository,
	dailyStatRepo repository.DailyStatRepository,
	ignoredChannelRepo repository.IgnoredChannelRepository,
	forbiddenPhraseRepo repository.ForbiddenPhraseRepository,
	timeoutPhraseRepo repository.TimeoutPhraseRepository,
	keywordResponseRepo repository.KeywordResponseRepository,
	userAchievementRepo repository.UserAchievementRepository,
	session client.PlatformSession,
	cache *matcher.Cache,
	leaderboard statistic.Leaderboard,
) *reconcileDomain {
	return &reconcileDomain{
		communityRepo:       communityRepo,
		termRepo:            termRepo,
		aliasRepo:           aliasRepo,
		settingRepo:         settingRepo,
		termStatRepo:        termStatRepo,
		userStatRepo:        userStatRepo,
		messageRepo:         messageRepo,
		cooldownRepo:        cooldownRepo,
		dailyStatRepo:       dailyStatRepo,
		ignoredChannelRepo:  ignoredChannelRepo,
		forbiddenPhraseRepo: forbiddenPhraseRepo,
		timeoutPhraseRepo:   timeoutPhraseRepo,
		keywordResponseRepo: keywordResponseRepo,
		userAchievementRepo: userAchievementRepo,
		session:             session,
		cache:               cache,
		leaderboard:         leaderboard,
	}
}

func (d *reconcileDomain) Reconcile(ctx context.Context) error {
	storedIDs, err := d.communityRepo.GetAllIDs(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get stored community ids: %v", err)
		return err
	}

	activeIDs, err := d.session.ActiveCommunityIDs(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active community ids: %v", err)
		return err
	}

	active := map[int64]bool{}
	for _, id := range activeIDs {
		active[id] = true
	}

	var orphans []int64
	for _, id := range storedIDs {
		if !active[id] {
			orphans = append(orphans, id)
		}
	}

	if len(orphans) == 0 {
		return nil
	}

	xcontext.Logger(ctx).Infof("Purging %d orphaned communities", len(orphans))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(reconcileParallelism)
	for _, id := range orphans {
		communityID := id
		eg.Go(func() error {
			return d.PurgeCommunity(egCtx, communityID)
		})
	}

	return eg.Wait()
}

func (d *reconcileDomain) PurgeCommunity(ctx context.Context, communityID int64) error {
	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	deletes := []struct {
		name string
		fn   func(context.Context, int64) error
	}{
		{"tracked terms", d.termRepo.DeleteByCommunity},
		{"term aliases", d.aliasRepo.DeleteByCommunity},
		{"settings", d.settingRepo.DeleteByCommunity},
		{"term aggregates", d.termStatRepo.DeleteByCommunity},
		{"user stats", d.userStatRepo.DeleteByCommunity},
		{"message records", d.messageRepo.DeleteByCommunity},
		{"cooldown marks", d.cooldownRepo.DeleteByCommunity},
		{"daily stats", d.dailyStatRepo.DeleteByCommunity},
		{"ignored channels", d.ignoredChannelRepo.DeleteByCommunity},
		{"forbidden phrases", d.forbiddenPhraseRepo.DeleteByCommunity},
		{"timeout phrases", d.timeoutPhraseRepo.DeleteByCommunity},
		{"keyword responses", d.keywordResponseRepo.DeleteByCommunity},
		{"user achievements", d.userAchievementRepo.DeleteByCommunity},
	}

	for _, del := range deletes {
		if err := del.fn(txCtx, communityID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete %s of community %d: %v",
				del.name, communityID, err)
			return err
		}
	}

	if err := d.communityRepo.Delete(txCtx, communityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete community %d: %v", communityID, err)
		return err
	}

	xcontext.WithCommitDBTransaction(txCtx)

	d.cache.Forget(communityID)
	d.leaderboard.InvalidateCommunity(ctx, communityID)

	xcontext.Logger(ctx).Infof("Purged community %d", communityID)
	return nil
}
