package domain

import (
	"context"
	"testing"
	"time"

	"github.com/termwatch/backend/internal/client"
	"github.com/termwatch/backend/internal/domain/matcher"
	"github.com/termwatch/backend/internal/domain/statistic"
	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReconcileTestEnv(ctx context.Context, t *testing.T, session client.PlatformSession) *reconcileDomain {
	t.Helper()

	termRepo := repository.NewTrackedTermRepository()
	aliasRepo := repository.NewTermAliasRepository()
	settingRepo := repository.NewSettingRepository()
	userStatRepo := repository.NewUserTermStatRepository()

	cache := matcher.NewCache(termRepo, aliasRepo, settingRepo)
	require.NoError(t, cache.Rebuild(ctx, testutil.Community1))
	require.NoError(t, cache.Rebuild(ctx, testutil.Community2))

	return NewReconcileDomain(
		repository.NewCommunityRepository(),
		termRepo, aliasRepo, settingRepo,
		repository.NewTermStatRepository(),
		userStatRepo,
		repository.NewMessageRecordRepository(),
		repository.NewCooldownMarkRepository(),
		repository.NewDailyStatRepository(),
		repository.NewIgnoredChannelRepository(),
		repository.NewForbiddenPhraseRepository(),
		repository.NewTimeoutPhraseRepository(),
		repository.NewKeywordResponseRepository(),
		repository.NewUserAchievementRepository(),
		session, cache,
		statistic.NewLeaderboard(userStatRepo, &testutil.MockRedisClient{}),
	)
}

func Test_reconcileDomain_Reconcile_purgesOrphanedCommunities(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	session := client.NewLocalSession(4)
	session.SetActiveCommunities([]int64{testutil.Community1}, nil)
	reconcile := newReconcileTestEnv(ctx, t, session)

	termStatRepo := repository.NewTermStatRepository()
	err := termStatRepo.Increase(ctx, testutil.Community2, "crab", testutil.User2, 4, time.Now())
	require.NoError(t, err)

	forbiddenRepo := repository.NewForbiddenPhraseRepository()
	err = forbiddenRepo.Create(ctx, &entity.ForbiddenPhrase{
		CommunityID: testutil.Community2,
		Phrase:      "free nitro",
		CreatedBy:   testutil.User2,
	})
	require.NoError(t, err)

	require.NoError(t, reconcile.Reconcile(ctx))

	communityRepo := repository.NewCommunityRepository()
	ids, err := communityRepo.GetAllIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{testutil.Community1}, ids)

	termRepo := repository.NewTrackedTermRepository()
	_, err = termRepo.Get(ctx, testutil.Community2, "crab")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = termStatRepo.Get(ctx, testutil.Community2, "crab")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	exist, err := forbiddenRepo.Exist(ctx, testutil.Community2, "free nitro")
	require.NoError(t, err)
	require.False(t, exist)

	// The surviving community keeps everything.
	_, err = termRepo.Get(ctx, testutil.Community1, "gopher")
	require.NoError(t, err)
}

func Test_reconcileDomain_Reconcile_refusesUnknownActiveSet(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	// The session never learns its reachable communities; reconciliation
	// must fail instead of treating everything as orphaned.
	session := client.NewLocalSession(4)
	reconcile := newReconcileTestEnv(ctx, t, session)

	err := reconcile.Reconcile(ctx)
	require.ErrorIs(t, err, client.ErrActiveCommunitiesUnknown)

	ids, err := repository.NewCommunityRepository().GetAllIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	_, err = repository.NewTrackedTermRepository().Get(ctx, testutil.Community1, "gopher")
	require.NoError(t, err)
}

func Test_reconcileDomain_Reconcile_keepsAllWhenNothingOrphaned(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	session := client.NewLocalSession(4)
	session.SetActiveCommunities([]int64{testutil.Community1, testutil.Community2}, nil)
	reconcile := newReconcileTestEnv(ctx, t, session)

	require.NoError(t, reconcile.Reconcile(ctx))

	ids, err := repository.NewCommunityRepository().GetAllIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 2)
}
