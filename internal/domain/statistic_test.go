package domain

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/termwatch/backend/internal/domain/achievement"
	"github.com/termwatch/backend/internal/domain/statistic"
	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/internal/model"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/dateutil"
	"github.com/termwatch/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

// fakeRedisZSets emulates the sorted-set commands over a plain map so
// leaderboard reads exercise the hydrate-then-range path.
func fakeRedisZSets() *testutil.MockRedisClient {
	sets := map[string]map[string]float64{}

	return &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			_, ok := sets[key]
			return ok, nil
		},
		ZAddFunc: func(ctx context.Context, key string, z redis.Z) error {
			if sets[key] == nil {
				sets[key] = map[string]float64{}
			}
			sets[key][z.Member.(string)] = z.Score
			return nil
		},
		ZIncrByFunc: func(ctx context.Context, key string, incr int64, member string) error {
			if sets[key] == nil {
				sets[key] = map[string]float64{}
			}
			sets[key][member] += float64(incr)
			return nil
		},
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			var zs []redis.Z
			for member, score := range sets[key] {
				zs = append(zs, redis.Z{Member: member, Score: score})
			}
			sort.Slice(zs, func(i, j int) bool { return zs[i].Score > zs[j].Score })

			if offset >= len(zs) {
				return nil, nil
			}
			zs = zs[offset:]
			if limit < len(zs) {
				zs = zs[:limit]
			}
			return zs, nil
		},
		DelFunc: func(ctx context.Context, key ...string) error {
			for _, k := range key {
				delete(sets, k)
			}
			return nil
		},
	}
}

func newStatisticTestEnv(ctx context.Context, t *testing.T) *statisticDomain {
	t.Helper()

	userStatRepo := repository.NewUserTermStatRepository()
	return NewStatisticDomain(
		repository.NewTermStatRepository(),
		repository.NewMessageRecordRepository(),
		repository.NewDailyStatRepository(),
		repository.NewAchievementRepository(),
		repository.NewUserAchievementRepository(),
		statistic.NewLeaderboard(userStatRepo, fakeRedisZSets()),
	)
}

func Test_statisticDomain_GetTopTerms(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newStatisticTestEnv(ctx, t)

	termStatRepo := repository.NewTermStatRepository()
	now := time.Now()
	require.NoError(t, termStatRepo.Increase(ctx, testutil.Community1, "gopher", testutil.User1, 10, now))
	require.NoError(t, termStatRepo.Increase(ctx, testutil.Community1, "ferris", testutil.User2, 25, now))

	resp, err := domain.GetTopTerms(ctx, &model.GetTopTermsRequest{
		CommunityID: testutil.Community1,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Terms, 2)
	require.Equal(t, "ferris", resp.Terms[0].Term)
	require.Equal(t, int64(25), resp.Terms[0].TotalCount)
	require.Equal(t, testutil.User2, resp.Terms[0].LastUser)
	require.Equal(t, "gopher", resp.Terms[1].Term)

	resp, err = domain.GetTopTerms(ctx, &model.GetTopTermsRequest{
		CommunityID: testutil.Community1,
		Limit:       1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Terms, 1)
}

func Test_statisticDomain_GetTermLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newStatisticTestEnv(ctx, t)

	userStatRepo := repository.NewUserTermStatRepository()
	now := time.Now()
	require.NoError(t, userStatRepo.Increase(ctx, testutil.Community1, "gopher", testutil.User1, 5, now))
	require.NoError(t, userStatRepo.Increase(ctx, testutil.Community1, "gopher", testutil.User2, 8, now))

	resp, err := domain.GetTermLeaderboard(ctx, &model.GetTermLeaderboardRequest{
		CommunityID: testutil.Community1,
		Term:        "Gopher",
		Limit:       10,
	})
	require.NoError(t, err)
	require.Equal(t, []model.LeaderboardEntry{
		{UserID: testutil.User2, Count: 8, CurrentRank: 1},
		{UserID: testutil.User1, Count: 5, CurrentRank: 2},
	}, resp.Entries)

	// Offset shifts the rank numbering.
	resp, err = domain.GetTermLeaderboard(ctx, &model.GetTermLeaderboardRequest{
		CommunityID: testutil.Community1,
		Term:        "gopher",
		Offset:      1,
		Limit:       10,
	})
	require.NoError(t, err)
	require.Equal(t, []model.LeaderboardEntry{
		{UserID: testutil.User1, Count: 5, CurrentRank: 2},
	}, resp.Entries)
}

func Test_statisticDomain_SearchMessages(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newStatisticTestEnv(ctx, t)

	messageRepo := repository.NewMessageRecordRepository()
	for i, content := range []string{"the gopher digs", "ferris the crab", "gopher again"} {
		communityID := testutil.Community1
		if i == 2 {
			communityID = testutil.Community2
		}

		err := messageRepo.Create(ctx, &entity.MessageRecord{
			ID:          uuid.NewString(),
			CreatedAt:   time.Now().Add(time.Duration(i) * time.Second),
			CommunityID: communityID,
			UserID:      testutil.User1,
			Term:        "gopher",
			Content:     content,
		})
		require.NoError(t, err)
	}

	resp, err := domain.SearchMessages(ctx, &model.SearchMessagesRequest{
		CommunityID: testutil.Community1,
		Query:       "gopher",
		Limit:       10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 1)
	require.Equal(t, "the gopher digs", resp.Messages[0].Snippet)

	// Community 0 searches across all communities.
	resp, err = domain.SearchMessages(ctx, &model.SearchMessagesRequest{
		Query: "gopher",
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Messages, 2)
}

func Test_statisticDomain_GetDailySeries(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newStatisticTestEnv(ctx, t)

	dailyRepo := repository.NewDailyStatRepository()
	require.NoError(t, dailyRepo.Increase(ctx, testutil.Community1, dateutil.Today(), "gopher", 4))
	require.NoError(t, dailyRepo.Increase(ctx, testutil.Community1, dateutil.Yesterday(), "gopher", 2))

	resp, err := domain.GetDailySeries(ctx, &model.GetDailySeriesRequest{
		CommunityID: testutil.Community1,
		Term:        "gopher",
		Days:        7,
	})
	require.NoError(t, err)
	require.Len(t, resp.Points, 7)

	// Oldest first, zero-filled gaps.
	for _, point := range resp.Points[:5] {
		require.Zero(t, point.TotalMentions)
	}
	require.Equal(t, dateutil.Yesterday(), resp.Points[5].Date)
	require.Equal(t, int64(2), resp.Points[5].TotalMentions)
	require.Equal(t, dateutil.Today(), resp.Points[6].Date)
	require.Equal(t, int64(4), resp.Points[6].TotalMentions)

	_, err = domain.GetDailySeries(ctx, &model.GetDailySeriesRequest{
		CommunityID: testutil.Community1,
		Term:        "gopher",
		Days:        400,
	})
	require.Error(t, err)
}

func Test_statisticDomain_GetUserAchievements(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newStatisticTestEnv(ctx, t)

	achievementRepo := repository.NewAchievementRepository()
	require.NoError(t, achievement.SeedDefinitions(ctx, achievementRepo))

	definitions, err := achievementRepo.GetAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, definitions)

	userAchievementRepo := repository.NewUserAchievementRepository()
	err = userAchievementRepo.Create(ctx, &entity.UserAchievement{
		CommunityID:   testutil.Community1,
		UserID:        testutil.User1,
		AchievementID: definitions[0].ID,
		EarnedAt:      time.Now(),
	})
	require.NoError(t, err)

	resp, err := domain.GetUserAchievements(ctx, &model.GetUserAchievementsRequest{
		CommunityID: testutil.Community1,
		UserID:      testutil.User1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Achievements, 1)
	require.Equal(t, definitions[0].Name, resp.Achievements[0].Name)

	resp, err = domain.GetUserAchievements(ctx, &model.GetUserAchievementsRequest{
		CommunityID: testutil.Community1,
		UserID:      testutil.User2,
	})
	require.NoError(t, err)
	require.Empty(t, resp.Achievements)
}
