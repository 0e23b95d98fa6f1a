package statistic

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_leaderboard_ChangeTermLeaderboard_skipsColdKeys(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	incremented := false
	redisClient := &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return false, nil
		},
		ZIncrByFunc: func(ctx context.Context, key string, incr int64, member string) error {
			incremented = true
			return nil
		},
	}

	lb := NewLeaderboard(repository.NewUserTermStatRepository(), redisClient)
	lb.ChangeTermLeaderboard(ctx, testutil.Community1, "gopher", testutil.User1, 1)

	// A missing key is left alone; the next read hydrates from the
	// database instead.
	require.False(t, incremented)
}

func Test_leaderboard_GetTermLeaderboard_hydratesFromDatabase(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	userStatRepo := repository.NewUserTermStatRepository()
	err := userStatRepo.Increase(ctx, testutil.Community1, "gopher", testutil.User1, 7, time.Now())
	require.NoError(t, err)

	var added []redis.Z
	redisClient := &testutil.MockRedisClient{
		ZAddFunc: func(ctx context.Context, key string, z redis.Z) error {
			added = append(added, z)
			return nil
		},
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			return added, nil
		},
	}

	lb := NewLeaderboard(userStatRepo, redisClient)
	entries, err := lb.GetTermLeaderboard(ctx, testutil.Community1, "gopher", 0, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, testutil.User1, entries[0].UserID)
	require.Equal(t, int64(7), entries[0].Count)
	require.Equal(t, 1, entries[0].CurrentRank)
}

func Test_leaderboard_InvalidateCommunity(t *testing.T) {
	ctx := testutil.MockContext()

	var deleted []string
	redisClient := &testutil.MockRedisClient{
		KeysFunc: func(ctx context.Context, pattern string) ([]string, error) {
			require.Equal(t, "leaderboard:1001:*", pattern)
			return []string{"leaderboard:1001:gopher", "leaderboard:1001:ferris"}, nil
		},
		DelFunc: func(ctx context.Context, key ...string) error {
			deleted = append(deleted, key...)
			return nil
		},
	}

	lb := NewLeaderboard(repository.NewUserTermStatRepository(), redisClient)
	lb.InvalidateCommunity(ctx, testutil.Community1)

	require.ElementsMatch(t, deleted,
		[]string{"leaderboard:1001:gopher", "leaderboard:1001:ferris"})
}
