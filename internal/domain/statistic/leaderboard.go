package statistic

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/termwatch/backend/internal/model"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/errorx"
	"github.com/termwatch/backend/pkg/xcontext"
	"github.com/termwatch/backend/pkg/xredis"
)

// Leaderboard serves per-term user rankings from a redis sorted set that
// is lazily hydrated from UserTermStat. The database stays the source of
// truth; the cache is bumped on increments only while it already exists.
type Leaderboard interface {
	GetTermLeaderboard(ctx context.Context, communityID int64, term string,
		offset, limit int) ([]model.LeaderboardEntry, error)

	// ChangeTermLeaderboard is best effort and never fails the caller.
	ChangeTermLeaderboard(ctx context.Context, communityID int64, term, userID string, value int64)

	// Invalidate drops the cached set, e.g. when a term is untracked or
	// its statistics are reset.
	Invalidate(ctx context.Context, communityID int64, term string)

	// InvalidateCommunity drops every cached set of a community, used by
	// statistics reset and tenant purge.
	InvalidateCommunity(ctx context.Context, communityID int64)
}

type leaderboard struct {
	userStatRepo repository.UserTermStatRepository
	redisClient  xredis.Client
}

func NewLeaderboard(
	userStatRepo repository.UserTermStatRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{userStatRepo: userStatRepo, redisClient: redisClient}
}

func redisKeyTermLeaderboard(communityID int64, term string) string {
	return fmt.Sprintf("leaderboard:%d:%s", communityID, term)
}

func (l *leaderboard) GetTermLeaderboard(
	ctx context.Context, communityID int64, term string, offset, limit int,
) ([]model.LeaderboardEntry, error) {
	key := redisKeyTermLeaderboard(communityID, term)

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadFromDB(ctx, communityID, term); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderboardEntry{}
	for i, z := range results {
		entries = append(entries, model.LeaderboardEntry{
			UserID:      z.Member.(string),
			Count:       int64(z.Score),
			CurrentRank: offset + i + 1,
		})
	}

	return entries, nil
}

func (l *leaderboard) ChangeTermLeaderboard(
	ctx context.Context, communityID int64, term, userID string, value int64,
) {
	key := redisKeyTermLeaderboard(communityID, term)

	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return
	}

	// If the key didn't exist in redis, no need to update: the next read
	// hydrates from the database.
	if !ok {
		return
	}

	if err := l.redisClient.ZIncrBy(ctx, key, value, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZIncrBy redis: %v", err)
	}
}

func (l *leaderboard) Invalidate(ctx context.Context, communityID int64, term string) {
	key := redisKeyTermLeaderboard(communityID, term)
	if err := l.redisClient.Del(ctx, key); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete leaderboard key %s: %v", key, err)
	}
}

func (l *leaderboard) InvalidateCommunity(ctx context.Context, communityID int64) {
	pattern := fmt.Sprintf("leaderboard:%d:*", communityID)
	keys, err := l.redisClient.Keys(ctx, pattern)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list leaderboard keys of community %d: %v", communityID, err)
		return
	}

	for _, key := range keys {
		if err := l.redisClient.Del(ctx, key); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete leaderboard key %s: %v", key, err)
		}
	}
}

func (l *leaderboard) loadFromDB(ctx context.Context, communityID int64, term string) error {
	stats, err := l.userStatRepo.GetAllByTerm(ctx, communityID, term)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load user stats from database: %v", err)
		return errorx.Unknown
	}

	key := redisKeyTermLeaderboard(communityID, term)
	for _, s := range stats {
		err := l.redisClient.ZAdd(ctx, key, redis.Z{Member: s.UserID, Score: float64(s.Count)})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
