package matcher

import (
	"context"
	"testing"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestCache(ctx context.Context, t *testing.T) (*Cache, repository.SettingRepository) {
	t.Helper()

	settingRepo := repository.NewSettingRepository()
	cache := NewCache(
		repository.NewTrackedTermRepository(),
		repository.NewTermAliasRepository(),
		settingRepo,
	)
	require.NoError(t, cache.Rebuild(ctx, testutil.Community1))

	return cache, settingRepo
}

func Test_Cache_Match_wordBoundaries(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	cache, _ := newTestCache(ctx, t)

	matches := cache.Match(testutil.Community1, "the gopher digs; gopher-like, not agopher")
	require.Len(t, matches, 1)
	require.Equal(t, "gopher", matches[0].CanonicalTerm)
	require.Equal(t, int64(2), matches[0].Occurrences)

	// Case-insensitive by default.
	matches = cache.Match(testutil.Community1, "GOPHER Gopher")
	require.Len(t, matches, 1)
	require.Equal(t, int64(2), matches[0].Occurrences)

	require.Empty(t, cache.Match(testutil.Community1, "nothing tracked here"))
	require.Empty(t, cache.Match(testutil.Community1, ""))
}

func Test_Cache_Match_aliasCountsForCanonicalTerm(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	cache, _ := newTestCache(ctx, t)

	matches := cache.Match(testutil.Community1, "gophers everywhere")
	require.Len(t, matches, 1)
	require.Equal(t, "gopher", matches[0].CanonicalTerm)
	require.Equal(t, int64(1), matches[0].Occurrences)
}

func Test_Cache_Rebuild_minWordLengthFiltersProspectively(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	termRepo := repository.NewTrackedTermRepository()
	err := termRepo.Create(ctx, &entity.TrackedTerm{
		CommunityID: testutil.Community1,
		Term:        "go",
		CreatedBy:   testutil.User1,
	})
	require.NoError(t, err)

	cache, settingRepo := newTestCache(ctx, t)

	matches := cache.Match(testutil.Community1, "go go go")
	require.Len(t, matches, 1)
	require.Equal(t, int64(3), matches[0].Occurrences)

	setting, err := settingRepo.Get(ctx, testutil.Community1)
	require.NoError(t, err)
	setting.MinWordLength = 4
	require.NoError(t, settingRepo.Upsert(ctx, setting))
	require.NoError(t, cache.Rebuild(ctx, testutil.Community1))

	// The term stays stored; it just no longer matches.
	require.Empty(t, cache.Match(testutil.Community1, "go go go"))
	_, err = termRepo.Get(ctx, testutil.Community1, "go")
	require.NoError(t, err)

	setting.MinWordLength = 2
	require.NoError(t, settingRepo.Upsert(ctx, setting))
	require.NoError(t, cache.Rebuild(ctx, testutil.Community1))
	require.Len(t, cache.Match(testutil.Community1, "go"), 1)
}

func Test_Cache_Rebuild_minWordLengthCountsRunes(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	// "naïve" is 5 runes but 6 bytes.
	termRepo := repository.NewTrackedTermRepository()
	err := termRepo.Create(ctx, &entity.TrackedTerm{
		CommunityID: testutil.Community1,
		Term:        "naïve",
		CreatedBy:   testutil.User1,
	})
	require.NoError(t, err)

	cache, settingRepo := newTestCache(ctx, t)
	require.Len(t, cache.Match(testutil.Community1, "a naïve plan"), 1)

	setting, err := settingRepo.Get(ctx, testutil.Community1)
	require.NoError(t, err)
	setting.MinWordLength = 6
	require.NoError(t, settingRepo.Upsert(ctx, setting))
	require.NoError(t, cache.Rebuild(ctx, testutil.Community1))

	require.Empty(t, cache.Match(testutil.Community1, "a naïve plan"))

	setting.MinWordLength = 5
	require.NoError(t, settingRepo.Upsert(ctx, setting))
	require.NoError(t, cache.Rebuild(ctx, testutil.Community1))
	require.Len(t, cache.Match(testutil.Community1, "a naïve plan"), 1)
}

func Test_Cache_Rebuild_aliasDroppedWithItsCanonicalTerm(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	cache, settingRepo := newTestCache(ctx, t)

	setting, err := settingRepo.Get(ctx, testutil.Community1)
	require.NoError(t, err)
	setting.MinWordLength = 7
	require.NoError(t, settingRepo.Upsert(ctx, setting))
	require.NoError(t, cache.Rebuild(ctx, testutil.Community1))

	// "gopher" (6) falls below the minimum, so its alias "gophers" (7)
	// must not match either.
	require.Empty(t, cache.Match(testutil.Community1, "gophers"))
}

func Test_Cache_Rebuild_caseSensitive(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	cache, settingRepo := newTestCache(ctx, t)

	setting, err := settingRepo.Get(ctx, testutil.Community1)
	require.NoError(t, err)
	setting.CaseSensitive = true
	require.NoError(t, settingRepo.Upsert(ctx, setting))
	require.NoError(t, cache.Rebuild(ctx, testutil.Community1))

	require.Empty(t, cache.Match(testutil.Community1, "GOPHER"))
	require.Len(t, cache.Match(testutil.Community1, "gopher"), 1)
}

func Test_Cache_communitiesAreIsolated(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	cache, _ := newTestCache(ctx, t)
	require.NoError(t, cache.Rebuild(ctx, testutil.Community2))

	require.Empty(t, cache.Match(testutil.Community1, "crab"))
	require.Len(t, cache.Match(testutil.Community2, "crab"), 1)
}

func Test_Cache_Forget(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	cache, _ := newTestCache(ctx, t)

	require.Len(t, cache.Match(testutil.Community1, "gopher"), 1)
	cache.Forget(testutil.Community1)
	require.Empty(t, cache.Match(testutil.Community1, "gopher"))
}
