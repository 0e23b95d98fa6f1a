package repository

import (
	"context"
	"testing"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/migration"
	"github.com/termwatch/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestContext(t *testing.T) context.Context {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	ctx := xcontext.WithDB(context.Background(), db)
	require.NoError(t, migration.AutoMigrate(ctx))

	return ctx
}

func Test_settingRepository_Get_defaultsWhenMissing(t *testing.T) {
	ctx := newTestContext(t)
	repo := NewSettingRepository()

	setting, err := repo.Get(ctx, 1234)
	require.NoError(t, err)
	require.True(t, setting.IgnoreCommands)
	require.False(t, setting.CaseSensitive)
	require.Equal(t, 2, setting.MinWordLength)
	require.Zero(t, setting.CooldownSeconds)
	require.Zero(t, setting.AutoCleanupDays)
	require.Equal(t, "#5865f2", setting.ThemeColor)

	// Reads never persist the defaults.
	var count int64
	err = xcontext.DB(ctx).Model(&entity.Setting{}).Count(&count).Error
	require.NoError(t, err)
	require.Zero(t, count)
}

func Test_settingRepository_Get_normalizesOldSchema(t *testing.T) {
	ctx := newTestContext(t)
	repo := NewSettingRepository()

	// A row persisted before ThemeColor existed.
	err := xcontext.DB(ctx).Create(&entity.Setting{
		CommunityID:    1001,
		IgnoreCommands: false,
		MinWordLength:  3,
		SchemaVersion:  1,
	}).Error
	require.NoError(t, err)

	setting, err := repo.Get(ctx, 1001)
	require.NoError(t, err)
	require.Equal(t, "#5865f2", setting.ThemeColor)

	// Chosen values are kept.
	require.False(t, setting.IgnoreCommands)
	require.Equal(t, 3, setting.MinWordLength)
}

func Test_settingRepository_Upsert(t *testing.T) {
	ctx := newTestContext(t)
	repo := NewSettingRepository()

	setting, err := repo.Get(ctx, 1001)
	require.NoError(t, err)
	setting.CooldownSeconds = 90
	require.NoError(t, repo.Upsert(ctx, setting))

	setting.CooldownSeconds = 120
	require.NoError(t, repo.Upsert(ctx, setting))

	got, err := repo.Get(ctx, 1001)
	require.NoError(t, err)
	require.Equal(t, 120, got.CooldownSeconds)
}
