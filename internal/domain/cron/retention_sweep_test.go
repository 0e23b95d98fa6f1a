package cron

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/internal/repository"
	"github.com/termwatch/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func insertRecordAt(ctx context.Context, t *testing.T, communityID int64, at time.Time) {
	t.Helper()

	err := repository.NewMessageRecordRepository().Create(ctx, &entity.MessageRecord{
		ID:          uuid.NewString(),
		CreatedAt:   at,
		CommunityID: communityID,
		UserID:      testutil.User1,
		Term:        "gopher",
		Content:     "gopher",
	})
	require.NoError(t, err)
}

func Test_RetentionSweepCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	settingRepo := repository.NewSettingRepository()
	messageRepo := repository.NewMessageRecordRepository()

	setting, err := settingRepo.Get(ctx, testutil.Community1)
	require.NoError(t, err)
	setting.AutoCleanupDays = 7
	require.NoError(t, settingRepo.Upsert(ctx, setting))

	now := time.Now()
	insertRecordAt(ctx, t, testutil.Community1, now.AddDate(0, 0, -10))
	insertRecordAt(ctx, t, testutil.Community1, now.AddDate(0, 0, -1))

	// Community2 has no cleanup window; its records must survive.
	insertRecordAt(ctx, t, testutil.Community2, now.AddDate(0, 0, -100))

	job := NewRetentionSweepCronJob(settingRepo, messageRepo, time.Hour)
	job.Do(ctx)

	count, err := messageRepo.CountByCommunity(ctx, testutil.Community1)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	count, err = messageRepo.CountByCommunity(ctx, testutil.Community2)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func Test_RetentionSweepCronJob_Next(t *testing.T) {
	job := NewRetentionSweepCronJob(
		repository.NewSettingRepository(),
		repository.NewMessageRecordRepository(),
		30*time.Minute,
	)

	next := job.Next()
	require.True(t, job.RunNow())
	require.WithinDuration(t, time.Now().Add(30*time.Minute), next, time.Minute)
}
