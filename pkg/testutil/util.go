package testutil

import (
	"context"
	"time"

	"github.com/termwatch/backend/config"
	"github.com/termwatch/backend/migration"
	"github.com/termwatch/backend/pkg/logger"
	"github.com/termwatch/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "test",
		Tracker: config.TrackerConfigs{
			CommandPrefix:        "!",
			AchievementQueueSize: 8,
		},
		Cron: config.CronConfigs{
			RetentionSweepInterval: time.Hour,
			DailySummaryHourUTC:    8,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}
