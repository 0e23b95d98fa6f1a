package migration

import (
	"context"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
)

// When this migrator is called, no need to call other migrators.
func AutoMigrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.Community{},
		&entity.TrackedTerm{},
		&entity.TermAlias{},
		&entity.Setting{},
		&entity.TermStat{},
		&entity.UserTermStat{},
		&entity.MessageRecord{},
		&entity.CooldownMark{},
		&entity.DailyStat{},
		&entity.IgnoredChannel{},
		&entity.ForbiddenPhrase{},
		&entity.TimeoutPhrase{},
		&entity.KeywordResponse{},
		&entity.Achievement{},
		&entity.UserAchievement{},
	)
}
