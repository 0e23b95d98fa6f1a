package repository

import (
	"context"
	"time"

	"github.com/termwatch/backend/internal/entity"
	"github.com/termwatch/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type CooldownMarkRepository interface {
	Get(ctx context.Context, communityID int64, userID, term string) (*entity.CooldownMark, error)
	Mark(ctx context.Context, communityID int64, userID, term string, at time.Time) error
	DeleteByTerm(ctx context.Context, communityID int64, term string) error
	DeleteByCommunity(ctx context.Context, communityID int64) error
}

type cooldownMarkRepository struct{}

func NewCooldownMarkRepository() *cooldownMarkRepository {
	return &cooldownMarkRepository{}
}

func (r *cooldownMarkRepository) Get(
	ctx context.Context, communityID int64, userID, term string,
) (*entity.CooldownMark, error) {
	result := &entity.CooldownMark{}
	err := xcontext.DB(ctx).
		Where("community_id=? AND user_id=? AND term=?", communityID, userID, term).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Mark records a counted increment. The engine processes messages strictly
// in order with wall-clock timestamps, so a plain assignment keeps
// last_increment_at non-decreasing.
func (r *cooldownMarkRepository) Mark(
	ctx context.Context, communityID int64, userID, term string, at time.Time,
) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "community_id"},
				{Name: "user_id"},
				{Name: "term"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"last_increment_at": at,
			}),
		}).Create(&entity.CooldownMark{
		CommunityID:     communityID,
		UserID:          userID,
		Term:            term,
		LastIncrementAt: at,
	}).Error
}

func (r *cooldownMarkRepository) DeleteByTerm(
	ctx context.Context, communityID int64, term string,
) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND term=?", communityID, term).
		Delete(&entity.CooldownMark{}).Error
}

func (r *cooldownMarkRepository) DeleteByCommunity(ctx context.Context, communityID int64) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.CooldownMark{}).Error
}
